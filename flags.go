package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/peterbourgon/ff/v3"

	"go.mnkv.dev/chromapost/internal/flagvalue"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

const (
	_defaultRoot  = "public"
	_defaultTheme = "monokai"
)

// params holds all arguments for chromapost.
type params struct {
	version bool
	help    Help

	Theme   string
	Classes bool
	CSS     flagvalue.FileSwitch

	Skip   []skipPath
	Jobs   int
	Strict bool

	Debug flagvalue.FileSwitch

	Root string
}

// cliParser parses the command line arguments for chromapost.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("chromapost", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Highlighting:
	flag.StringVar(&p.Theme, "theme", _defaultTheme, "")
	flag.BoolVar(&p.Classes, "classes", false, "")
	flag.Var(&p.CSS, "css", "")

	// Traversal:
	flag.Var(flagvalue.ListOf(&p.Skip), "skip", "")
	flag.IntVar(&p.Jobs, "jobs", runtime.NumCPU(), "")
	flag.BoolVar(&p.Strict, "strict", false, "")

	// Program-level:
	flag.String("config", "", "") // consumed by ff.Parse
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, fset := cmd.newFlagSet()
	err := ff.Parse(fset, args,
		ff.WithEnvVarPrefix("CHROMAPOST"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
	)
	if err != nil {
		return nil, err
	}
	args = fset.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "chromapost", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	switch len(args) {
	case 0:
		p.Root = _defaultRoot
	case 1:
		p.Root = args[0]
	default:
		fmt.Fprintln(cmd.Stderr, "Please provide at most one directory.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	if p.Jobs < 1 {
		fmt.Fprintf(cmd.Stderr, "Invalid -jobs value %v: must be positive.\n", p.Jobs)
		return nil, errInvalidArguments
	}

	// A style sheet is only useful when blocks reference classes.
	if p.CSS.Bool() {
		p.Classes = true
	}

	return p, nil
}

// skipPath is a directory path relative to the root, in slash form.
type skipPath string

var _ flag.Getter = (*skipPath)(nil)

func (sp *skipPath) Get() any { return string(*sp) }

func (sp *skipPath) String() string { return string(*sp) }

func (sp *skipPath) Set(s string) error {
	cleaned := path.Clean(filepath.ToSlash(s))
	if cleaned == "." || path.IsAbs(cleaned) ||
		cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("must be a relative path inside the root, got %q", s)
	}
	*sp = skipPath(cleaned)
	return nil
}

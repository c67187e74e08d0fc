package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"braces.dev/errtrace"
	"github.com/alecthomas/chroma/v2/styles"

	"go.mnkv.dev/chromapost/internal/errdefer"
	"go.mnkv.dev/chromapost/internal/flagvalue"
	"go.mnkv.dev/chromapost/internal/highlight"
	"go.mnkv.dev/chromapost/internal/sliceutil"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger

	// highlighter, if set, takes the place of the Chroma engine
	// built from the command line flags.
	// Tests inject failures through this.
	highlighter Highlighter
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, errHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("chromapost: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) (err error) {
	debugw, debugc, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, debugc)

	engine := &highlight.Engine{
		Style:      styles.Get(opts.Theme),
		UseClasses: opts.Classes,
	}

	if opts.CSS.Bool() {
		if err := cmd.writeCSS(engine, &opts.CSS); err != nil {
			return err
		}
	}

	highlighter := cmd.highlighter
	if highlighter == nil {
		highlighter = engine
	}

	proc := Processor{
		Log:         cmd.log,
		Highlighter: highlighter,
		Languages:   _supportedLanguages,
		Skip: sliceutil.Transform(opts.Skip, func(sp skipPath) string {
			return string(sp)
		}),
		Jobs: opts.Jobs,
	}
	if opts.Debug.Bool() {
		proc.DebugLog = log.New(debugw, "", 0)
	}

	summary, err := proc.Run(context.Background(), opts.Root)
	if err != nil {
		return errtrace.Wrap(err)
	}

	cmd.log.Printf("%v", summary)
	if opts.Strict && summary.Failures() > 0 {
		return errtrace.Wrap(fmt.Errorf("strict mode: %v failure(s)", summary.Failures()))
	}
	return nil
}

// writeCSS writes the style sheet for the engine's theme
// to the file named by the -css flag, or to stdout.
func (cmd *mainCmd) writeCSS(engine *highlight.Engine, css *flagvalue.FileSwitch) (err error) {
	w, closer, err := css.Create(cmd.Stdout)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer errdefer.Close(&err, closer)

	return errtrace.Wrap(engine.WriteCSS(w))
}

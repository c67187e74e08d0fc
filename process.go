package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"braces.dev/errtrace"
	"github.com/natefinch/atomic"
	"golang.org/x/sync/errgroup"

	"go.mnkv.dev/chromapost/internal/codefence"
	"go.mnkv.dev/chromapost/internal/highlight"
	"go.mnkv.dev/chromapost/internal/pathx"
	"go.mnkv.dev/chromapost/internal/relative"
)

// Highlighter renders source code in a given language
// into an HTML fragment.
type Highlighter interface {
	Highlight(src, language string) (string, error)
}

var _ Highlighter = (*highlight.Engine)(nil)

// errMissingRoot is reported when the directory to process
// doesn't exist at all.
// Running before the site generator is a setup mistake,
// not an empty site.
var errMissingRoot = errors.New("root directory does not exist")

// Processor rewrites fenced code blocks in rendered HTML files
// with syntax-highlighted markup.
//
// In terms of code organization,
// Processor's purpose is to add a separation between main
// and the program's core logic to aid in testability.
type Processor struct {
	// Log reports progress and per-file failures.
	Log *log.Logger

	// DebugLog, if set, additionally reports every file visited
	// and every block skipped.
	// Use nil to disable.
	DebugLog *log.Logger

	// Highlighter renders the code found inside fences.
	Highlighter Highlighter

	// Languages is the set of language tags eligible for
	// highlighting, all lowercase.
	// Blocks tagged with anything else are skipped.
	Languages map[string]struct{}

	// Skip lists /-separated directory paths relative to the root
	// that the processor won't descend into.
	Skip []string

	// Jobs is the number of files processed concurrently.
	// Values below one mean one at a time.
	Jobs int
}

// Run processes every HTML file under root
// and reports what it did.
// Files change on disk only if at least one of their code blocks
// was highlighted.
//
// IO errors below the root are counted and skipped.
// Run fails only if root itself is unusable
// or ctx is cancelled.
func (p *Processor) Run(ctx context.Context, root string) (*Summary, error) {
	if _, err := os.Stat(root); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errtrace.Wrap(fmt.Errorf("%w: %v", errMissingRoot, root))
		}
		return nil, errtrace.Wrap(err)
	}

	var summary Summary
	files, err := p.collect(root, &summary)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	// Each worker fills its own slot,
	// so results merge in walk order no matter who finishes first.
	outcomes := make([]fileOutcome, len(files))
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(p.jobs())
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errtrace.Wrap(err)
			}
			outcomes[i] = p.processFile(root, file)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, errtrace.Wrap(err)
	}

	for _, o := range outcomes {
		summary.update(o)
	}
	return &summary, nil
}

// collect walks root and gathers the HTML files to process,
// in lexical order.
func (p *Processor) collect(root string, summary *Summary) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			// An unreadable subtree doesn't abort the rest of the site.
			p.Log.Printf("Skipping %v: %v", relPath(root, path), err)
			summary.FilesErrored++
			return nil
		}

		if d.IsDir() {
			if pathx.DescendsAny(p.Skip, relPath(root, path)) {
				p.debugf("Skipping %v: excluded", relPath(root, path))
				return fs.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return files, nil
}

// processFile rewrites a single file,
// reporting counts of what happened inside it.
func (p *Processor) processFile(root, file string) fileOutcome {
	name := relPath(root, file)

	data, err := os.ReadFile(file)
	if err != nil {
		p.Log.Printf("Skipping %v: %v", name, err)
		return fileOutcome{errored: true}
	}

	doc := string(data)
	blocks := codefence.Scan(doc)
	p.debugf("Scanning %v: %v block(s)", name, len(blocks))

	var (
		out   fileOutcome
		repls []codefence.Replacement
	)
	for _, b := range blocks {
		lang := strings.ToLower(b.Language)
		if _, ok := p.Languages[lang]; !ok {
			p.debugf("Skipping %v block in %v: unsupported language", b.Language, name)
			out.skipped++
			continue
		}

		markup, err := p.Highlighter.Highlight(b.Source(), lang)
		if err != nil {
			p.Log.Printf("Highlighting failed in %v: %v", name, err)
			out.failed++
			continue
		}

		repls = append(repls, codefence.Replacement{
			Start:  b.Start,
			End:    b.End,
			Markup: markup,
		})
		out.highlighted++
	}

	if len(repls) == 0 {
		// Nothing highlighted. Leave the file untouched.
		return out
	}

	if err := atomic.WriteFile(file, strings.NewReader(codefence.Apply(doc, repls))); err != nil {
		p.Log.Printf("Writing %v failed: %v", name, err)
		out.errored = true
		return out
	}
	out.modified = true

	p.Log.Printf("Highlighted %v block(s) in %v", out.highlighted, name)
	return out
}

func (p *Processor) jobs() int {
	if p.Jobs > 0 {
		return p.Jobs
	}
	return 1
}

func (p *Processor) debugf(format string, args ...any) {
	if p.DebugLog != nil {
		p.DebugLog.Printf(format, args...)
	}
}

// relPath returns path relative to root, in slash form.
// It serves both skip matching and log messages.
func relPath(root, path string) string {
	return filepath.ToSlash(relative.Filepath(root, path))
}

// fileOutcome is what processing a single file did.
type fileOutcome struct {
	modified bool
	errored  bool

	highlighted int
	skipped     int
	failed      int
}

// Summary reports what a processing run did across all files.
type Summary struct {
	// FilesScanned is the number of HTML files visited.
	FilesScanned int

	// FilesModified is the number of files rewritten in place.
	FilesModified int

	// FilesErrored is the number of files and directories
	// skipped because of IO errors.
	FilesErrored int

	// BlocksHighlighted is the number of code blocks
	// replaced with highlighted markup.
	BlocksHighlighted int

	// BlocksSkipped is the number of code blocks left alone
	// because their language isn't supported.
	BlocksSkipped int

	// BlocksFailed is the number of code blocks
	// the highlighter reported an error for.
	BlocksFailed int
}

func (s *Summary) update(o fileOutcome) {
	s.FilesScanned++
	if o.modified {
		s.FilesModified++
	}
	if o.errored {
		s.FilesErrored++
	}
	s.BlocksHighlighted += o.highlighted
	s.BlocksSkipped += o.skipped
	s.BlocksFailed += o.failed
}

// Failures counts everything that went wrong during the run.
func (s *Summary) Failures() int {
	return s.FilesErrored + s.BlocksFailed
}

// String renders the summary as a single line for the run log.
func (s *Summary) String() string {
	line := fmt.Sprintf(
		"%v file(s) scanned, %v modified; %v block(s) highlighted, %v skipped, %v failed",
		s.FilesScanned, s.FilesModified,
		s.BlocksHighlighted, s.BlocksSkipped, s.BlocksFailed)
	if s.FilesErrored > 0 {
		line += fmt.Sprintf("; %v file error(s)", s.FilesErrored)
	}
	return line
}

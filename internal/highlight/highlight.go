package highlight

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"braces.dev/errtrace"
	chroma "github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Engine renders plain source code into highlighted HTML.
type Engine struct {
	// Style used for syntax highlighting of code.
	//
	// Defaults to [PlainStyle].
	Style *chroma.Style

	// UseClasses specifies whether the engine
	// uses inline 'style' attributes for highlighting,
	// or classes, assuming use of an appropriate style sheet.
	UseClasses bool

	once      sync.Once
	formatter *chromahtml.Formatter
}

func (e *Engine) init() {
	e.once.Do(func() {
		e.formatter = chromahtml.New(
			chromahtml.WithClasses(e.UseClasses),
		)
	})
}

// WriteCSS writes the style classes for this engine to writer.
// If this engine is not using classes, WriteCSS is a no-op.
func (e *Engine) WriteCSS(w io.Writer) error {
	e.init()

	if !e.UseClasses {
		return nil
	}

	return errtrace.Wrap(e.formatter.WriteCSS(w, e.style()))
}

// Highlight renders src as a self-contained HTML fragment,
// highlighted per the grammar named by language.
// The fragment carries its own pre tag.
//
// It fails if Chroma has no lexer under that name.
func (e *Engine) Highlight(src, language string) (string, error) {
	e.init()

	lexer := lexers.Get(language)
	if lexer == nil {
		return "", errtrace.Wrap(fmt.Errorf("no grammar for language %q", language))
	}

	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, src)
	if err != nil {
		return "", errtrace.Wrap(fmt.Errorf("tokenize: %w", err))
	}

	var sb strings.Builder
	if err := e.formatter.Format(&sb, e.style(), chroma.Literator(tokens...)); err != nil {
		return "", errtrace.Wrap(fmt.Errorf("format: %w", err))
	}
	return sb.String(), nil
}

func (e *Engine) style() *chroma.Style {
	if e.Style != nil {
		return e.Style
	}
	return PlainStyle
}

// Package highlight renders source code into HTML
// with the Chroma syntax highlighting library.
//
// The [Engine] resolves a Chroma lexer for each language tag
// it is asked to highlight,
// and produces self-contained markup fragments:
// a pre block styled either inline or with style classes.
package highlight

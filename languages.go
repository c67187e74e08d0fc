package main

import "sort"

// _supportedLanguages is the set of language tags eligible for
// highlighting. Code blocks tagged with anything else pass through
// untouched.
//
// Tag comparisons are case-insensitive. Keep these lowercase.
// Every entry must resolve to a Chroma lexer by name or alias.
var _supportedLanguages = map[string]struct{}{
	"bash":       {},
	"c":          {},
	"cpp":        {},
	"css":        {},
	"diff":       {},
	"dockerfile": {},
	"go":         {},
	"haskell":    {},
	"html":       {},
	"ini":        {},
	"java":       {},
	"javascript": {},
	"json":       {},
	"lua":        {},
	"makefile":   {},
	"nix":        {},
	"python":     {},
	"ruby":       {},
	"rust":       {},
	"scss":       {},
	"sh":         {},
	"shell":      {},
	"sql":        {},
	"toml":       {},
	"typescript": {},
	"xml":        {},
	"yaml":       {},
	"zig":        {},
}

// supportedLanguages returns the language tags chromapost highlights,
// sorted alphabetically.
func supportedLanguages() []string {
	langs := make([]string, 0, len(_supportedLanguages))
	for lang := range _supportedLanguages {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

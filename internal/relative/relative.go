// Package relative turns file paths relative
// with string manipulation exclusively.
package relative

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.mnkv.dev/chromapost/internal/sliceutil"
)

const _sep = string(filepath.Separator)

// Filepath returns a path to dst, relative to the directory src.
// Both paths must be relative or both paths must be absolute,
// and they must both be valid file paths for the current system.
//
// As a special case, a src of "." or "" is an empty prefix,
// making the result dst itself.
// This matches the paths filepath.WalkDir reports
// when walking from ".".
//
// This operation relies on string manipulation exclusively,
// so it doesn't fail.
func Filepath(src, dst string) string {
	if filepath.IsAbs(src) != filepath.IsAbs(dst) {
		panic(fmt.Sprintf("Filepath(%q, %q): both must be absolute, or both must be relative", src, dst))
	}

	// src must always be a directory.
	// Drop the trailing separator, if any.
	src = strings.TrimSuffix(src, _sep)
	if src == "." {
		src = ""
	}

	var srcParts, dstParts []string
	if len(src) > 0 {
		srcParts = strings.Split(src, _sep)
	}
	if len(dst) > 0 {
		dstParts = strings.Split(dst, _sep)
	}

	srcParts, dstParts = sliceutil.RemoveCommonPrefix(srcParts, dstParts)

	var sb strings.Builder
	for range srcParts {
		if sb.Len() > 0 {
			sb.WriteString(_sep)
		}
		sb.WriteString("..")
	}
	for _, p := range dstParts {
		if sb.Len() > 0 {
			sb.WriteString(_sep)
		}
		sb.WriteString(p)
	}

	return sb.String()
}

package source

import (
	"path/filepath"
	"slices"
	"strings"
)

// normalizeCRLF rewrites every \r\n pair to \n, leaving lone \r untouched.
// The bool reports whether any replacement happened.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false
	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}
	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}
	return content, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	if len(lineIdx) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// Binary search: number of newlines strictly before off. A newline
	// belongs to the line it terminates.
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	line := lo // 0-based

	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line) + 1, Col: off - startOff + 1}
}

// NormalizePath gives paths a single cross-platform shape for maps and diffs.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// ImportTarget canonicalizes an import path so it can be matched against
// unit paths: cleaned, forward slashes, source extension added when the
// author omitted it. Import paths are workspace-relative.
func ImportTarget(p string) string {
	p = NormalizePath(p)
	if !strings.HasSuffix(p, ".bl") {
		p += ".bl"
	}
	return p
}

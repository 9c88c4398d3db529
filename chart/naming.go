package chart

import (
	"strings"
	"unicode"
)

// maxNameRunes bounds the base name so it stays under common filesystem limits.
const maxNameRunes = 120

// FileName turns a display title into a safe file name with the given
// extension. Path separators, control characters and characters reserved on
// common filesystems become underscores, runs of whitespace collapse to one
// space, and leading dots are dropped, so the result never names a directory
// other than the one it is joined to. Accented letters are kept.
func FileName(title, ext string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(title) {
		switch {
		case unicode.IsSpace(r):
			if !space {
				b.WriteRune(' ')
			}
			space = true
			continue
		case unicode.IsControl(r), strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
		space = false
	}

	name := strings.TrimLeft(b.String(), ". ")
	name = strings.TrimRight(name, ". ")
	if runes := []rune(name); len(runes) > maxNameRunes {
		name = strings.TrimRight(string(runes[:maxNameRunes]), ". ")
	}
	if name == "" {
		name = "chart"
	}

	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return name
	}
	return name + "." + ext
}

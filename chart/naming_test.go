package chart

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileName(t *testing.T) {
	tests := []struct {
		name  string
		title string
		ext   string
		want  string
	}{
		{"plain", "GDP Growth (Daily)", "png", "GDP Growth (Daily).png"},
		{"dotted ext", "GDP Growth", ".jpg", "GDP Growth.jpg"},
		{"no ext", "GDP Growth", "", "GDP Growth"},
		{"slashes", "Daily/Weekly", "png", "Daily_Weekly.png"},
		{"backslashes", `a\b`, "png", "a_b.png"},
		{"parent dir", "../../etc/passwd", "png", "_.._etc_passwd.png"},
		{"dots only", "..", "png", "chart.png"},
		{"reserved", `what? "quoted" <x>|y*:z`, "png", "what_ _quoted_ _x__y__z.png"},
		{"whitespace runs", "  Dow   Jones\tDaily \n", "png", "Dow Jones Daily.png"},
		{"control", "a\x00b", "png", "a_b.png"},
		{"accents", "Croissance du PIB (Trimestriel) é", "png", "Croissance du PIB (Trimestriel) é.png"},
		{"empty", "", "jpg", "chart.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.title, tt.ext))
		})
	}
}

func TestFileNameStaysInDirectory(t *testing.T) {
	for _, title := range []string{"../x", "/abs/path", `..\..\win`, "a/../../b", "."} {
		name := FileName(title, "png")
		assert.Equal(t, name, filepath.Base(name), title)
		assert.False(t, strings.HasPrefix(name, "."), title)
	}
}

func TestFileNameTruncates(t *testing.T) {
	name := FileName(strings.Repeat("é", 300), "png")
	assert.Equal(t, maxNameRunes+len(".png"), len([]rune(name)))
}

package steam

import (
	"strings"
	"unicode"
)

// maxTitleLen bounds sanitized titles so output paths stay well below
// filesystem path-length limits.
const maxTitleLen = 120

// FallbackTitle is the id-derived title used whenever resolution degrades.
func FallbackTitle(id string) string {
	return "addon_" + id
}

// SanitizeTitle turns a workshop display title into a safe directory name:
// characters illegal in file names and control characters are dropped,
// runs of whitespace collapse to a single space, and the result is
// truncated at a rune boundary. An empty result falls back to the id.
func SanitizeTitle(title, id string) string {
	var b strings.Builder
	b.Grow(len(title))

	space := false
	for _, r := range title {
		switch {
		case unicode.IsSpace(r):
			space = true
		case strings.ContainsRune(`<>:"/\|?*`, r) || unicode.IsControl(r):
		default:
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(out) > maxTitleLen {
		runes := []rune(out)
		for len(string(runes)) > maxTitleLen {
			runes = runes[:len(runes)-1]
		}
		out = strings.TrimSpace(string(runes))
	}

	if out == "" {
		return FallbackTitle(id)
	}

	return out
}

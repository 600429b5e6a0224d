package generator

import (
	"strings"
	"unicode/utf8"
)

// Sanitize derives a C symbol name from a file path.
//
// The result is the path's basename with every character outside [0-9A-Za-z]
// replaced by '_'. Which characters count as bad is decided by scanning the
// whole path; the basename is then rewritten character by character, so the
// character count of the basename is preserved. A byte that is not valid
// UTF-8 counts as one character.
//
// No uniqueness or emptiness guarantee is made: "dir/" yields "".
func Sanitize(path string) string {
	name := path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		name = path[i+1:]
	}

	bad := make(map[string]bool)
	for i := 0; i < len(path); {
		c, size := utf8.DecodeRuneInString(path[i:])
		if !isSymbolChar(c) {
			bad[path[i:i+size]] = true
		}
		i += size
	}

	var b strings.Builder
	b.Grow(len(name))
	for i := 0; i < len(name); {
		_, size := utf8.DecodeRuneInString(name[i:])
		if ch := name[i : i+size]; bad[ch] {
			b.WriteByte('_')
		} else {
			b.WriteString(ch)
		}
		i += size
	}
	return b.String()
}

func isSymbolChar(c rune) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= 'a' && c <= 'z')
}

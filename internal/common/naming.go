package common

import (
	"strings"
	"unicode"
)

// LowerCamel lower-cases the leading upper-case run of an identifier so that
// "ID" becomes "id", "CreatedAt" becomes "createdAt" and "URLPath" becomes
// "urlPath".
func LowerCamel(s string) string {
	runes := []rune(s)

	n := 0
	for n < len(runes) && unicode.IsUpper(runes[n]) {
		n++
	}

	switch {
	case n == 0:
		return s
	case n == 1 || n == len(runes):
		// "Title" -> "title", "ISBN" -> "isbn"
	default:
		// keep the last capital of an acronym when it starts the next word
		n--
	}

	for i := range n {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}

// SnakeCase converts a Go identifier to snake_case, keeping acronyms together:
// "BookAuthor" becomes "book_author", "HTTPServer" becomes "http_server".
func SnakeCase(s string) string {
	runes := []rune(s)

	var b strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i > 0 && i+1 < len(runes) && unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1])

			if prevLower || nextLower {
				b.WriteByte('_')
			}

			b.WriteRune(unicode.ToLower(r))

			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}

// IsExported reports whether name starts with an upper-case letter.
func IsExported(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}

	return false
}

package golang

import (
	"strings"
	"unicode"
)

var initialisms = map[string]bool{
	"API": true, "HTML": true, "HTTP": true, "HTTPS": true, "ID": true,
	"IP": true, "JSON": true, "SQL": true, "TCP": true, "TLS": true,
	"UID": true, "UUID": true, "URI": true, "URL": true, "XML": true,
}

// PascalCase converts an arbitrary name to an exported Go name, upper-casing
// well-known initialisms.
func PascalCase(s string) string {
	var b strings.Builder
	for _, word := range splitWords(s) {
		if upper := strings.ToUpper(word); initialisms[upper] {
			b.WriteString(upper)
			continue
		}
		runes := []rune(strings.ToLower(word))
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

// CamelCase is PascalCase with a lower-cased first word.
func CamelCase(s string) string {
	words := splitWords(s)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0]) + PascalCase(strings.Join(words[1:], "_"))
}

// Identifier converts a name to a legal exported Go identifier.
func Identifier(s string) string {
	name := PascalCase(s)
	if name == "" {
		return "X"
	}
	if unicode.IsDigit(rune(name[0])) {
		return "X" + name
	}
	return name
}

// Argument converts a name to a legal unexported identifier, escaping Go
// keywords.
func Argument(s string) string {
	name := CamelCase(s)
	if name == "" {
		return "x"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "x" + name
	}
	if keywords[name] {
		name += "_"
	}
	return name
}

var keywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// splitWords breaks a name on separators and lower-to-upper case boundaries.
func splitWords(s string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}
	var prev rune
	for _, r := range s {
		switch {
		case r == '_' || r == '-' || r == ' ' || r == '.' || r == '/':
			flush()
		case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
			flush()
			current = append(current, r)
		default:
			current = append(current, r)
		}
		prev = r
	}
	flush()
	return words
}

package gen

import (
	"go/token"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var (
	rules    = ruleset()
	acronyms = make(map[string]struct{})
)

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	// Common initialisms. Used by the naming helpers below to keep
	// generated identifiers gofmt-friendly (UserID, APIURL).
	for _, w := range []string{
		"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML",
		"HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS",
		"RPC", "SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP",
		"UI", "UID", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XMPP",
		"XSRF", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

// AddAcronym adds an initialism to the naming rules. Words matching it are
// emitted upper-case in generated identifiers.
func AddAcronym(word string) {
	word = strings.ToUpper(word)
	acronyms[word] = struct{}{}
	rules.AddAcronym(word)
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-'
}

// pascal converts a snake_case name to an exported Go identifier.
func pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	for i, w := range words {
		if upper := strings.ToUpper(w); isAcronym(upper) {
			words[i] = upper
			continue
		}
		words[i] = rules.Capitalize(w)
	}
	return strings.Join(words, "")
}

// camel converts a snake_case name to an unexported Go identifier.
func camel(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	if len(words) == 0 {
		return s
	}
	out := strings.ToLower(words[0])
	for _, w := range words[1:] {
		if upper := strings.ToUpper(w); isAcronym(upper) {
			out += upper
			continue
		}
		out += rules.Capitalize(w)
	}
	return out
}

// snake converts a Go identifier to its snake_case form.
func snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, the current letter
		// is uppercase, and the previous is lowercase ("UserInfo"), or the
		// next letter starts a new lowercase word ("HTTPCode").
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteString(strings.ToLower(string(r)))
	}
	return b.String()
}

// receiver returns a short receiver name for a type, e.g. "uq" for UserQuery.
// Each word contributes one initial; an acronym run collapses to its first
// letter ("HTTPClient" gives "hc").
func receiver(s string) string {
	s = strings.TrimLeft(s, "[]*0123456789")
	rs := []rune(s)
	var initials []rune
	for i, r := range rs {
		if !unicode.IsUpper(r) {
			continue
		}
		// Inside an uppercase run, only a letter followed by a lowercase
		// one starts a new word ("HTTPClient": skip TTP, keep C).
		if i > 0 && unicode.IsUpper(rs[i-1]) && !(i+1 < len(rs) && unicode.IsLower(rs[i+1])) {
			continue
		}
		initials = append(initials, unicode.ToLower(r))
	}
	if len(initials) == 0 && len(rs) > 0 {
		initials = []rune{unicode.ToLower(rs[0])}
	}
	return string(initials)
}

// argName returns a safe parameter name for a field, avoiding Go keywords
// and predeclared clashes with the generated code.
func argName(s string) string {
	name := camel(s)
	if token.Lookup(name).IsKeyword() || name == "ctx" || name == "db" || name == "args" || name == "rows" || name == "row" || name == "err" || name == "out" {
		return "_" + name
	}
	return name
}

func isAcronym(upper string) bool {
	_, ok := acronyms[upper]
	return ok
}

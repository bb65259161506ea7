// Package cypher renders the small subset of Cypher the compiler emits:
// string literals, property conditions, relationship type lists and
// relationship patterns.
package cypher

import (
	"fmt"
	"regexp"
	"strings"
)

// Quote renders s as a single-quoted string literal. Backslashes and single
// quotes are backslash-escaped.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		if r == '\\' || r == '\'' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

const regexMeta = `.*+?^$()[]{}|\`

// IsPattern reports whether term contains a regular expression metacharacter.
func IsPattern(term string) bool {
	return strings.ContainsAny(term, regexMeta)
}

// Match renders a condition comparing prop with term: a regular expression
// match when the term looks like a pattern, exact equality otherwise.
func Match(prop, term string) string {
	if IsPattern(term) {
		return prop + " =~ " + Quote(term)
	}
	return prop + " = " + Quote(term)
}

// AnyOf OR-combines one Match condition per non-blank term. It returns an
// empty string when no term is usable.
func AnyOf(prop string, terms []string) string {
	var conds []string
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		conds = append(conds, Match(prop, term))
	}
	switch len(conds) {
	case 0:
		return ""
	case 1:
		return conds[0]
	}
	return "(" + strings.Join(conds, " OR ") + ")"
}

// ContainsFold renders a case-insensitive substring test on prop.
func ContainsFold(prop, needle string) string {
	return "toLower(" + prop + ") CONTAINS " + Quote(strings.ToLower(needle))
}

// Prop renders a property access on a binding.
func Prop(binding, name string) string {
	return binding + "." + name
}

var plainIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// RelTypes renders a relationship type restriction such as ":A|B". Blank
// entries are dropped; names that are not plain identifiers are
// backtick-quoted. It returns an empty string when nothing remains.
func RelTypes(types []string) string {
	var names []string
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if !plainIdent.MatchString(t) {
			t = "`" + strings.ReplaceAll(t, "`", "``") + "`"
		}
		names = append(names, t)
	}
	if len(names) == 0 {
		return ""
	}
	return ":" + strings.Join(names, "|")
}

// Arrow selects the orientation of a relationship pattern.
type Arrow int

const (
	Undirected Arrow = iota
	Outgoing
	Incoming
)

// Rel renders a relationship pattern between two node bindings, e.g.
// (a)-[:T*1..3]->(b). body is the text between the brackets.
func Rel(from, body, to string, arrow Arrow) string {
	switch arrow {
	case Outgoing:
		return fmt.Sprintf("(%s)-[%s]->(%s)", from, body, to)
	case Incoming:
		return fmt.Sprintf("(%s)<-[%s]-(%s)", from, body, to)
	}
	return fmt.Sprintf("(%s)-[%s]-(%s)", from, body, to)
}

// Comment renders a single-line comment.
func Comment(text string) string {
	return "// " + strings.ReplaceAll(text, "\n", " ")
}

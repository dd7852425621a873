package locate

import (
	"strings"
	"unicode"
)

// TableName is one catalog entry of a known table header.
type TableName struct {
	// Name is the lowercase canonical table name.
	Name string
	// Strong marks names that terminate a scan for a different table
	// even when their words overlap the current table's own name.
	Strong bool
}

// maxTrailingWords is the suffix tolerance when an entry name prefixes
// a longer candidate: "Draw at Closing - Phase I" still names the draw
// table, "Draw at Closing Reconciliation Detail Schedule" does not.
const maxTrailingWords = 2

// shortNameLen bounds the single-word names (LTC, LTV) that are table
// headers only when they appear standalone. "LTC (At Closing)" is a
// row label, not a table boundary.
const shortNameLen = 4

// matches reports whether the normalized candidate text names this
// entry's table.
func (t TableName) matches(candidate string) bool {
	if candidate == t.Name {
		return true
	}
	if !strings.Contains(t.Name, " ") && len(t.Name) <= shortNameLen {
		return false
	}
	rest, ok := strings.CutPrefix(candidate, t.Name)
	if !ok || rest == "" {
		return false
	}
	first := rune(rest[0])
	if unicode.IsLetter(first) || unicode.IsDigit(first) {
		return false
	}
	return trailingWords(rest) <= maxTrailingWords
}

// trailingWords counts the real words in a suffix. Separator tokens
// like a bare dash ("Draw at Closing - Phase I") are not words.
func trailingWords(rest string) int {
	words := 0
	for _, f := range strings.Fields(rest) {
		if strings.ContainsFunc(f, isAlnum) {
			words++
		}
	}
	return words
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Registry is an immutable catalog of known table names. Build one per
// document family and share it freely; it is never mutated after
// construction.
type Registry struct {
	entries []TableName
}

// NewRegistry builds a registry from the given entries. Names are
// normalized to lowercase.
func NewRegistry(entries []TableName) *Registry {
	out := make([]TableName, 0, len(entries))
	for _, e := range entries {
		e.Name = normalize(e.Name)
		if e.Name == "" {
			continue
		}
		out = append(out, e)
	}
	return &Registry{entries: out}
}

// DefaultRegistry returns the table name catalog for the origination
// workbooks.
func DefaultRegistry() *Registry {
	return NewRegistry([]TableName{
		{Name: "sources and uses", Strong: true},
		{Name: "take out loan sizing", Strong: true},
		{Name: "capital stack at closing", Strong: true},
		{Name: "draw at closing", Strong: true},
		{Name: "loan to cost"},
		{Name: "loan to value"},
		{Name: "pilot schedule"},
		{Name: "ltc"},
		{Name: "ltv"},
	})
}

// IsStrong reports whether name is registered as a strong table name.
func (r *Registry) IsStrong(name string) bool {
	n := normalize(name)
	for _, e := range r.entries {
		if e.Name == n {
			return e.Strong
		}
	}
	return false
}

// Boundary reports whether candidate text marks the start of a table
// other than current. Text that echoes the current table's own name is
// suppressed; strong entries override that suppression so a neighboring
// table is recognized even when its name overlaps the current one.
func (r *Registry) Boundary(candidate, current string) bool {
	cand := normalize(candidate)
	if cand == "" {
		return false
	}
	cur := normalize(current)
	selfEcho := cur != "" && (strings.Contains(cand, cur) || strings.Contains(cur, cand))
	for _, e := range r.entries {
		if !e.matches(cand) {
			continue
		}
		if e.matches(cur) {
			// The current table's own entry.
			continue
		}
		if e.Strong {
			return true
		}
		if selfEcho {
			continue
		}
		return true
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

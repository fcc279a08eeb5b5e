package symbols

import (
	"fmt"

	"github.com/funvibe/symtab/internal/typesystem"
)

// Narrow returns a new entry for e's name holding v. v must be concrete and
// admitted by e's current type; e itself is left as it was.
func Narrow(e Entry, v typesystem.Value) (Entry, error) {
	if !v.IsResolved() || !e.value.Admits(v) {
		return Entry{}, fmt.Errorf("narrow %s: %w", e.name,
			typesystem.NewTypeMismatchError("narrow", e.Tag(), v.Tag()))
	}
	return Entry{name: e.name, value: v}, nil
}

// Widen returns a new entry for e's name whose type also allows the kinds
// in tag. The result carries no value unless the widened type is e's own
// concrete type, in which case e is returned unchanged.
func Widen(e Entry, tag typesystem.TypeTag) (Entry, error) {
	joined := e.Tag().Union(tag)
	if joined == e.Tag() && e.value.IsResolved() {
		return e, nil
	}
	return DeclareEntry(e.name, joined)
}

// Entries is an ordered list of declarations. Later entries shadow earlier
// ones with the same name.
type Entries []Entry

// Lookup returns the most recent entry named name.
func (es Entries) Lookup(name string) (Entry, bool) {
	for i := len(es) - 1; i >= 0; i-- {
		if es[i].name == name {
			return es[i], true
		}
	}
	return Entry{}, false
}

// Find is Lookup with a typed error for callers that report it.
func (es Entries) Find(name string) (Entry, error) {
	if e, ok := es.Lookup(name); ok {
		return e, nil
	}
	return Entry{}, typesystem.NewSymbolNotFoundError(name)
}

// Latest returns one entry per name, the most recent declaration, in
// order of each name's first appearance.
func (es Entries) Latest() Entries {
	seen := make(map[string]int, len(es))
	var out Entries
	for _, e := range es {
		if i, ok := seen[e.name]; ok {
			out[i] = e
			continue
		}
		seen[e.name] = len(out)
		out = append(out, e)
	}
	return out
}

package symbols

import (
	"fmt"

	"github.com/funvibe/symtab/internal/typesystem"
)

// Entry binds a name to a typed value. Entries are values: copying one
// yields an independent snapshot and nothing mutates an Entry after it is built.
type Entry struct {
	name  string
	value typesystem.Value
}

// NewEntry returns the placeholder entry: empty name, Undefined type.
func NewEntry() Entry {
	return Entry{value: typesystem.UndefinedValue()}
}

func NewIntEntry(name string, v int64) Entry {
	return Entry{name: name, value: typesystem.IntValue(v)}
}

func NewStrEntry(name string, v string) Entry {
	return Entry{name: name, value: typesystem.StrValue(v)}
}

func NewBoolEntry(name string, v bool) Entry {
	return Entry{name: name, value: typesystem.BoolValue(v)}
}

// DeclareEntry binds name to a type without a value. Only Undefined and
// disjunctive tags are accepted; concrete kinds go through the payload
// constructors.
func DeclareEntry(name string, tag typesystem.TypeTag) (Entry, error) {
	v, err := typesystem.PendingValue(tag)
	if err != nil {
		return Entry{}, fmt.Errorf("declare %s: %w", name, err)
	}
	return Entry{name: name, value: v}, nil
}

// FromValue rebuilds an entry from a name and a TypeInfo snapshot.
func FromValue(name string, v typesystem.Value) Entry {
	return Entry{name: name, value: v}
}

func (e Entry) Name() string { return e.name }

// TypeInfo returns the tag and payload as a copy.
func (e Entry) TypeInfo() typesystem.Value { return e.value }

func (e Entry) Tag() typesystem.TypeTag { return e.value.Tag() }

func (e Entry) AsInt() (int64, error) { return e.value.AsInt() }

func (e Entry) AsStr() (string, error) { return e.value.AsStr() }

func (e Entry) AsBool() (bool, error) { return e.value.AsBool() }

func (e Entry) String() string {
	return fmt.Sprintf("%s = %s", e.name, e.value)
}

package typesystem

import (
	"fmt"
	"strings"

	"github.com/funvibe/symtab/internal/config"
)

// TypeTag is the set of primitive kinds a binding may hold.
// Int, Str and Bool are single bits; the disjunctive tags are their unions.
// Undefined is the empty set: no type has been established yet.
type TypeTag uint8

const (
	Undefined TypeTag = 0
	Int       TypeTag = 1 << (iota - 1)
	Str
	Bool

	IntOrStr       = Int | Str
	IntOrBool      = Int | Bool
	StrOrBool      = Str | Bool
	IntOrStrOrBool = Int | Str | Bool
)

// legacyUndefinedCode is the numeric code older tooling uses for Undefined.
// Every other tag's code is its bit set.
const legacyUndefinedCode = -1

var concreteKinds = []TypeTag{Int, Str, Bool}

func (t TypeTag) String() string {
	switch t {
	case Undefined:
		return config.UndefinedTypeName
	case Int:
		return config.IntTypeName
	case Str:
		return config.StrTypeName
	case Bool:
		return config.BoolTypeName
	}
	if !t.Valid() {
		return fmt.Sprintf("TypeTag(%d)", uint8(t))
	}
	names := make([]string, 0, 3)
	for _, k := range t.Kinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, config.TypeSeparator)
}

// Valid reports whether t is one of the eight tags.
func (t TypeTag) Valid() bool { return t <= IntOrStrOrBool }

func (t TypeTag) IsUndefined() bool { return t == Undefined }

// IsConcrete reports whether t names exactly one kind.
func (t TypeTag) IsConcrete() bool {
	return t == Int || t == Str || t == Bool
}

// IsDisjunctive reports whether t is still undecided among two or three kinds.
func (t TypeTag) IsDisjunctive() bool {
	return t.Valid() && t != Undefined && !t.IsConcrete()
}

// Kinds returns the concrete members of t in Int, Str, Bool order.
func (t TypeTag) Kinds() []TypeTag {
	var kinds []TypeTag
	for _, k := range concreteKinds {
		if t&k != 0 {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Contains reports whether every kind possible under other is possible under t.
func (t TypeTag) Contains(other TypeTag) bool {
	return other&^t == 0
}

// Union is the lattice join. A checker uses it where two branches
// imply different kinds for the same binding.
func (t TypeTag) Union(other TypeTag) TypeTag {
	return (t | other) & IntOrStrOrBool
}

// Intersect is the lattice meet.
func (t TypeTag) Intersect(other TypeTag) TypeTag {
	return t & other & IntOrStrOrBool
}

// Code returns the legacy numeric type code.
func (t TypeTag) Code() int {
	if t == Undefined {
		return legacyUndefinedCode
	}
	return int(t)
}

// FromCode maps a legacy numeric type code back to its tag.
func FromCode(code int) (TypeTag, error) {
	if code == legacyUndefinedCode {
		return Undefined, nil
	}
	if code < int(Int) || code > int(IntOrStrOrBool) {
		return Undefined, fmt.Errorf("%w: %d", ErrInvalidCode, code)
	}
	return TypeTag(code), nil
}

var kindNames = map[string]TypeTag{
	config.IntTypeName:       Int,
	config.StrTypeName:       Str,
	"str":                    Str,
	config.BoolTypeName:      Bool,
	"boolean":                Bool,
	config.AnyTypeName:       IntOrStrOrBool,
	config.UndefinedTypeName: Undefined,
}

// ParseTag parses the String form of a tag. Kinds may be listed in any
// order, e.g. "bool|int" yields IntOrBool.
func ParseTag(s string) (TypeTag, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Undefined, fmt.Errorf("%w: empty type", ErrInvalidTag)
	}
	parts := strings.Split(s, config.TypeSeparator)
	if len(parts) == 1 {
		if tag, ok := kindNames[parts[0]]; ok {
			return tag, nil
		}
		return Undefined, fmt.Errorf("%w: %q", ErrInvalidTag, s)
	}

	var tag TypeTag
	for _, part := range parts {
		k, ok := kindNames[strings.TrimSpace(part)]
		if !ok || !k.IsConcrete() {
			return Undefined, fmt.Errorf("%w: %q", ErrInvalidTag, s)
		}
		tag |= k
	}
	return tag, nil
}

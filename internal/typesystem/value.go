package typesystem

import (
	"fmt"
	"strconv"
)

// Value is a primitive value whose kind may not be settled yet.
// A payload exists only under a concrete tag; the constructors below are
// the only way to build one, so tag and payload always agree.
// The zero Value is Undefined.
type Value struct {
	tag TypeTag
	i   int64
	s   string
	b   bool
}

func UndefinedValue() Value { return Value{} }

func IntValue(v int64) Value { return Value{tag: Int, i: v} }

func StrValue(v string) Value { return Value{tag: Str, s: v} }

func BoolValue(v bool) Value { return Value{tag: Bool, b: v} }

// PendingValue builds a value that has a type but no payload yet:
// Undefined or one of the disjunctive tags.
func PendingValue(tag TypeTag) (Value, error) {
	if !tag.Valid() {
		return Value{}, fmt.Errorf("%w: %s", ErrInvalidTag, tag)
	}
	if tag.IsConcrete() {
		return Value{}, fmt.Errorf("%w: %s", ErrMissingPayload, tag)
	}
	return Value{tag: tag}, nil
}

func (v Value) Tag() TypeTag { return v.tag }

// IsResolved reports whether v carries a payload.
func (v Value) IsResolved() bool { return v.tag.IsConcrete() }

func (v Value) AsInt() (int64, error) {
	if v.tag != Int {
		return 0, NewTypeMismatchError("asInt", Int, v.tag)
	}
	return v.i, nil
}

func (v Value) AsStr() (string, error) {
	if v.tag != Str {
		return "", NewTypeMismatchError("asStr", Str, v.tag)
	}
	return v.s, nil
}

func (v Value) AsBool() (bool, error) {
	if v.tag != Bool {
		return false, NewTypeMismatchError("asBool", Bool, v.tag)
	}
	return v.b, nil
}

// Admits reports whether other could stand in for v: other's possible
// kinds are a subset of v's. An Undefined v admits anything.
func (v Value) Admits(other Value) bool {
	if v.tag == Undefined {
		return true
	}
	return v.tag.Contains(other.tag)
}

func (v Value) Equal(other Value) bool {
	return v == other
}

// Literal renders the payload the way it would be written in a declaration.
// Unresolved values have no literal.
func (v Value) Literal() (string, bool) {
	switch v.tag {
	case Int:
		return strconv.FormatInt(v.i, 10), true
	case Str:
		return strconv.Quote(v.s), true
	case Bool:
		return strconv.FormatBool(v.b), true
	default:
		return "", false
	}
}

func (v Value) String() string {
	if lit, ok := v.Literal(); ok {
		return lit + " : " + v.tag.String()
	}
	return "_ : " + v.tag.String()
}

// ParseLiteral reads an int, bool or double-quoted string literal.
func ParseLiteral(s string) (Value, error) {
	switch s {
	case "true":
		return BoolValue(true), nil
	case "false":
		return BoolValue(false), nil
	}
	if len(s) >= 2 && s[0] == '"' {
		str, err := strconv.Unquote(s)
		if err != nil {
			return Value{}, fmt.Errorf("bad string literal %s: %w", s, err)
		}
		return StrValue(str), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("bad literal %q", s)
	}
	return IntValue(i), nil
}

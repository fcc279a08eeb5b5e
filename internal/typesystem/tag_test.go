package typesystem

import (
	"errors"
	"testing"
)

func TestTagLattice(t *testing.T) {
	tests := []struct {
		tag         TypeTag
		name        string
		code        int
		concrete    bool
		disjunctive bool
		kinds       int
	}{
		{Undefined, "undefined", -1, false, false, 0},
		{Int, "int", 1, true, false, 1},
		{Str, "string", 2, true, false, 1},
		{IntOrStr, "int|string", 3, false, true, 2},
		{Bool, "bool", 4, true, false, 1},
		{IntOrBool, "int|bool", 5, false, true, 2},
		{StrOrBool, "string|bool", 6, false, true, 2},
		{IntOrStrOrBool, "int|string|bool", 7, false, true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.name {
				t.Errorf("String() = %s, want %s", got, tt.name)
			}
			if got := tt.tag.Code(); got != tt.code {
				t.Errorf("Code() = %d, want %d", got, tt.code)
			}
			if got := tt.tag.IsConcrete(); got != tt.concrete {
				t.Errorf("IsConcrete() = %v, want %v", got, tt.concrete)
			}
			if got := tt.tag.IsDisjunctive(); got != tt.disjunctive {
				t.Errorf("IsDisjunctive() = %v, want %v", got, tt.disjunctive)
			}
			if got := len(tt.tag.Kinds()); got != tt.kinds {
				t.Errorf("len(Kinds()) = %d, want %d", got, tt.kinds)
			}

			back, err := FromCode(tt.code)
			if err != nil || back != tt.tag {
				t.Errorf("FromCode(%d) = %s, %v", tt.code, back, err)
			}
			parsed, err := ParseTag(tt.name)
			if err != nil || parsed != tt.tag {
				t.Errorf("ParseTag(%q) = %s, %v", tt.name, parsed, err)
			}
			if !tt.tag.Valid() {
				t.Errorf("Valid() = false")
			}
		})
	}
}

func TestTagUnionIntersect(t *testing.T) {
	if got := Int.Union(Str); got != IntOrStr {
		t.Errorf("Int ∪ Str = %s, want int|string", got)
	}
	if got := IntOrStr.Union(Bool); got != IntOrStrOrBool {
		t.Errorf("IntOrStr ∪ Bool = %s", got)
	}
	if got := Undefined.Union(Bool); got != Bool {
		t.Errorf("Undefined ∪ Bool = %s, want bool", got)
	}
	if got := IntOrStr.Intersect(StrOrBool); got != Str {
		t.Errorf("IntOrStr ∩ StrOrBool = %s, want string", got)
	}
	if got := Int.Intersect(Bool); got != Undefined {
		t.Errorf("Int ∩ Bool = %s, want undefined", got)
	}

	if !IntOrStrOrBool.Contains(IntOrBool) {
		t.Errorf("any should contain int|bool")
	}
	if IntOrStr.Contains(Bool) {
		t.Errorf("int|string should not contain bool")
	}
	if !Int.Contains(Undefined) {
		t.Errorf("every tag contains undefined")
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		input   string
		want    TypeTag
		wantErr bool
	}{
		{"bool|int", IntOrBool, false},
		{" String | BOOL ", StrOrBool, false},
		{"str", Str, false},
		{"boolean", Bool, false},
		{"any", IntOrStrOrBool, false},
		{"int|int", Int, false},
		{"", Undefined, true},
		{"float", Undefined, true},
		{"int|any", Undefined, true},
		{"int|", Undefined, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrInvalidTag) {
					t.Errorf("error %v should wrap ErrInvalidTag", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseTag(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestFromCodeRejectsUnknown(t *testing.T) {
	for _, code := range []int{0, 8, -2, 100} {
		if _, err := FromCode(code); !errors.Is(err, ErrInvalidCode) {
			t.Errorf("FromCode(%d) error = %v, want ErrInvalidCode", code, err)
		}
	}
	if TypeTag(9).Valid() {
		t.Errorf("TypeTag(9) should be invalid")
	}
	if got := TypeTag(9).String(); got != "TypeTag(9)" {
		t.Errorf("TypeTag(9).String() = %s", got)
	}
}

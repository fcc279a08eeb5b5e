// Package decls reads and writes declaration files: YAML documents listing
// symbol entries.
//
//	symbols:
//	  - name: count
//	    value: 7
//	  - name: label
//	    type: string
//	    value: "total"
//	  - name: pending
//	    type: int|string|bool
//
// The type may be omitted when a value is given; it is then taken from the
// value. A disjunctive type with a value declares the binding and narrows it
// in one step, so the value must be one of the listed kinds.
package decls

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/typesystem"
)

// File is the top-level document.
type File struct {
	Symbols []Decl `yaml:"symbols"`
}

// Decl is one declaration as written in the file.
type Decl struct {
	Name  string      `yaml:"name"`
	Type  string      `yaml:"type,omitempty"`
	Value interface{} `yaml:"value,omitempty"`

	line int
}

// rawFile keeps per-declaration nodes so errors can carry line numbers.
type rawFile struct {
	Symbols []yaml.Node `yaml:"symbols"`
}

// DeclError reports a declaration that could not become an entry.
type DeclError struct {
	Line int
	Name string
	Err  error
}

func (e *DeclError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Name, e.Err)
}

func (e *DeclError) Unwrap() error { return e.Err }

// Load reads a declaration file.
func Load(path string) (symbols.Entries, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Decode parses declaration file content. Every bad declaration is
// reported; the returned error joins them.
func Decode(data []byte) (symbols.Entries, error) {
	var raw rawFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	var errs []error
	entries := make(symbols.Entries, 0, len(raw.Symbols))
	for i := range raw.Symbols {
		node := &raw.Symbols[i]
		var d Decl
		if err := node.Decode(&d); err != nil {
			errs = append(errs, &DeclError{Line: node.Line, Err: err})
			continue
		}
		d.line = node.Line

		e, err := d.Entry()
		if err != nil {
			errs = append(errs, &DeclError{Line: d.line, Name: d.Name, Err: err})
			continue
		}
		entries = append(entries, e)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return entries, nil
}

// Entry converts the declaration into a symbol entry.
func (d Decl) Entry() (symbols.Entry, error) {
	if d.Name == "" {
		return symbols.Entry{}, errors.New("missing name")
	}

	tag := typesystem.Undefined
	if d.Type != "" {
		t, err := typesystem.ParseTag(d.Type)
		if err != nil {
			return symbols.Entry{}, err
		}
		tag = t
	}

	if d.Value == nil {
		if d.Type == "" {
			return symbols.Entry{}, errors.New("needs a type or a value")
		}
		return symbols.DeclareEntry(d.Name, tag)
	}

	v, err := valueFromYaml(d.Value)
	if err != nil {
		return symbols.Entry{}, err
	}

	if tag.IsConcrete() {
		if tag != v.Tag() {
			return symbols.Entry{}, typesystem.NewTypeMismatchError("declare", tag, v.Tag())
		}
		return symbols.FromValue(d.Name, v), nil
	}

	declared, err := symbols.DeclareEntry(d.Name, tag)
	if err != nil {
		return symbols.Entry{}, err
	}
	return symbols.Narrow(declared, v)
}

// valueFromYaml converts a decoded YAML scalar. yaml.v3 yields int for
// integers that fit and uint64 for larger positive ones.
func valueFromYaml(raw interface{}) (typesystem.Value, error) {
	switch v := raw.(type) {
	case int:
		return typesystem.IntValue(int64(v)), nil
	case int64:
		return typesystem.IntValue(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return typesystem.Value{}, fmt.Errorf("integer %d out of range", v)
		}
		return typesystem.IntValue(int64(v)), nil
	case string:
		return typesystem.StrValue(v), nil
	case bool:
		return typesystem.BoolValue(v), nil
	default:
		return typesystem.Value{}, fmt.Errorf("unsupported value %v (%T)", raw, raw)
	}
}

// FromEntry converts an entry back into its declaration.
func FromEntry(e symbols.Entry) Decl {
	d := Decl{Name: e.Name(), Type: e.Tag().String()}
	info := e.TypeInfo()
	switch e.Tag() {
	case typesystem.Int:
		d.Value, _ = info.AsInt()
	case typesystem.Str:
		d.Value, _ = info.AsStr()
	case typesystem.Bool:
		d.Value, _ = info.AsBool()
	}
	return d
}

// Encode renders entries as a declaration file.
func Encode(entries symbols.Entries) ([]byte, error) {
	f := File{Symbols: make([]Decl, 0, len(entries))}
	for _, e := range entries {
		f.Symbols = append(f.Symbols, FromEntry(e))
	}
	out, err := yaml.Marshal(&f)
	if err != nil {
		return nil, fmt.Errorf("encoding declarations: %w", err)
	}
	return out, nil
}

// Write encodes entries to path.
func Write(path string, entries symbols.Entries) error {
	out, err := Encode(entries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Package session plays the symbol-table side of the contract in an
// interactive loop: it declares, narrows and widens bindings by building
// new entries and appending them, never by editing old ones.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/funvibe/symtab/internal/decls"
	"github.com/funvibe/symtab/internal/prettyprinter"
	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/typesystem"
)

const Help = `commands:
  let NAME = LITERAL       bind NAME to an int, "string" or bool
  declare NAME TYPE        bind NAME to a type without a value (e.g. int|string)
  narrow NAME = LITERAL    replace NAME with a value its type admits
  join NAME TYPE           widen NAME's type by TYPE
  get NAME as KIND         read NAME's value as int, string or bool
  show NAME                print NAME
  list                     print every binding
  load FILE                append the declarations in FILE
  help                     print this text`

var errUsage = errors.New("usage")

type Session struct {
	entries symbols.Entries
	printer *prettyprinter.EntryPrinter
}

func New(color bool) *Session {
	return &Session{printer: prettyprinter.NewEntryPrinter(color)}
}

// Entries returns the session's declarations in order.
func (s *Session) Entries() symbols.Entries {
	out := make(symbols.Entries, len(s.entries))
	copy(out, s.entries)
	return out
}

// Exec runs one command line and returns its output.
func (s *Session) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}
	cmd, rest := splitWord(line)

	switch cmd {
	case "let":
		name, v, err := parseAssign(rest)
		if err != nil {
			return "", usageError("let NAME = LITERAL", err)
		}
		return s.bind(symbols.FromValue(name, v)), nil

	case "declare":
		name, typ := splitWord(rest)
		if name == "" || typ == "" {
			return "", usageError("declare NAME TYPE", errUsage)
		}
		tag, err := typesystem.ParseTag(typ)
		if err != nil {
			return "", err
		}
		e, err := symbols.DeclareEntry(name, tag)
		if err != nil {
			return "", err
		}
		return s.bind(e), nil

	case "narrow":
		name, v, err := parseAssign(rest)
		if err != nil {
			return "", usageError("narrow NAME = LITERAL", err)
		}
		cur, err := s.entries.Find(name)
		if err != nil {
			return "", err
		}
		e, err := symbols.Narrow(cur, v)
		if err != nil {
			return "", err
		}
		return s.bind(e), nil

	case "join":
		name, typ := splitWord(rest)
		if name == "" || typ == "" {
			return "", usageError("join NAME TYPE", errUsage)
		}
		tag, err := typesystem.ParseTag(typ)
		if err != nil {
			return "", err
		}
		cur, err := s.entries.Find(name)
		if err != nil {
			return "", err
		}
		e, err := symbols.Widen(cur, tag)
		if err != nil {
			return "", err
		}
		return s.bind(e), nil

	case "get":
		fields := strings.Fields(rest)
		if len(fields) != 3 || fields[1] != "as" {
			return "", usageError("get NAME as KIND", errUsage)
		}
		cur, err := s.entries.Find(fields[0])
		if err != nil {
			return "", err
		}
		return get(cur, fields[2])

	case "show":
		if rest == "" {
			return "", usageError("show NAME", errUsage)
		}
		cur, err := s.entries.Find(rest)
		if err != nil {
			return "", err
		}
		return s.printer.PrintEntry(cur), nil

	case "list":
		return strings.TrimSuffix(s.printer.Print(s.entries.Latest()), "\n"), nil

	case "load":
		if rest == "" {
			return "", usageError("load FILE", errUsage)
		}
		loaded, err := decls.Load(rest)
		if err != nil {
			return "", err
		}
		s.entries = append(s.entries, loaded...)
		return fmt.Sprintf("loaded %d declarations", len(loaded)), nil

	case "help":
		return Help, nil
	}
	return "", fmt.Errorf("unknown command %q (try help)", cmd)
}

func (s *Session) bind(e symbols.Entry) string {
	s.entries = append(s.entries, e)
	return s.printer.PrintEntry(e)
}

func get(e symbols.Entry, kind string) (string, error) {
	tag, err := typesystem.ParseTag(kind)
	if err != nil {
		return "", err
	}
	var out string
	switch tag {
	case typesystem.Int:
		var v int64
		v, err = e.AsInt()
		out = fmt.Sprint(v)
	case typesystem.Str:
		var v string
		v, err = e.AsStr()
		out = fmt.Sprintf("%q", v)
	case typesystem.Bool:
		var v bool
		v, err = e.AsBool()
		out = fmt.Sprint(v)
	default:
		return "", fmt.Errorf("get: %s is not a concrete kind", tag)
	}
	if err != nil {
		return "", err
	}
	return out, nil
}

func splitWord(s string) (string, string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], strings.TrimSpace(s[i+1:])
	}
	return s, ""
}

// parseAssign reads `NAME = LITERAL`.
func parseAssign(s string) (string, typesystem.Value, error) {
	i := strings.Index(s, "=")
	if i < 0 {
		return "", typesystem.Value{}, errUsage
	}
	name := strings.TrimSpace(s[:i])
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", typesystem.Value{}, errUsage
	}
	v, err := typesystem.ParseLiteral(strings.TrimSpace(s[i+1:]))
	if err != nil {
		return "", typesystem.Value{}, err
	}
	return name, v, nil
}

func usageError(usage string, err error) error {
	if errors.Is(err, errUsage) {
		return fmt.Errorf("usage: %s", usage)
	}
	return fmt.Errorf("%w (usage: %s)", err, usage)
}

package prettyprinter

import (
	"os"
	"strings"
	"testing"

	"github.com/funvibe/symtab/internal/config"
	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/typesystem"
)

func TestPrintAligned(t *testing.T) {
	pending, _ := symbols.DeclareEntry("pending", typesystem.IntOrStrOrBool)
	entries := symbols.Entries{
		symbols.NewIntEntry("count", 7),
		symbols.NewStrEntry("label", "a b"),
		symbols.NewBoolEntry("ok", true),
		pending,
		symbols.NewEntry(),
	}

	want := strings.Join([]string{
		`count   : int = 7`,
		`label   : string = "a b"`,
		`ok      : bool = true`,
		`pending : int|string|bool`,
		`_       : undefined`,
	}, "\n") + "\n"

	got := NewEntryPrinter(false).Print(entries)
	if got != want {
		t.Errorf("Print() =\n%s\nwant\n%s", got, want)
	}
}

func TestPrintColor(t *testing.T) {
	p := NewEntryPrinter(true)
	got := p.PrintEntry(symbols.NewIntEntry("n", 3))
	want := ansiBold + "n" + ansiReset + " : " + ansiCyan + "int" + ansiReset + " = " + ansiYellow + "3" + ansiReset
	if got != want {
		t.Errorf("PrintEntry() = %q, want %q", got, want)
	}

	if plain := NewEntryPrinter(false).PrintEntry(symbols.NewIntEntry("n", 3)); plain != "n : int = 3" {
		t.Errorf("PrintEntry() = %q", plain)
	}
}

func TestColorEnabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if !ColorEnabled(config.ColorAlways, f) {
		t.Errorf("always should enable colour")
	}
	if ColorEnabled(config.ColorNever, f) {
		t.Errorf("never should disable colour")
	}
	if ColorEnabled(config.ColorAuto, f) {
		t.Errorf("auto should disable colour for a regular file")
	}
}

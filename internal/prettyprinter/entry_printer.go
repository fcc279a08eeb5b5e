package prettyprinter

import (
	"bytes"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/symtab/internal/config"
	"github.com/funvibe/symtab/internal/symbols"
	"github.com/funvibe/symtab/internal/typesystem"
)

// ANSI escape sequences used by the entry listing
const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiDim     = "\033[2m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// ColorEnabled resolves a colour mode against the output file.
// "auto" means colour on a terminal, unless NO_COLOR is set, TERM is dumb
// or the program runs in test mode.
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if config.IsTestMode || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// EntryPrinter renders entries one per line with aligned names:
//
//	count   : int = 7
//	pending : int|string|bool
type EntryPrinter struct {
	buf   bytes.Buffer
	color bool
}

func NewEntryPrinter(color bool) *EntryPrinter {
	return &EntryPrinter{color: color}
}

// Print renders entries and returns the text. The printer is reset first.
func (p *EntryPrinter) Print(entries symbols.Entries) string {
	p.buf.Reset()

	width := 0
	for _, e := range entries {
		if n := len(displayName(e)); n > width {
			width = n
		}
	}
	for _, e := range entries {
		p.writeEntry(e, width)
		p.buf.WriteByte('\n')
	}
	return p.buf.String()
}

// PrintEntry renders a single entry without padding or newline.
func (p *EntryPrinter) PrintEntry(e symbols.Entry) string {
	p.buf.Reset()
	p.writeEntry(e, 0)
	return p.buf.String()
}

func (p *EntryPrinter) writeEntry(e symbols.Entry, width int) {
	name := displayName(e)
	p.write(ansiBold, name)
	if pad := width - len(name); pad > 0 {
		p.buf.WriteString(strings.Repeat(" ", pad))
	}
	p.buf.WriteString(" : ")

	info := e.TypeInfo()
	lit, ok := info.Literal()
	if !ok {
		p.write(ansiDim, e.Tag().String())
		return
	}
	p.write(ansiCyan, e.Tag().String())
	p.buf.WriteString(" = ")
	p.write(literalColor(e.Tag()), lit)
}

func (p *EntryPrinter) write(style, s string) {
	if !p.color {
		p.buf.WriteString(s)
		return
	}
	p.buf.WriteString(style)
	p.buf.WriteString(s)
	p.buf.WriteString(ansiReset)
}

func displayName(e symbols.Entry) string {
	if e.Name() == "" {
		return "_"
	}
	return e.Name()
}

func literalColor(tag typesystem.TypeTag) string {
	switch tag {
	case typesystem.Int:
		return ansiYellow
	case typesystem.Str:
		return ansiGreen
	default:
		return ansiMagenta
	}
}

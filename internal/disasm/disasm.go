// Package disasm turns decoded instructions into listing lines shared by the
// text, JSON and interactive outputs.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"dolasm/internal/analysis"
	"dolasm/internal/ppc"
)

// Line is one rendered instruction.
type Line struct {
	Addr     uint32   `json:"address"`
	Raw      uint32   `json:"raw"`
	Label    string   `json:"label,omitempty"`
	Mnemonic string   `json:"mnemonic"`
	Text     string   `json:"text"`          // structured form
	GNU      string   `json:"gnu,omitempty"` // GNU or Go assembler syntax
	Comments []string `json:"comments,omitempty"`
}

// Listing is a decoded span. Err carries a decode failure that cut it short.
type Listing struct {
	Name  string `json:"name,omitempty"`
	Start uint32 `json:"start"`
	End   uint32 `json:"end"`
	Stop  string `json:"stop"`
	Lines []Line `json:"lines"`
	Err   string `json:"error,omitempty"`
}

type Options struct {
	Syntax ppc.Syntax
	Labels map[uint32]string
	Notes  analysis.Notes
}

// Build renders insts. The GNU column is filled only for non-struct syntaxes.
func Build(insts []ppc.Instruction, opts Options) []Line {
	lines := make([]Line, 0, len(insts))
	for _, inst := range insts {
		l := Line{
			Addr:     inst.Address,
			Raw:      inst.Raw,
			Label:    opts.Labels[inst.Address],
			Mnemonic: ppc.Mnemonic(inst.Op),
			Text:     inst.String(),
			Comments: opts.Notes[inst.Address],
		}
		if opts.Syntax != ppc.SyntaxStruct && opts.Syntax != "" {
			l.GNU = ppc.Render(inst, opts.Syntax)
		}
		lines = append(lines, l)
	}
	return lines
}

// NewListing annotates a decoded span and renders it.
func NewListing(name string, span analysis.Span, insts []ppc.Instruction, decodeErr error, opts Options) Listing {
	l := Listing{
		Name:  name,
		Start: span.Start,
		End:   span.End,
		Stop:  span.Stop.String(),
		Lines: Build(insts, opts),
	}
	if decodeErr != nil {
		l.Err = decodeErr.Error()
	}
	return l
}

// Body is the instruction column: assembler text when present, else the
// structured form.
func (l Line) Body() string {
	if l.GNU != "" {
		return fmt.Sprintf("%08x  %s", l.Raw, l.GNU)
	}
	return l.Text
}

// String renders the line as "0xADDR body ; comments".
func (l Line) String() string {
	base := fmt.Sprintf("0x%08x %s", l.Addr, l.Body())
	if len(l.Comments) == 0 {
		return base
	}
	if l.GNU != "" {
		base = fmt.Sprintf("%-52s", base)
	}
	return fmt.Sprintf("%s ; %s", base, strings.Join(l.Comments, ", "))
}

// Format writes the listing, one instruction per line, with labels on their
// own line. colorize may be nil.
func Format(w io.Writer, lines []Line, colorize func(string) string) error {
	for _, l := range lines {
		if l.Label != "" {
			if _, err := fmt.Fprintf(w, "%s:\n", l.Label); err != nil {
				return err
			}
		}
		s := l.String()
		if colorize != nil {
			s = colorize(s)
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

// FormatListing writes a header comment followed by the lines.
func FormatListing(w io.Writer, l Listing, colorize func(string) string) error {
	header := fmt.Sprintf("; %s 0x%08x-0x%08x (%s)", l.Name, l.Start, l.End, l.Stop)
	if l.Name == "" {
		header = fmt.Sprintf("; 0x%08x-0x%08x (%s)", l.Start, l.End, l.Stop)
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	if err := Format(w, l.Lines, colorize); err != nil {
		return err
	}
	if l.Err != "" {
		_, err := fmt.Fprintf(w, "; stopped: %s\n", l.Err)
		return err
	}
	return nil
}

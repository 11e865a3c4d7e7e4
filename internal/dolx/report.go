package dolx

import (
	"fmt"
	"strings"
)

// HeaderReport is the display form of a header: the non-empty sections plus
// a count of the zero-size descriptors left out.
type HeaderReport struct {
	BssAddress uint32    `json:"bssAddress"`
	BssSize    uint32    `json:"bssSize"`
	EntryPoint uint32    `json:"entryPoint"`
	Sections   []Section `json:"sections"`
	Omitted    int       `json:"omitted"`
}

func (h *Header) Report() HeaderReport {
	return HeaderReport{
		BssAddress: h.BssAddress,
		BssSize:    h.BssSize,
		EntryPoint: h.EntryPoint,
		Sections:   h.Sections.NonEmpty(),
		Omitted:    h.Sections.Omitted(),
	}
}

// FieldLines renders the bss and entry point lines.
func (r HeaderReport) FieldLines() []string {
	return []string{
		fmt.Sprintf("BSS address: %x", r.BssAddress),
		fmt.Sprintf("BSS size: %x", r.BssSize),
		fmt.Sprintf("Entrypoint: %x", r.EntryPoint),
	}
}

// SectionLines renders one line per section followed by the omitted count.
func (r HeaderReport) SectionLines() []string {
	lines := make([]string, 0, len(r.Sections)+1)
	for _, s := range r.Sections {
		lines = append(lines, fmt.Sprintf("%2d %-6s offset 0x%08x address 0x%08x size 0x%08x",
			s.Index, s.Name(), s.FileOffset, s.LoadAddress, s.Size))
	}
	if r.Omitted > 0 {
		lines = append(lines, OmittedLine(r.Omitted))
	}
	return lines
}

func OmittedLine(n int) string {
	if n == 1 {
		return "1 section with size 0 was omitted"
	}
	return fmt.Sprintf("%d sections with size 0 were omitted", n)
}

func (r HeaderReport) String() string {
	return strings.Join(append(r.FieldLines(), r.SectionLines()...), "\n")
}

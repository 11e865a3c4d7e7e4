package analysis

import (
	"fmt"
	"log/slog"

	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
)

type StopReason uint8

const (
	StopExplicit StopReason = iota
	StopReturn
	StopSectionEnd
	StopInstructionCap
)

func (r StopReason) String() string {
	switch r {
	case StopReturn:
		return "return"
	case StopSectionEnd:
		return "section end"
	case StopInstructionCap:
		return "instruction cap"
	}
	return "explicit"
}

// Span is a concrete [Start, End) byte range. End is clamped to 0xffffffff.
type Span struct {
	Start uint32
	End   uint32
	Stop  StopReason
}

func (s Span) Len() uint32 {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

func (s Span) Contains(addr uint32) bool { return addr >= s.Start && addr < s.End }

func (s Span) String() string {
	return fmt.Sprintf("[0x%08x, 0x%08x) %s", s.Start, s.End, s.Stop)
}

type Options struct {
	// MaxInstructions caps the heuristic scan. Zero means DefaultMaxInstructions.
	MaxInstructions int
}

func (o Options) maxInstructions() int {
	if o.MaxInstructions <= 0 {
		return DefaultMaxInstructions
	}
	return o.MaxInstructions
}

// ResolveSpan turns a range into concrete bounds. Explicit and length ends
// are plain arithmetic; an explicit end at or before the start gives an
// empty span. The heuristic end scans forward from Start and stops just
// after the first unconditional blr, at the end of the containing section,
// or after the instruction cap, whichever comes first. Tail calls, code
// after an early return and computed branches are not recognized.
func ResolveSpan(img *dolx.Image, rng AddressRange, opts Options) (Span, error) {
	switch rng.End.Kind {
	case EndExplicit:
		end := rng.End.Value
		if end < rng.Start {
			end = rng.Start
		}
		return Span{Start: rng.Start, End: end, Stop: StopExplicit}, nil
	case EndLength:
		return Span{Start: rng.Start, End: clampEnd(uint64(rng.Start) + uint64(rng.End.Value)), Stop: StopExplicit}, nil
	}
	return scanFunction(img, rng.Start, opts.maxInstructions())
}

func scanFunction(img *dolx.Image, start uint32, maxInsns int) (Span, error) {
	if _, err := img.Resolve(start); err != nil {
		return Span{}, err
	}
	sec, _ := img.SectionAt(start)
	secEnd := sec.End()

	addr := uint64(start)
	for n := 0; ; n++ {
		if addr+instructionSize > secEnd {
			slog.Debug("function scan hit section end", "start", hex32(start), "section", sec.Name())
			return Span{Start: start, End: clampEnd(addr), Stop: StopSectionEnd}, nil
		}
		if n >= maxInsns {
			slog.Debug("function scan hit instruction cap", "start", hex32(start), "cap", maxInsns)
			return Span{Start: start, End: clampEnd(addr), Stop: StopInstructionCap}, nil
		}
		b, err := img.ReadAt(uint32(addr), instructionSize)
		if err != nil {
			return Span{}, err
		}
		inst, err := ppc.DecodeBytes(b, uint32(addr))
		if err != nil {
			return Span{}, err
		}
		addr += instructionSize
		if ppc.IsReturn(inst.Op) {
			return Span{Start: start, End: clampEnd(addr), Stop: StopReturn}, nil
		}
	}
}

func clampEnd(end uint64) uint32 {
	if end > 0xffffffff {
		return 0xffffffff
	}
	return uint32(end)
}

func hex32(v uint32) string { return fmt.Sprintf("0x%08x", v) }

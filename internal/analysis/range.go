package analysis

import (
	"fmt"
	"strconv"
	"strings"
)

type EndKind uint8

const (
	// EndHeuristic scans for the function end.
	EndHeuristic EndKind = iota
	// EndExplicit is an exclusive end address.
	EndExplicit
	// EndLength is a byte count from the start.
	EndLength
)

// EndSpec says where a range stops.
type EndSpec struct {
	Kind  EndKind
	Value uint32
}

func Explicit(addr uint32) EndSpec { return EndSpec{Kind: EndExplicit, Value: addr} }
func Length(n uint32) EndSpec      { return EndSpec{Kind: EndLength, Value: n} }
func Heuristic() EndSpec           { return EndSpec{Kind: EndHeuristic} }

type AddressRange struct {
	Start uint32
	End   EndSpec
}

// String renders the range in the same syntax ParseRange accepts.
func (r AddressRange) String() string {
	switch r.End.Kind {
	case EndExplicit:
		return fmt.Sprintf("%x:%x", r.Start, r.End.Value)
	case EndLength:
		return fmt.Sprintf("%x:+%d", r.Start, r.End.Value)
	}
	return fmt.Sprintf("%x:", r.Start)
}

// ParseRange parses `start:end`, `start:+length` and `start:`. Addresses are
// hexadecimal with an optional 0x prefix; the length is decimal bytes.
func ParseRange(s string) (AddressRange, error) {
	startText, endText, ok := strings.Cut(s, ":")
	if !ok {
		return AddressRange{}, fmt.Errorf("invalid address range %q, expected <start>:<end?> (end is optional)", s)
	}
	start, err := parseHex(startText)
	if err != nil {
		return AddressRange{}, fmt.Errorf("failed to parse start address: %w", err)
	}

	switch {
	case endText == "":
		return AddressRange{Start: start, End: Heuristic()}, nil
	case strings.HasPrefix(endText, "+"):
		n, err := strconv.ParseUint(endText[1:], 10, 32)
		if err != nil {
			return AddressRange{}, fmt.Errorf("failed to parse length: %w", err)
		}
		return AddressRange{Start: start, End: Length(uint32(n))}, nil
	default:
		end, err := parseHex(endText)
		if err != nil {
			return AddressRange{}, fmt.Errorf("failed to parse end address: %w", err)
		}
		return AddressRange{Start: start, End: Explicit(end)}, nil
	}
}

// ParseAddress parses a single hexadecimal address.
func ParseAddress(s string) (uint32, error) { return parseHex(s) }

func parseHex(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

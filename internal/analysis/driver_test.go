package analysis

import (
	"errors"
	"testing"

	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
)

func addresses(insts []ppc.Instruction) []uint32 {
	out := make([]uint32, len(insts))
	for i, inst := range insts {
		out[i] = inst.Address
	}
	return out
}

func TestDisassemble(t *testing.T) {
	img := fixture(t)
	tests := []struct {
		name      string
		rng       AddressRange
		wantCount int
		wantErr   error
	}{
		{"length of 16 crosses blr", AddressRange{0x8000311c, Length(16)}, 4, nil},
		{"heuristic", AddressRange{fnA, Heuristic()}, 9, nil},
		{"explicit into contiguous section", AddressRange{0x80003138, Explicit(0x80003148)}, 4, nil},
		{"partial trailing word", AddressRange{fnA, Length(6)}, 2, nil},
		{"empty", AddressRange{fnA, Explicit(fnA)}, 0, nil},
		{"explicit into bss", AddressRange{bss, Length(8)}, 0, dolx.ErrNoFileBacking},
		{"runs off section", AddressRange{0x80005008, Length(8)}, 1, dolx.ErrAddressOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stream, err := Disassemble(img, tt.rng, Options{})
			if err != nil {
				t.Fatalf("Disassemble: %v", err)
			}
			insts, err := stream.Collect()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Collect() error = %v, want %v", err, tt.wantErr)
			}
			if len(insts) != tt.wantCount {
				t.Fatalf("Collect() = %d instructions %x, want %d", len(insts), addresses(insts), tt.wantCount)
			}
			for i, inst := range insts {
				if want := tt.rng.Start + uint32(4*i); inst.Address != want {
					t.Errorf("insts[%d].Address = 0x%x, want 0x%x", i, inst.Address, want)
				}
			}
		})
	}
}

func TestStreamRestartable(t *testing.T) {
	img := fixture(t)
	stream, err := Disassemble(img, AddressRange{fnA, Heuristic()}, Options{})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}

	it := stream.Iter()
	if _, ok := it.Next(); !ok {
		t.Fatal("first Next() = false")
	}
	// Abandon it and start over.
	first, _ := stream.Collect()
	second, _ := stream.Collect()
	if len(first) != 9 || len(second) != 9 {
		t.Fatalf("Collect() lengths = %d, %d, want 9", len(first), len(second))
	}
	if _, ok := first[8].Op.(ppc.Bclr); !ok {
		t.Errorf("last op = %v, want Bclr", first[8])
	}

	n := 0
	for inst, err := range stream.All() {
		if err != nil {
			t.Fatalf("All(): %v", err)
		}
		if inst.Address != first[n].Address {
			t.Errorf("All()[%d] = 0x%x, want 0x%x", n, inst.Address, first[n].Address)
		}
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("All() stopped after %d", n)
	}
}

func TestStreamAllYieldsError(t *testing.T) {
	img := fixture(t)
	stream := newStream(img, Span{Start: 0x80005008, End: 0x80005010})
	var errs []error
	count := 0
	for _, err := range stream.All() {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		count++
	}
	if count != 1 || len(errs) != 1 || !errors.Is(errs[0], dolx.ErrAddressOutOfRange) {
		t.Errorf("All() = %d instructions, errors %v", count, errs)
	}
}

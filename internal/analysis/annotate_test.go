package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"dolasm/internal/dolx"
	"dolasm/internal/dolx/doltest"
)

func TestAnnotatorChain(t *testing.T) {
	img := fixture(t)
	insts := collect(t, fnA)
	labels := BuildCFG("fnA", insts).Labels()

	chain := NewAnnotatorChain(
		BranchTargets{Labels: labels},
		AddressRefs{Img: img, Labels: labels},
	)
	got := chain.Annotate(insts)

	want := Notes{
		0x80003108: {"-> fn_80003128"},
		0x80003110: {`"hello, world"`},
		0x80003114: {"-> loc_8000311c"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Annotate mismatch (-want +got):\n%s", diff)
	}
}

func TestSmallDataBases(t *testing.T) {
	img := startupFixture(t)
	bases := FindSmallDataBases(img, Options{})
	want := map[uint32]uint32{13: 0x80004000, 2: 0x80004006}
	got := make(map[uint32]uint32)
	for r, v := range bases {
		got[uint32(r)] = v
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("FindSmallDataBases mismatch (-want +got):\n%s", diff)
	}

	stream, err := Disassemble(img, AddressRange{Start: 0x80003100, End: Heuristic()}, Options{})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	insts, _ := stream.Collect()
	notes := NewAnnotatorChain(AddressRefs{Img: img, Bases: bases}).Annotate(insts)
	if diff := cmp.Diff(Notes{0x80003108: {`"world"`}}, notes); diff != "" {
		t.Errorf("r13 relative annotation mismatch (-want +got):\n%s", diff)
	}
}

func TestTryResolveCString(t *testing.T) {
	img := fixture(t)
	tests := []struct {
		name string
		addr uint32
		want string
		ok   bool
	}{
		{"start", data0, "hello, world", true},
		{"middle", data0 + 7, "world", true},
		{"empty string", data0 + 12, "", false},
		{"code", fnA, "", false},
		{"bss", bss, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TryResolveCString(img, tt.addr)
			if got != tt.want || ok != tt.ok {
				t.Errorf("TryResolveCString(0x%x) = (%q, %v), want (%q, %v)", tt.addr, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestEscapeUnprintable(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("plain"), "plain"},
		{[]byte("tab\there"), `tab\u0009here`},
		{[]byte{0xff, 'a'}, `\xFFa`},
	}
	for _, tt := range tests {
		if got := EscapeUnprintable(tt.in); got != tt.want {
			t.Errorf("EscapeUnprintable(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAddressRefsIgnoresTextStrings(t *testing.T) {
	raw := doltest.Image{
		Sections: []doltest.Section{
			{Index: 0, Addr: 0x80003100, Data: doltest.Words(
				0x3c608000, // lis r3,0x8000
				0x38633110, // addi r3,r3,0x3110
				0x4e800020, // blr
				0x60000000, // nop
				0x61626300, // "abc"
			)},
		},
		EntryPoint: 0x80003100,
	}.Bytes()
	img, err := dolx.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	stream, err := Disassemble(img, AddressRange{Start: 0x80003100, End: Heuristic()}, Options{})
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	insts, _ := stream.Collect()
	notes := NewAnnotatorChain(AddressRefs{Img: img}).Annotate(insts)
	if diff := cmp.Diff(Notes{0x80003104: {"0x80003110 (Text0)"}}, notes); diff != "" {
		t.Errorf("text reference mismatch (-want +got):\n%s", diff)
	}
}

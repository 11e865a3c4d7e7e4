package analysis

import (
	"testing"

	"dolasm/internal/dolx"
	"dolasm/internal/dolx/doltest"
)

const (
	fnA   = 0x80003100 // prologue, call to fnB, string ref, conditional branch, blr
	fnB   = 0x80003128 // li r3,1; blr
	fnC   = 0x80003130 // tail branch to fnB
	fnD   = 0x80003134 // call into bss; blr
	text2 = 0x80003140 // contiguous with text0
	text1 = 0x80005000 // no terminator
	data0 = 0x80004000
	bss   = 0x80010000
)

// fixture builds a small image with hand-assembled functions.
func fixture(t *testing.T) *dolx.Image {
	t.Helper()
	raw := doltest.Image{
		Sections: []doltest.Section{
			{Index: 0, Addr: fnA, Data: doltest.Words(
				0x9421ffe0, // stwu r1,-32(r1)
				0x7c0802a6, // mflr r0
				0x48000021, // bl fnB
				0x3c608000, // lis r3,0x8000
				0x38634000, // addi r3,r3,0x4000
				0x41820008, // beq 0x8000311c
				0x38600000, // li r3,0
				0x7c0803a6, // mtlr r0
				0x4e800020, // blr
				0x60000000, // nop
				0x38600001, // fnB: li r3,1
				0x4e800020, // blr
				0x4bfffff8, // fnC: b fnB
				0x4800cecd, // fnD: bl 0x80010000
				0x4e800020, // blr
				0x60000000, // nop
			)},
			{Index: 2, Addr: text2, Data: doltest.Words(0x60000000, 0x4e800020)},
			{Index: 1, Addr: text1, Data: doltest.Words(0x60000000, 0x60000000, 0x60000000)},
			{Index: 7, Addr: data0, Data: []byte("hello, world\x00\x00\x00\x00")},
		},
		BssAddress: bss,
		BssSize:    0x1000,
		EntryPoint: fnA,
	}.Bytes()
	img, err := dolx.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return img
}

// startupFixture mimics EABI startup code: the entry calls a routine that
// loads r13 and r2, then uses r13 relative addressing.
func startupFixture(t *testing.T) *dolx.Image {
	t.Helper()
	raw := doltest.Image{
		Sections: []doltest.Section{
			{Index: 0, Addr: 0x80003100, Data: doltest.Words(
				0x9421ffe0, // stwu r1,-32(r1)
				0x4800000d, // bl 0x80003110
				0x386d0006, // addi r3,r13,6
				0x4e800020, // blr
				0x3da08000, // lis r13,0x8000
				0x61ad4000, // ori r13,r13,0x4000
				0x3c408000, // lis r2,0x8000
				0x38424006, // addi r2,r2,0x4006
				0x4e800020, // blr
			)},
			{Index: 7, Addr: data0, Data: []byte("hello\x00world\x00")},
		},
		EntryPoint: 0x80003100,
	}.Bytes()
	img, err := dolx.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return img
}

package ppc

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/arch/ppc64/ppc64asm"
)

// Syntax selects an assembler rendering of an instruction.
type Syntax string

const (
	SyntaxStruct Syntax = "struct"
	SyntaxGNU    Syntax = "gnu"
	SyntaxGo     Syntax = "go"
)

// Render formats inst in the requested syntax. The GNU and Go renderings
// come from the generic PowerPC decoder; Gekko-only encodings that it does
// not know (paired-single quantized loads and stores) are rendered locally.
func Render(inst Instruction, syntax Syntax) string {
	switch syntax {
	case SyntaxGNU, SyntaxGo:
		if s, ok := renderGekko(inst.Op); ok {
			return s
		}
		var buf [4]byte
		binary.BigEndian.PutUint32(buf[:], inst.Raw)
		decoded, err := ppc64asm.Decode(buf[:], binary.BigEndian)
		if err != nil {
			return fmt.Sprintf(".long 0x%08x", inst.Raw)
		}
		if syntax == SyntaxGo {
			return ppc64asm.GoSyntax(decoded, uint64(inst.Address), nil)
		}
		return ppc64asm.GNUSyntax(decoded, uint64(inst.Address))
	}
	return Format(inst.Op)
}

func renderGekko(op Op) (string, bool) {
	switch o := op.(type) {
	case PsqL:
		return pairedText("psq_l", uint8(o.Dest), o.Imm, o.Source, o.W, o.I), true
	case PsqLu:
		return pairedText("psq_lu", uint8(o.Dest), o.Imm, o.Source, o.W, o.I), true
	case PsqSt:
		return pairedText("psq_st", uint8(o.Source), o.Imm, o.Dest, o.W, o.I), true
	case PsqStu:
		return pairedText("psq_stu", uint8(o.Source), o.Imm, o.Dest, o.W, o.I), true
	case Unknown:
		// Opcode 4 is paired-single arithmetic on Gekko and AltiVec elsewhere.
		if o.Raw>>26 == 4 {
			return fmt.Sprintf(".long 0x%08x", o.Raw), true
		}
	}
	return "", false
}

func pairedText(mnemonic string, fr uint8, d Immediate, ra Register, w bool, i uint8) string {
	wbit := 0
	if w {
		wbit = 1
	}
	return fmt.Sprintf("%s f%d,%d(r%d),%d,%d", mnemonic, fr, int32(d), uint8(ra), wbit, i)
}

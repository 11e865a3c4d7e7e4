package ppc

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrDecodeIncomplete is returned when fewer than four bytes remain.
var ErrDecodeIncomplete = errors.New("incomplete instruction word")

// Decode decodes one big-endian instruction word located at addr. It never
// fails: encodings without a variant decode to Unknown.
func Decode(raw, addr uint32) Instruction {
	return Instruction{Address: addr, Raw: raw, Op: decodeOp(word(raw))}
}

// DecodeBytes decodes the first four bytes of b.
func DecodeBytes(b []byte, addr uint32) (Instruction, error) {
	if len(b) < 4 {
		return Instruction{}, fmt.Errorf("0x%08x: %w (%d bytes left)", addr, ErrDecodeIncomplete, len(b))
	}
	return Decode(binary.BigEndian.Uint32(b), addr), nil
}

func decodeOp(w word) Op {
	switch w.opcode() {
	case 3:
		return Twi{To: uint8(w.bits(6, 10)), Source: w.rA(), Imm: w.simm()}
	case 4:
		// Paired single arithmetic is not decoded.
		return Unknown{Raw: uint32(w)}
	case 7:
		return Mulli(arithImm(w))
	case 8:
		return Subfic(arithImm(w))
	case 10:
		return Cmpli{Crf: w.crfD(), L: w.l(), Source: w.rA(), Imm: w.uimm()}
	case 11:
		return Cmpi{Crf: w.crfD(), L: w.l(), Source: w.rA(), Imm: w.simm()}
	case 12:
		return Addic(arithImm(w))
	case 13:
		return AddicRc(arithImm(w))
	case 14:
		return Addi(arithImm(w))
	case 15:
		return Addis(arithImm(w))
	case 16:
		return Bc{
			Bo:     BranchOptions(w.bits(6, 10)),
			Bi:     uint8(w.bits(11, 15)),
			Target: w.signed(16, 29) << 2,
			Mode:   modeFromBit(w.bit(30)),
			Link:   w.bit(31),
		}
	case 17:
		if w.bit(30) {
			return Sc{}
		}
	case 18:
		return Branch{
			Target: w.signed(6, 29) << 2,
			Mode:   modeFromBit(w.bit(30)),
			Link:   w.bit(31),
		}
	case 19:
		return decode19(w)
	case 20:
		return Rlwimi(rotate(w))
	case 21:
		return Rlwinm(rotate(w))
	case 23:
		return Rlwnm{
			Source:    w.rD(),
			Dest:      w.rA(),
			RotBits:   w.rB(),
			MaskStart: Immediate(w.bits(21, 25)),
			MaskEnd:   Immediate(w.bits(26, 30)),
			Rc:        w.rc(),
		}
	case 24:
		return Ori(logicalImm(w))
	case 25:
		return Oris(logicalImm(w))
	case 26:
		return Xori(logicalImm(w))
	case 27:
		return Xoris(logicalImm(w))
	case 28:
		return Andi(logicalImm(w))
	case 29:
		return Andis(logicalImm(w))
	case 31:
		return decode31(w)
	case 32:
		return Lwz(load(w))
	case 33:
		return Lwzu(load(w))
	case 34:
		return Lbz(load(w))
	case 35:
		return Lbzu(load(w))
	case 36:
		return Stw(store(w))
	case 37:
		return Stwu(store(w))
	case 38:
		return Stb(store(w))
	case 39:
		return Stbu(store(w))
	case 40:
		return Lhz(load(w))
	case 41:
		return Lhzu(load(w))
	case 42:
		return Lha(load(w))
	case 43:
		return Lhau(load(w))
	case 44:
		return Sth(store(w))
	case 45:
		return Sthu(store(w))
	case 46:
		return Lmw(load(w))
	case 47:
		return Stmw(store(w))
	case 48:
		return Lfs(floatLoad(w))
	case 49:
		return Lfsu(floatLoad(w))
	case 50:
		return Lfd(floatLoad(w))
	case 51:
		return Lfdu(floatLoad(w))
	case 52:
		return Stfs(floatStore(w))
	case 53:
		return Stfsu(floatStore(w))
	case 54:
		return Stfd(floatStore(w))
	case 55:
		return Stfdu(floatStore(w))
	case 56:
		return PsqL(pairedLoad(w))
	case 57:
		return PsqLu(pairedLoad(w))
	case 59:
		return decode59(w)
	case 60:
		return PsqSt(pairedStore(w))
	case 61:
		return PsqStu(pairedStore(w))
	case 63:
		return decode63(w)
	}
	return Unknown{Raw: uint32(w)}
}

func decode19(w word) Op {
	cr := CondLogical{CrbDest: uint8(w.bits(6, 10)), CrbA: uint8(w.bits(11, 15)), CrbB: uint8(w.bits(16, 20))}
	switch w.xo10() {
	case 0:
		return Mcrf{Crf: w.crfD(), CrfSource: CondField(w.bits(11, 13))}
	case 16:
		return Bclr{Bo: BranchOptions(w.bits(6, 10)), Bi: uint8(w.bits(11, 15)), Link: w.bit(31)}
	case 33:
		return Crnor(cr)
	case 50:
		return Rfi{}
	case 150:
		return Isync{}
	case 193:
		return Crxor(cr)
	case 257:
		return Crand(cr)
	case 289:
		return Creqv(cr)
	case 449:
		return Cror(cr)
	case 528:
		return Bcctr{Bo: BranchOptions(w.bits(6, 10)), Bi: uint8(w.bits(11, 15)), Link: w.bit(31)}
	}
	return Unknown{Raw: uint32(w)}
}

func decode31(w word) Op {
	logical := Logical{Source: w.rD(), Dest: w.rA(), SourceB: w.rB(), Rc: w.rc()}
	unary := Unary{Source: w.rD(), Dest: w.rA(), Rc: w.rc()}
	idxLoad := IndexedLoad{Dest: w.rD(), Source: w.rA(), Index: w.rB()}
	idxStore := IndexedStore{Source: w.rD(), Dest: w.rA(), Index: w.rB()}
	cache := Cache{SourceA: w.rA(), SourceB: w.rB()}
	compare := Compare{Crf: w.crfD(), L: w.l(), SourceA: w.rA(), SourceB: w.rB()}

	switch w.xo10() {
	case 0:
		return Cmp(compare)
	case 4:
		return Tw{To: uint8(w.bits(6, 10)), SourceA: w.rA(), SourceB: w.rB()}
	case 19:
		// Bit 11 selects mfocrf.
		if !w.bit(11) {
			return Mfcr{Dest: w.rD()}
		}
	case 23:
		return Lwzx(idxLoad)
	case 24:
		return Slw(logical)
	case 26:
		return Cntlzw(unary)
	case 28:
		return And(logical)
	case 32:
		return Cmpl(compare)
	case 54:
		return Dcbst(cache)
	case 60:
		return Andc(logical)
	case 83:
		return Mfmsr{Dest: w.rD()}
	case 86:
		return Dcbf(cache)
	case 87:
		return Lbzx(idxLoad)
	case 124:
		return Nor(logical)
	case 144:
		return Mtcrf{Crm: uint8(w.bits(12, 19)), Source: w.rD()}
	case 146:
		return Mtmsr{Source: w.rD()}
	case 151:
		return Stwx(idxStore)
	case 183:
		return Stwux(idxStore)
	case 215:
		return Stbx(idxStore)
	case 279:
		return Lhzx(idxLoad)
	case 316:
		return Xor(logical)
	case 339:
		return Mfspr{Dest: w.rD(), Spr: Spr(w.splitField())}
	case 371:
		return Mftb{Dest: w.rD(), Tbr: TimeBase(w.splitField())}
	case 407:
		return Sthx(idxStore)
	case 444:
		return Or(logical)
	case 467:
		return Mtspr{Source: w.rD(), Spr: Spr(w.splitField())}
	case 470:
		return Dcbi(cache)
	case 536:
		return Srw(logical)
	case 598:
		return Sync{}
	case 792:
		return Sraw(logical)
	case 824:
		return Srawi{Source: w.rD(), Dest: w.rA(), Shift: Immediate(w.bits(16, 20)), Rc: w.rc()}
	case 854:
		return Eieio{}
	case 922:
		return Extsh(unary)
	case 954:
		return Extsb(unary)
	case 982:
		return Icbi(cache)
	case 1014:
		return Dcbz(cache)
	}

	arith := Arith{Dest: w.rD(), SourceA: w.rA(), SourceB: w.rB(), Oe: w.oe(), Rc: w.rc()}
	mulHigh := MulHigh{Dest: w.rD(), SourceA: w.rA(), SourceB: w.rB(), Rc: w.rc()}
	arithUnary := ArithUnary{Dest: w.rD(), Source: w.rA(), Oe: w.oe(), Rc: w.rc()}

	switch w.xo9() {
	case 8:
		return Subfc(arith)
	case 10:
		return Addc(arith)
	case 11:
		if !w.oe() {
			return Mulhwu(mulHigh)
		}
	case 40:
		return Subf(arith)
	case 75:
		if !w.oe() {
			return Mulhw(mulHigh)
		}
	case 104:
		return Neg(arithUnary)
	case 136:
		return Subfe(arith)
	case 138:
		return Adde(arith)
	case 202:
		return Addze(arithUnary)
	case 235:
		return Mullw(arith)
	case 266:
		return Add(arith)
	case 459:
		return Divwu(arith)
	case 491:
		return Divw(arith)
	}
	return Unknown{Raw: uint32(w)}
}

func decode59(w word) Op {
	switch w.xo5() {
	case 18:
		return Fdivs(floatArith(w))
	case 20:
		return Fsubs(floatArith(w))
	case 21:
		return Fadds(floatArith(w))
	case 25:
		return Fmuls(floatMul(w))
	case 28:
		return Fmsubs(floatMulAdd(w))
	case 29:
		return Fmadds(floatMulAdd(w))
	}
	return Unknown{Raw: uint32(w)}
}

func decode63(w word) Op {
	switch w.xo5() {
	case 18:
		return Fdiv(floatArith(w))
	case 20:
		return Fsub(floatArith(w))
	case 21:
		return Fadd(floatArith(w))
	case 25:
		return Fmul(floatMul(w))
	case 28:
		return Fmsub(floatMulAdd(w))
	case 29:
		return Fmadd(floatMulAdd(w))
	}

	unary := FloatUnary{Dest: w.frD(), Source: w.frB(), Rc: w.rc()}
	switch w.xo10() {
	case 0:
		return Fcmpu{Crf: w.crfD(), SourceA: w.frA(), SourceB: w.frB()}
	case 12:
		return Frsp(unary)
	case 15:
		return Fctiwz(unary)
	case 38:
		return Mtfsb1{Crb: uint8(w.bits(6, 10)), Rc: w.rc()}
	case 40:
		return Fneg(unary)
	case 72:
		return Fmr(unary)
	case 264:
		return Fabs(unary)
	case 583:
		// Non-zero bits 11-20 are the mffsl and mffscrn extensions.
		if w.bits(11, 20) == 0 {
			return Mffs{Dest: w.frD(), Rc: w.rc()}
		}
	case 711:
		return Mtfsf{Fm: uint8(w.bits(7, 14)), Source: w.frB(), Rc: w.rc()}
	}
	return Unknown{Raw: uint32(w)}
}

func arithImm(w word) ArithImm {
	return ArithImm{Dest: w.rD(), Source: w.rA(), Imm: w.simm()}
}

func logicalImm(w word) LogicalImm {
	return LogicalImm{Source: w.rD(), Dest: w.rA(), Imm: w.uimm()}
}

func load(w word) Load {
	return Load{Dest: w.rD(), Source: w.rA(), Imm: w.simm()}
}

func store(w word) Store {
	return Store{Source: w.rD(), Dest: w.rA(), Imm: w.simm()}
}

func floatLoad(w word) FloatLoad {
	return FloatLoad{Dest: w.frD(), Source: w.rA(), Imm: w.simm()}
}

func floatStore(w word) FloatStore {
	return FloatStore{Source: w.frD(), Dest: w.rA(), Imm: w.simm()}
}

func pairedLoad(w word) PairedLoad {
	return PairedLoad{Dest: w.frD(), Source: w.rA(), Imm: Immediate(w.signed(20, 31)), W: w.bit(16), I: uint8(w.bits(17, 19))}
}

func pairedStore(w word) PairedStore {
	return PairedStore{Source: w.frD(), Dest: w.rA(), Imm: Immediate(w.signed(20, 31)), W: w.bit(16), I: uint8(w.bits(17, 19))}
}

func rotate(w word) Rotate {
	return Rotate{
		Source:    w.rD(),
		Dest:      w.rA(),
		RotBits:   Immediate(w.bits(16, 20)),
		MaskStart: Immediate(w.bits(21, 25)),
		MaskEnd:   Immediate(w.bits(26, 30)),
		Rc:        w.rc(),
	}
}

func floatArith(w word) FloatArith {
	return FloatArith{Dest: w.frD(), SourceA: w.frA(), SourceB: w.frB(), Rc: w.rc()}
}

func floatMul(w word) FloatMul {
	return FloatMul{Dest: w.frD(), SourceA: w.frA(), SourceC: w.frC(), Rc: w.rc()}
}

func floatMulAdd(w word) FloatMulAdd {
	return FloatMulAdd{Dest: w.frD(), SourceA: w.frA(), SourceC: w.frC(), SourceB: w.frB(), Rc: w.rc()}
}

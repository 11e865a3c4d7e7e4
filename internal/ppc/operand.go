package ppc

import "fmt"

// Register is a general purpose register, r0-r31.
type Register uint8

func (r Register) String() string { return fmt.Sprintf("Register(%d)", uint8(r)) }

// FloatRegister is a floating point register, f0-f31.
type FloatRegister uint8

func (r FloatRegister) String() string { return fmt.Sprintf("FloatRegister(%d)", uint8(r)) }

// CondField selects one of the eight 4-bit condition register fields.
type CondField uint8

func (c CondField) String() string { return fmt.Sprintf("CondField(%d)", uint8(c)) }

// Immediate holds a decoded immediate. Signed formats are sign-extended,
// logical and shift formats are zero-extended.
type Immediate int32

func (i Immediate) String() string { return fmt.Sprintf("Immediate(%d)", int32(i)) }

type AddressingMode uint8

const (
	Relative AddressingMode = iota
	Absolute
)

func (m AddressingMode) String() string {
	if m == Absolute {
		return "Absolute"
	}
	return "Relative"
}

func modeFromBit(set bool) AddressingMode {
	if set {
		return Absolute
	}
	return Relative
}

// BranchPredicate is the condition a BO field encodes.
type BranchPredicate uint8

const (
	DecCTRBranchIfFalse BranchPredicate = iota
	BranchIfFalse
	DecCTRBranchIfTrue
	BranchIfTrue
	DecCTRBranchIfNotZero
	DecCTRBranchIfZero
	BranchAlways
)

var predicateNames = [...]string{
	DecCTRBranchIfFalse:   "DecCTRBranchIfFalse",
	BranchIfFalse:         "BranchIfFalse",
	DecCTRBranchIfTrue:    "DecCTRBranchIfTrue",
	BranchIfTrue:          "BranchIfTrue",
	DecCTRBranchIfNotZero: "DecCTRBranchIfNotZero",
	DecCTRBranchIfZero:    "DecCTRBranchIfZero",
	BranchAlways:          "BranchAlways",
}

func (p BranchPredicate) String() string {
	if int(p) < len(predicateNames) {
		return predicateNames[p]
	}
	return fmt.Sprintf("BranchPredicate(%d)", uint8(p))
}

// BranchOptions is the raw 5-bit BO field. It prints as its predicate; the
// low bit (the static prediction hint) is kept in the raw value.
type BranchOptions uint8

func (bo BranchOptions) Predicate() BranchPredicate {
	m := uint8(bo) & 0x1f
	switch {
	case m&0b11110 == 0b00000 || m&0b11110 == 0b00010:
		return DecCTRBranchIfFalse
	case m&0b11100 == 0b00100:
		return BranchIfFalse
	case m&0b11110 == 0b01000 || m&0b11110 == 0b01010:
		return DecCTRBranchIfTrue
	case m&0b11100 == 0b01100:
		return BranchIfTrue
	case m&0b10110 == 0b10000:
		return DecCTRBranchIfNotZero
	case m&0b10110 == 0b10010:
		return DecCTRBranchIfZero
	default:
		return BranchAlways
	}
}

func (bo BranchOptions) String() string { return bo.Predicate().String() }

// Spr is a special purpose register number.
type Spr uint16

const (
	SprXer   Spr = 1
	SprLr    Spr = 8
	SprCtr   Spr = 9
	SprDsisr Spr = 18
	SprDar   Spr = 19
	SprDec   Spr = 22
	SprSdr1  Spr = 25
	SprSrr0  Spr = 26
	SprSrr1  Spr = 27
	SprSprg0 Spr = 272
	SprSprg1 Spr = 273
	SprSprg2 Spr = 274
	SprSprg3 Spr = 275
	SprEar   Spr = 282
	SprTbl   Spr = 284
	SprTbu   Spr = 285
	SprPvr   Spr = 287
	SprGqr0  Spr = 912
	SprGqr7  Spr = 919
	SprHid2  Spr = 920
	SprWpar  Spr = 921
	SprDmaU  Spr = 922
	SprDmaL  Spr = 923
	SprMmcr0 Spr = 952
	SprPmc1  Spr = 953
	SprPmc2  Spr = 954
	SprMmcr1 Spr = 956
	SprPmc3  Spr = 957
	SprPmc4  Spr = 958
	SprHid0  Spr = 1008
	SprHid1  Spr = 1009
	SprIabr  Spr = 1010
	SprHid4  Spr = 1011
	SprDabr  Spr = 1013
	SprL2cr  Spr = 1017
	SprIctc  Spr = 1019
	SprThrm1 Spr = 1020
	SprThrm2 Spr = 1021
	SprThrm3 Spr = 1022
)

var sprNames = map[Spr]string{
	SprXer: "Xer", SprLr: "Lr", SprCtr: "Ctr", SprDsisr: "Dsisr", SprDar: "Dar",
	SprDec: "Dec", SprSdr1: "Sdr1", SprSrr0: "Srr0", SprSrr1: "Srr1",
	SprSprg0: "Sprg0", SprSprg1: "Sprg1", SprSprg2: "Sprg2", SprSprg3: "Sprg3",
	SprEar: "Ear", SprTbl: "Tbl", SprTbu: "Tbu", SprPvr: "Pvr",
	SprHid2: "Hid2", SprWpar: "Wpar", SprDmaU: "DmaU", SprDmaL: "DmaL",
	SprMmcr0: "Mmcr0", SprPmc1: "Pmc1", SprPmc2: "Pmc2", SprMmcr1: "Mmcr1",
	SprPmc3: "Pmc3", SprPmc4: "Pmc4", SprHid0: "Hid0", SprHid1: "Hid1",
	SprIabr: "Iabr", SprHid4: "Hid4", SprDabr: "Dabr", SprL2cr: "L2cr",
	SprIctc: "Ictc", SprThrm1: "Thrm1", SprThrm2: "Thrm2", SprThrm3: "Thrm3",
}

func (s Spr) String() string {
	if name, ok := sprNames[s]; ok {
		return name
	}
	if s >= SprGqr0 && s <= SprGqr7 {
		return fmt.Sprintf("Gqr%d", uint16(s-SprGqr0))
	}
	return fmt.Sprintf("Other(%d)", uint16(s))
}

// TimeBase is the time base register number read by mftb.
type TimeBase uint16

const (
	TimeBaseLower TimeBase = 268
	TimeBaseUpper TimeBase = 269
)

func (t TimeBase) String() string {
	switch t {
	case TimeBaseLower:
		return "Tbl"
	case TimeBaseUpper:
		return "Tbu"
	}
	return fmt.Sprintf("Other(%d)", uint16(t))
}

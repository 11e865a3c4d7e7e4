package ppc

// word wraps a raw instruction. Bit positions use PowerPC numbering: bit 0
// is the most significant bit.
type word uint32

// bits extracts the unsigned field [start, end].
func (w word) bits(start, end int) uint32 {
	width := end - start + 1
	return uint32(w) >> (31 - end) & (1<<width - 1)
}

// signed extracts the field [start, end] and sign-extends it.
func (w word) signed(start, end int) int32 {
	return int32(uint32(w)<<start) >> (31 - end + start)
}

func (w word) bit(n int) bool { return w.bits(n, n) != 0 }

func (w word) opcode() uint32 { return w.bits(0, 5) }

// xo10 is the X/XL-form extended opcode.
func (w word) xo10() uint32 { return w.bits(21, 30) }

// xo9 is the XO-form extended opcode; bit 21 carries OE.
func (w word) xo9() uint32 { return w.bits(22, 30) }

// xo5 is the A-form extended opcode.
func (w word) xo5() uint32 { return w.bits(26, 30) }

func (w word) rD() Register { return Register(w.bits(6, 10)) }
func (w word) rA() Register { return Register(w.bits(11, 15)) }
func (w word) rB() Register { return Register(w.bits(16, 20)) }

func (w word) frD() FloatRegister { return FloatRegister(w.bits(6, 10)) }
func (w word) frA() FloatRegister { return FloatRegister(w.bits(11, 15)) }
func (w word) frB() FloatRegister { return FloatRegister(w.bits(16, 20)) }
func (w word) frC() FloatRegister { return FloatRegister(w.bits(21, 25)) }

func (w word) crfD() CondField { return CondField(w.bits(6, 8)) }
func (w word) l() bool         { return w.bit(10) }

func (w word) simm() Immediate { return Immediate(w.signed(16, 31)) }
func (w word) uimm() Immediate { return Immediate(w.bits(16, 31)) }

func (w word) oe() bool { return w.bit(21) }
func (w word) rc() bool { return w.bit(31) }

// splitField decodes the SPR/TBR encoding, whose two 5-bit halves are swapped.
func (w word) splitField() uint16 {
	return uint16(w.bits(16, 20)<<5 | w.bits(11, 15))
}

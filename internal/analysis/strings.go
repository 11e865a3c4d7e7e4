package analysis

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
)

// EscapeUnprintable returns a string where printable Unicode runes are preserved.
// Control and unprintable runes are escaped as \uXXXX. Invalid UTF-8 is escaped as \xXX.
func EscapeUnprintable(b []byte) string {
	var sb strings.Builder
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			sb.WriteString(fmt.Sprintf("\\x%02X", b[0]))
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
		} else {
			sb.WriteString(fmt.Sprintf("\\u%04X", r))
		}
		b = b[size:]
	}
	return sb.String()
}

// TryResolveCString reads a NUL-terminated string at addr. Runs that are
// unterminated within MaxStringLength, shorter than MinStringLength or
// contain control bytes other than \t, \n and \r are rejected.
func TryResolveCString(img *dolx.Image, addr uint32) (string, bool) {
	raw, err := img.ReadAt(addr, MaxStringLength)
	if err != nil {
		return "", false
	}
	n := 0
	for n < len(raw) && raw[n] != 0 {
		b := raw[n]
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' || b == 0x7f {
			return "", false
		}
		n++
	}
	if n == len(raw) || n < MinStringLength {
		return "", false
	}
	return EscapeUnprintable(raw[:n]), true
}

// AddressRefs tracks constants built with lis followed by addi, ori or a
// load displacement, and comments each completed address with the string
// or section it points into. Bases seeds registers with known values, such
// as the small data anchors in r2 and r13.
type AddressRefs struct {
	Img    *dolx.Image
	Bases  map[ppc.Register]uint32
	Labels map[uint32]string
}

type regValue struct {
	val uint32
	// high is set for values formed with lis, which are worth reporting.
	high bool
}

func (a AddressRefs) reset() map[ppc.Register]regValue {
	regs := make(map[ppc.Register]regValue, len(a.Bases))
	for r, v := range a.Bases {
		regs[r] = regValue{val: v, high: true}
	}
	return regs
}

func (a AddressRefs) Annotate(insts []ppc.Instruction, notes Notes) {
	regs := a.reset()

	for _, inst := range insts {
		if _, ok := a.Labels[inst.Address]; ok {
			regs = a.reset()
		}

		switch o := inst.Op.(type) {
		case ppc.Addis:
			if o.Source == 0 {
				regs[o.Dest] = regValue{val: uint32(o.Imm) << 16, high: true}
				continue
			}
			if base, ok := regs[o.Source]; ok {
				regs[o.Dest] = regValue{val: base.val + uint32(o.Imm)<<16, high: true}
				continue
			}
		case ppc.Addi:
			if o.Source == 0 {
				regs[o.Dest] = regValue{val: uint32(o.Imm)}
				continue
			}
			if base, ok := regs[o.Source]; ok {
				v := base.val + uint32(o.Imm)
				regs[o.Dest] = regValue{val: v, high: base.high}
				if base.high {
					a.describe(notes, inst.Address, v, "")
				}
				continue
			}
		case ppc.Ori:
			if base, ok := regs[o.Source]; ok {
				v := base.val | uint32(o.Imm)
				regs[o.Dest] = regValue{val: v, high: base.high}
				if base.high {
					a.describe(notes, inst.Address, v, "")
				}
				continue
			}
		}

		if base, disp, ok := memOperand(inst.Op); ok {
			if b, known := regs[base]; known && b.high {
				a.describe(notes, inst.Address, b.val+uint32(disp), "&")
			}
		}

		if ppc.IsCall(inst.Op) {
			for r := ppc.Register(0); r <= 12; r++ {
				if r != 1 && r != 2 {
					delete(regs, r)
				}
			}
		}
		if lmw, ok := inst.Op.(ppc.Lmw); ok {
			for r := lmw.Dest; r < 32; r++ {
				delete(regs, r)
			}
		}
		if dest, ok := writtenRegister(inst.Op); ok {
			delete(regs, dest)
		}
		if endsBlock(inst.Op) {
			regs = a.reset()
		}
	}
}

// describe comments addr. Only data sections are searched for strings.
func (a AddressRefs) describe(notes Notes, at, addr uint32, prefix string) {
	if a.Img.InData(addr) {
		if s, ok := TryResolveCString(a.Img, addr); ok {
			notes.Add(at, "%s%q", prefix, s)
			return
		}
	}
	if sec, ok := a.Img.SectionAt(addr); ok {
		notes.Add(at, "%s0x%08x (%s)", prefix, addr, sec.Name())
		return
	}
	if a.Img.Header.InBss(addr) {
		notes.Add(at, "%s0x%08x (bss)", prefix, addr)
	}
}

// memOperand returns the base register and displacement of D-form loads and stores.
func memOperand(op ppc.Op) (ppc.Register, ppc.Immediate, bool) {
	v := reflect.ValueOf(op)
	if v.Kind() != reflect.Struct {
		return 0, 0, false
	}
	imm := v.FieldByName("Imm")
	if !imm.IsValid() {
		return 0, 0, false
	}
	var base reflect.Value
	switch op.(type) {
	case ppc.Lwz, ppc.Lwzu, ppc.Lbz, ppc.Lbzu, ppc.Lhz, ppc.Lhzu, ppc.Lha, ppc.Lhau,
		ppc.Lfs, ppc.Lfsu, ppc.Lfd, ppc.Lfdu, ppc.PsqL, ppc.PsqLu:
		base = v.FieldByName("Source")
	case ppc.Stw, ppc.Stwu, ppc.Stb, ppc.Stbu, ppc.Sth, ppc.Sthu,
		ppc.Stfs, ppc.Stfsu, ppc.Stfd, ppc.Stfdu, ppc.PsqSt, ppc.PsqStu:
		base = v.FieldByName("Dest")
	default:
		return 0, 0, false
	}
	reg := ppc.Register(base.Uint())
	if reg == 0 {
		return 0, 0, false
	}
	return reg, ppc.Immediate(imm.Int()), true
}

var registerType = reflect.TypeOf(ppc.Register(0))

// writtenRegister returns the GPR an operation writes through its Dest
// field. Plain stores name their base register Dest but leave it intact.
func writtenRegister(op ppc.Op) (ppc.Register, bool) {
	switch op.(type) {
	case ppc.Stw, ppc.Stb, ppc.Sth, ppc.Stmw, ppc.Stfs, ppc.Stfd, ppc.PsqSt,
		ppc.Stwx, ppc.Stbx, ppc.Sthx:
		return 0, false
	}
	v := reflect.ValueOf(op)
	if v.Kind() != reflect.Struct {
		return 0, false
	}
	f := v.FieldByName("Dest")
	if !f.IsValid() || f.Type() != registerType {
		return 0, false
	}
	return ppc.Register(f.Uint()), true
}

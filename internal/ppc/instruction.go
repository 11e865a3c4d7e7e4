package ppc

// Instruction is one decoded word.
type Instruction struct {
	Address uint32
	Raw     uint32
	Op      Op
}

func (i Instruction) String() string { return Format(i.Op) }

// Op is the closed set of decoded operations. Field order is the display order.
type Op interface {
	isOp()
}

// Unknown is any word the decoder has no variant for.
type Unknown struct {
	Raw uint32
}

// Branch is b, ba, bl and bla. Target is the sign-extended byte displacement
// (or absolute address when Mode is Absolute).
type Branch struct {
	Target int32
	Mode   AddressingMode
	Link   bool
}

type Bc struct {
	Bo     BranchOptions
	Bi     uint8
	Target int32
	Mode   AddressingMode
	Link   bool
}

type Bclr struct {
	Bo   BranchOptions
	Bi   uint8
	Link bool
}

type Bcctr struct {
	Bo   BranchOptions
	Bi   uint8
	Link bool
}

type (
	Sc    struct{}
	Rfi   struct{}
	Isync struct{}
	Sync  struct{}
	Eieio struct{}
)

type Twi struct {
	To     uint8
	Source Register
	Imm    Immediate
}

type Tw struct {
	To      uint8
	SourceA Register
	SourceB Register
}

// CondLogical is the shared layout of the condition register logical ops.
type CondLogical struct {
	CrbDest uint8
	CrbA    uint8
	CrbB    uint8
}

type (
	Crand CondLogical
	Crnor CondLogical
	Crxor CondLogical
	Creqv CondLogical
	Cror  CondLogical
)

type Mcrf struct {
	Crf       CondField
	CrfSource CondField
}

// Rotate is the shared layout of rlwinm and rlwimi.
type Rotate struct {
	Source    Register
	Dest      Register
	RotBits   Immediate
	MaskStart Immediate
	MaskEnd   Immediate
	Rc        bool
}

type (
	Rlwinm Rotate
	Rlwimi Rotate
)

type Rlwnm struct {
	Source    Register
	Dest      Register
	RotBits   Register
	MaskStart Immediate
	MaskEnd   Immediate
	Rc        bool
}

// ArithImm is the D-form layout rD, rA, SIMM.
type ArithImm struct {
	Dest   Register
	Source Register
	Imm    Immediate
}

type (
	Addi    ArithImm
	Addis   ArithImm
	Addic   ArithImm
	AddicRc ArithImm
	Subfic  ArithImm
	Mulli   ArithImm
)

type CompareImm struct {
	Crf    CondField
	L      bool
	Source Register
	Imm    Immediate
}

type (
	Cmpi  CompareImm
	Cmpli CompareImm
)

// LogicalImm is the D-form layout rS, rA, UIMM.
type LogicalImm struct {
	Source Register
	Dest   Register
	Imm    Immediate
}

type (
	Ori   LogicalImm
	Oris  LogicalImm
	Xori  LogicalImm
	Xoris LogicalImm
	Andi  LogicalImm
	Andis LogicalImm
)

// Load is rD <- mem(rA + d).
type Load struct {
	Dest   Register
	Source Register
	Imm    Immediate
}

type (
	Lwz  Load
	Lwzu Load
	Lbz  Load
	Lbzu Load
	Lhz  Load
	Lhzu Load
	Lha  Load
	Lhau Load
	Lmw  Load
)

// Store is mem(rA + d) <- rS.
type Store struct {
	Source Register
	Dest   Register
	Imm    Immediate
}

type (
	Stw  Store
	Stwu Store
	Stb  Store
	Stbu Store
	Sth  Store
	Sthu Store
	Stmw Store
)

type FloatLoad struct {
	Dest   FloatRegister
	Source Register
	Imm    Immediate
}

type (
	Lfs  FloatLoad
	Lfsu FloatLoad
	Lfd  FloatLoad
	Lfdu FloatLoad
)

type FloatStore struct {
	Source FloatRegister
	Dest   Register
	Imm    Immediate
}

type (
	Stfs  FloatStore
	Stfsu FloatStore
	Stfd  FloatStore
	Stfdu FloatStore
)

// PairedLoad is the Gekko quantized load. W selects single-element mode and
// I the GQR holding the dequantization parameters.
type PairedLoad struct {
	Dest   FloatRegister
	Source Register
	Imm    Immediate
	W      bool
	I      uint8
}

type (
	PsqL  PairedLoad
	PsqLu PairedLoad
)

type PairedStore struct {
	Source FloatRegister
	Dest   Register
	Imm    Immediate
	W      bool
	I      uint8
}

type (
	PsqSt  PairedStore
	PsqStu PairedStore
)

type Compare struct {
	Crf     CondField
	L       bool
	SourceA Register
	SourceB Register
}

type (
	Cmp  Compare
	Cmpl Compare
)

// Logical is the X-form layout rS, rA, rB.
type Logical struct {
	Source  Register
	Dest    Register
	SourceB Register
	Rc      bool
}

type (
	And  Logical
	Andc Logical
	Or   Logical
	Nor  Logical
	Xor  Logical
	Slw  Logical
	Srw  Logical
	Sraw Logical
)

type Srawi struct {
	Source Register
	Dest   Register
	Shift  Immediate
	Rc     bool
}

// Unary is the X-form layout rS, rA.
type Unary struct {
	Source Register
	Dest   Register
	Rc     bool
}

type (
	Cntlzw Unary
	Extsb  Unary
	Extsh  Unary
)

type IndexedLoad struct {
	Dest   Register
	Source Register
	Index  Register
}

type (
	Lwzx IndexedLoad
	Lbzx IndexedLoad
	Lhzx IndexedLoad
)

type IndexedStore struct {
	Source Register
	Dest   Register
	Index  Register
}

type (
	Stwx  IndexedStore
	Stwux IndexedStore
	Stbx  IndexedStore
	Sthx  IndexedStore
)

// Cache is the layout of the cache block ops, EA = (rA|0) + rB.
type Cache struct {
	SourceA Register
	SourceB Register
}

type (
	Dcbf  Cache
	Dcbst Cache
	Dcbi  Cache
	Dcbz  Cache
	Icbi  Cache
)

type Mfspr struct {
	Dest Register
	Spr  Spr
}

type Mtspr struct {
	Source Register
	Spr    Spr
}

type Mftb struct {
	Dest Register
	Tbr  TimeBase
}

type Mfmsr struct {
	Dest Register
}

type Mtmsr struct {
	Source Register
}

type Mfcr struct {
	Dest Register
}

type Mtcrf struct {
	Crm    uint8
	Source Register
}

// Arith is the XO-form layout rD, rA, rB with overflow enable.
type Arith struct {
	Dest    Register
	SourceA Register
	SourceB Register
	Oe      bool
	Rc      bool
}

type (
	Add   Arith
	Addc  Arith
	Adde  Arith
	Subf  Arith
	Subfc Arith
	Subfe Arith
	Mullw Arith
	Divw  Arith
	Divwu Arith
)

// MulHigh has no OE bit.
type MulHigh struct {
	Dest    Register
	SourceA Register
	SourceB Register
	Rc      bool
}

type (
	Mulhw  MulHigh
	Mulhwu MulHigh
)

type ArithUnary struct {
	Dest   Register
	Source Register
	Oe     bool
	Rc     bool
}

type (
	Neg   ArithUnary
	Addze ArithUnary
)

type FloatUnary struct {
	Dest   FloatRegister
	Source FloatRegister
	Rc     bool
}

type (
	Fmr    FloatUnary
	Fneg   FloatUnary
	Fabs   FloatUnary
	Frsp   FloatUnary
	Fctiwz FloatUnary
)

type Fcmpu struct {
	Crf     CondField
	SourceA FloatRegister
	SourceB FloatRegister
}

// FloatArith is the A-form layout frD, frA, frB.
type FloatArith struct {
	Dest    FloatRegister
	SourceA FloatRegister
	SourceB FloatRegister
	Rc      bool
}

type (
	Fadd  FloatArith
	Fsub  FloatArith
	Fdiv  FloatArith
	Fadds FloatArith
	Fsubs FloatArith
	Fdivs FloatArith
)

// FloatMul is the A-form layout frD, frA, frC.
type FloatMul struct {
	Dest    FloatRegister
	SourceA FloatRegister
	SourceC FloatRegister
	Rc      bool
}

type (
	Fmul  FloatMul
	Fmuls FloatMul
)

// FloatMulAdd is the A-form layout frD, frA, frC, frB.
type FloatMulAdd struct {
	Dest    FloatRegister
	SourceA FloatRegister
	SourceC FloatRegister
	SourceB FloatRegister
	Rc      bool
}

type (
	Fmadd  FloatMulAdd
	Fmsub  FloatMulAdd
	Fmadds FloatMulAdd
	Fmsubs FloatMulAdd
)

type Mtfsb1 struct {
	Crb uint8
	Rc  bool
}

type Mffs struct {
	Dest FloatRegister
	Rc   bool
}

type Mtfsf struct {
	Fm     uint8
	Source FloatRegister
	Rc     bool
}

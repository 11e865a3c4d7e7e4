package ppc

func (Unknown) isOp() {}
func (Branch) isOp()  {}
func (Bc) isOp()      {}
func (Bclr) isOp()    {}
func (Bcctr) isOp()   {}
func (Twi) isOp()     {}
func (Tw) isOp()      {}
func (Mcrf) isOp()    {}
func (Rlwnm) isOp()   {}
func (Srawi) isOp()   {}
func (Mfspr) isOp()   {}
func (Mtspr) isOp()   {}
func (Mftb) isOp()    {}
func (Mfmsr) isOp()   {}
func (Mtmsr) isOp()   {}
func (Mfcr) isOp()    {}
func (Mtcrf) isOp()   {}
func (Fcmpu) isOp()   {}
func (Mtfsb1) isOp()  {}
func (Mffs) isOp()    {}
func (Mtfsf) isOp()   {}
func (Sc) isOp()      {}
func (Rfi) isOp()     {}
func (Isync) isOp()   {}
func (Sync) isOp()    {}
func (Eieio) isOp()   {}
func (Crand) isOp()   {}
func (Crnor) isOp()   {}
func (Crxor) isOp()   {}
func (Creqv) isOp()   {}
func (Cror) isOp()    {}
func (Rlwinm) isOp()  {}
func (Rlwimi) isOp()  {}
func (Addi) isOp()    {}
func (Addis) isOp()   {}
func (Addic) isOp()   {}
func (AddicRc) isOp() {}
func (Subfic) isOp()  {}
func (Mulli) isOp()   {}
func (Cmpi) isOp()    {}
func (Cmpli) isOp()   {}
func (Ori) isOp()     {}
func (Oris) isOp()    {}
func (Xori) isOp()    {}
func (Xoris) isOp()   {}
func (Andi) isOp()    {}
func (Andis) isOp()   {}
func (Lwz) isOp()     {}
func (Lwzu) isOp()    {}
func (Lbz) isOp()     {}
func (Lbzu) isOp()    {}
func (Lhz) isOp()     {}
func (Lhzu) isOp()    {}
func (Lha) isOp()     {}
func (Lhau) isOp()    {}
func (Lmw) isOp()     {}
func (Stw) isOp()     {}
func (Stwu) isOp()    {}
func (Stb) isOp()     {}
func (Stbu) isOp()    {}
func (Sth) isOp()     {}
func (Sthu) isOp()    {}
func (Stmw) isOp()    {}
func (Lfs) isOp()     {}
func (Lfsu) isOp()    {}
func (Lfd) isOp()     {}
func (Lfdu) isOp()    {}
func (Stfs) isOp()    {}
func (Stfsu) isOp()   {}
func (Stfd) isOp()    {}
func (Stfdu) isOp()   {}
func (PsqL) isOp()    {}
func (PsqLu) isOp()   {}
func (PsqSt) isOp()   {}
func (PsqStu) isOp()  {}
func (Cmp) isOp()     {}
func (Cmpl) isOp()    {}
func (And) isOp()     {}
func (Andc) isOp()    {}
func (Or) isOp()      {}
func (Nor) isOp()     {}
func (Xor) isOp()     {}
func (Slw) isOp()     {}
func (Srw) isOp()     {}
func (Sraw) isOp()    {}
func (Cntlzw) isOp()  {}
func (Extsb) isOp()   {}
func (Extsh) isOp()   {}
func (Lwzx) isOp()    {}
func (Lbzx) isOp()    {}
func (Lhzx) isOp()    {}
func (Stwx) isOp()    {}
func (Stwux) isOp()   {}
func (Stbx) isOp()    {}
func (Sthx) isOp()    {}
func (Dcbf) isOp()    {}
func (Dcbst) isOp()   {}
func (Dcbi) isOp()    {}
func (Dcbz) isOp()    {}
func (Icbi) isOp()    {}
func (Add) isOp()     {}
func (Addc) isOp()    {}
func (Adde) isOp()    {}
func (Subf) isOp()    {}
func (Subfc) isOp()   {}
func (Subfe) isOp()   {}
func (Mullw) isOp()   {}
func (Divw) isOp()    {}
func (Divwu) isOp()   {}
func (Mulhw) isOp()   {}
func (Mulhwu) isOp()  {}
func (Neg) isOp()     {}
func (Addze) isOp()   {}
func (Fmr) isOp()     {}
func (Fneg) isOp()    {}
func (Fabs) isOp()    {}
func (Frsp) isOp()    {}
func (Fctiwz) isOp()  {}
func (Fadd) isOp()    {}
func (Fsub) isOp()    {}
func (Fdiv) isOp()    {}
func (Fadds) isOp()   {}
func (Fsubs) isOp()   {}
func (Fdivs) isOp()   {}
func (Fmul) isOp()    {}
func (Fmuls) isOp()   {}
func (Fmadd) isOp()   {}
func (Fmsub) isOp()   {}
func (Fmadds) isOp()  {}
func (Fmsubs) isOp()  {}

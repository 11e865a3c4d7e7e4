package ppc

// BranchTarget returns the destination of a direct branch (b or bc).
func BranchTarget(inst Instruction) (uint32, bool) {
	switch o := inst.Op.(type) {
	case Branch:
		return resolveTarget(inst.Address, o.Target, o.Mode), true
	case Bc:
		return resolveTarget(inst.Address, o.Target, o.Mode), true
	}
	return 0, false
}

func resolveTarget(addr uint32, disp int32, mode AddressingMode) uint32 {
	if mode == Absolute {
		return uint32(disp)
	}
	return addr + uint32(disp)
}

// IsReturn reports an unconditional blr: bclr with BranchAlways and no link.
func IsReturn(op Op) bool {
	o, ok := op.(Bclr)
	return ok && !o.Link && o.Bo.Predicate() == BranchAlways
}

// IsCall reports a linking branch.
func IsCall(op Op) bool {
	switch o := op.(type) {
	case Branch:
		return o.Link
	case Bc:
		return o.Link
	case Bclr:
		return o.Link
	case Bcctr:
		return o.Link
	}
	return false
}

// IsConditional reports a branch whose predicate can fall through.
func IsConditional(op Op) bool {
	switch o := op.(type) {
	case Bc:
		return o.Bo.Predicate() != BranchAlways
	case Bclr:
		return o.Bo.Predicate() != BranchAlways
	case Bcctr:
		return o.Bo.Predicate() != BranchAlways
	}
	return false
}

// EndsFlow reports whether execution never falls through to the next word:
// unconditional non-linking branches and rfi.
func EndsFlow(op Op) bool {
	switch o := op.(type) {
	case Branch:
		return !o.Link
	case Bc, Bclr, Bcctr:
		return !IsCall(op) && !IsConditional(op)
	case Rfi:
		return true
	}
	return false
}

package analysis

import (
	"fmt"

	"dolasm/internal/ppc"
)

// Notes holds listing comments keyed by instruction address.
type Notes map[uint32][]string

func (n Notes) Add(addr uint32, format string, args ...any) {
	n[addr] = append(n[addr], fmt.Sprintf(format, args...))
}

// Annotator adds comments for one function's instructions.
type Annotator interface {
	Annotate(insts []ppc.Instruction, notes Notes)
}

// AnnotatorChain runs annotators in order over the same notes.
type AnnotatorChain struct {
	annotators []Annotator
}

func NewAnnotatorChain(annotators ...Annotator) *AnnotatorChain {
	return &AnnotatorChain{annotators: annotators}
}

func (c *AnnotatorChain) Annotate(insts []ppc.Instruction) Notes {
	notes := make(Notes)
	for _, a := range c.annotators {
		a.Annotate(insts, notes)
	}
	return notes
}

// BranchTargets comments direct branches with their destination, using
// local labels for in-function targets and function names for the rest.
type BranchTargets struct {
	Labels map[uint32]string
}

func (b BranchTargets) Annotate(insts []ppc.Instruction, notes Notes) {
	for _, inst := range insts {
		target, ok := ppc.BranchTarget(inst)
		if !ok {
			continue
		}
		if label, ok := b.Labels[target]; ok {
			notes.Add(inst.Address, "-> %s", label)
			continue
		}
		notes.Add(inst.Address, "-> %s", FunctionName(target))
	}
}

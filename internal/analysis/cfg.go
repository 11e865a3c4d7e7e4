package analysis

import (
	"fmt"
	"sort"

	"dolasm/internal/ppc"
)

// BasicBlock is a run of instructions with a single entry.
type BasicBlock struct {
	ID      int
	Start   int // index into FuncCFG.Insts (inclusive)
	End     int // index into FuncCFG.Insts (exclusive)
	Succs   []Succ
	IsEntry bool
	IsTerm  bool // ends with a return, an indirect jump or a branch out of the function
}

// Succ is a control flow edge. Cond is "" for unconditional edges, "T" for
// the taken side and "F" for the fallthrough side of a conditional branch.
type Succ struct {
	BlockID int
	Cond    string
}

type FuncCFG struct {
	Name   string
	Blocks []BasicBlock
	Insts  []ppc.Instruction
}

// endsBlock reports branches that split blocks. Calls fall through and do not.
func endsBlock(op ppc.Op) bool {
	switch op.(type) {
	case ppc.Branch, ppc.Bc, ppc.Bclr, ppc.Bcctr:
		return !ppc.IsCall(op)
	case ppc.Rfi:
		return true
	}
	return false
}

// BuildCFG partitions a function's instructions into basic blocks:
//  1. leaders are the entry, in-function branch targets and words after a branch;
//  2. blocks run from one leader to the next;
//  3. successors come from each block's last instruction.
func BuildCFG(name string, insts []ppc.Instruction) FuncCFG {
	if len(insts) == 0 {
		return FuncCFG{Name: name, Insts: insts}
	}

	addrToIdx := make(map[uint32]int, len(insts))
	for i, inst := range insts {
		addrToIdx[inst.Address] = i
	}

	leaders := map[int]bool{0: true}
	for i, inst := range insts {
		if !endsBlock(inst.Op) {
			continue
		}
		if i+1 < len(insts) {
			leaders[i+1] = true
		}
		if target, ok := ppc.BranchTarget(inst); ok {
			if idx, ok := addrToIdx[target]; ok {
				leaders[idx] = true
			}
		}
	}

	sorted := make([]int, 0, len(leaders))
	for idx := range leaders {
		sorted = append(sorted, idx)
	}
	sort.Ints(sorted)

	blocks := make([]BasicBlock, len(sorted))
	leaderToBlock := make(map[int]int, len(sorted))
	for i, start := range sorted {
		end := len(insts)
		if i+1 < len(sorted) {
			end = sorted[i+1]
		}
		blocks[i] = BasicBlock{ID: i, Start: start, End: end, IsEntry: start == 0}
		leaderToBlock[start] = i
	}

	for i := range blocks {
		blk := &blocks[i]
		last := insts[blk.End-1]
		next, hasNext := leaderToBlock[blk.End]

		if !endsBlock(last.Op) {
			if hasNext {
				blk.Succs = append(blk.Succs, Succ{BlockID: next})
			}
			continue
		}

		targetBlock := -1
		if target, ok := ppc.BranchTarget(last); ok {
			if idx, ok := addrToIdx[target]; ok {
				targetBlock = leaderToBlock[idx]
			}
		}

		if ppc.IsConditional(last.Op) {
			if targetBlock >= 0 {
				blk.Succs = append(blk.Succs, Succ{BlockID: targetBlock, Cond: "T"})
			}
			if hasNext {
				blk.Succs = append(blk.Succs, Succ{BlockID: next, Cond: "F"})
			}
			continue
		}

		if targetBlock >= 0 {
			blk.Succs = append(blk.Succs, Succ{BlockID: targetBlock})
		} else {
			blk.IsTerm = true
		}
	}

	return FuncCFG{Name: name, Blocks: blocks, Insts: insts}
}

// Labels names every in-function branch target, keyed by address.
func (c FuncCFG) Labels() map[uint32]string {
	inFunc := make(map[uint32]bool, len(c.Insts))
	for _, inst := range c.Insts {
		inFunc[inst.Address] = true
	}
	labels := make(map[uint32]string)
	for _, inst := range c.Insts {
		if target, ok := ppc.BranchTarget(inst); ok && inFunc[target] {
			labels[target] = LabelName(target)
		}
	}
	return labels
}

func LabelName(addr uint32) string { return fmt.Sprintf("loc_%x", addr) }

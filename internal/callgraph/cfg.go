package callgraph

import (
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"dolasm/internal/analysis"
)

// BuildCFG constructs a lattice.CFGGraph holding one FuncCFG per traced function.
func BuildCFG(res *analysis.TraceResult) *lattice.CFGGraph {
	cg := &lattice.CFGGraph{}
	for _, f := range res.Functions {
		lcfg, _ := BuildFuncCFG(f)
		cg.Funcs = append(cg.Funcs, lcfg)
	}
	return cg
}

// BuildFuncCFG recovers the blocks of one function and maps them to a
// lattice.FuncCFG, attaching call edges to the block that issues them. It
// also returns the block count.
func BuildFuncCFG(f *analysis.Function) (*lattice.FuncCFG, int) {
	dcfg := analysis.BuildCFG(f.Name(), f.Insts)
	return convertFuncCFG(dcfg, f.Calls), len(dcfg.Blocks)
}

// TraceCFGDOT renders the control flow graphs of every traced function.
func TraceCFGDOT(res *analysis.TraceResult, title string) string {
	return render.DOTCFG(BuildCFG(res), title)
}

// CFGDOT renders a single function's control flow graph.
func CFGDOT(f *analysis.Function) string {
	lcfg, _ := BuildFuncCFG(f)
	return render.DOTCFG(&lattice.CFGGraph{Funcs: []*lattice.FuncCFG{lcfg}}, f.Name())
}

func convertFuncCFG(dcfg analysis.FuncCFG, calls []analysis.CallEdge) *lattice.FuncCFG {
	callByAddr := make(map[uint32]analysis.CallEdge, len(calls))
	for _, c := range calls {
		callByAddr[c.From] = c
	}

	lcfg := &lattice.FuncCFG{Name: dcfg.Name}
	for _, db := range dcfg.Blocks {
		lb := &lattice.BasicBlock{
			ID:    db.ID,
			Start: db.Start,
			End:   db.End,
			Term:  db.IsTerm,
		}
		for _, ds := range db.Succs {
			lb.Succs = append(lb.Succs, lattice.Successor{
				BlockID: ds.BlockID,
				Cond:    ds.Cond,
			})
		}
		for idx := db.Start; idx < db.End; idx++ {
			if c, ok := callByAddr[dcfg.Insts[idx].Address]; ok {
				lb.Calls = append(lb.Calls, lattice.CallSite{
					Offset: idx,
					Callee: analysis.FunctionName(c.Target),
				})
			}
		}
		lcfg.Blocks = append(lcfg.Blocks, lb)
	}
	return lcfg
}

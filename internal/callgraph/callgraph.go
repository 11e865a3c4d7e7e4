// Package callgraph converts traced functions into lattice graphs and renders them as DOT.
package callgraph

import (
	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"dolasm/internal/analysis"
)

// BuildCallGraph constructs a lattice.Graph from a trace. Every traced
// function becomes a node; every direct call or tail branch becomes an
// edge. Targets the trace could not follow still appear as callees.
func BuildCallGraph(res *analysis.TraceResult) *lattice.Graph {
	g := &lattice.Graph{}
	for _, f := range res.Functions {
		g.Nodes = append(g.Nodes, f.Name())
		for _, e := range f.Calls {
			g.Edges = append(g.Edges, lattice.Edge{
				Caller: f.Name(),
				Callee: analysis.FunctionName(e.Target),
			})
		}
	}
	g.Dedup()
	return g
}

// CallGraphDOT renders the trace's call graph.
func CallGraphDOT(res *analysis.TraceResult, title string) string {
	return render.DOT(BuildCallGraph(res), title)
}

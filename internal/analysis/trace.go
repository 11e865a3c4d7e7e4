package analysis

import (
	"errors"
	"fmt"
	"log/slog"

	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
)

// ErrNotCode is recorded for branch targets that resolve outside the text
// sections.
var ErrNotCode = errors.New("branch target is not in a text section")

// CallEdge is a direct branch leaving the function it appears in. Link is
// false for tail branches.
type CallEdge struct {
	From   uint32
	Target uint32
	Link   bool
}

func (e CallEdge) Kind() string {
	if e.Link {
		return "bl"
	}
	return "b"
}

// Function is one traced function. Err is set when decoding stopped early;
// Insts then holds what was decoded before the failure.
type Function struct {
	Start uint32
	Span  Span
	Insts []ppc.Instruction
	Calls []CallEdge
	Err   error
}

// Name is the synthetic label used for unnamed code.
func (f *Function) Name() string { return FunctionName(f.Start) }

func FunctionName(addr uint32) string { return fmt.Sprintf("fn_%08x", addr) }

// Skip records a branch target the trace could not follow.
type Skip struct {
	From   uint32
	Target uint32
	Err    error
}

type TraceResult struct {
	Functions []*Function
	Skipped   []Skip
	// Truncated is set when MaxFunctions stopped the walk with work pending.
	Truncated bool
}

// Lookup returns the traced function starting at addr.
func (r *TraceResult) Lookup(addr uint32) (*Function, bool) {
	for _, f := range r.Functions {
		if f.Start == addr {
			return f, true
		}
	}
	return nil, false
}

type TraceOptions struct {
	Options
	// MaxFunctions caps the walk. Zero means DefaultMaxFunctions.
	MaxFunctions int
}

func (o TraceOptions) maxFunctions() int {
	if o.MaxFunctions <= 0 {
		return DefaultMaxFunctions
	}
	return o.MaxFunctions
}

// Trace walks direct branch targets breadth first from start. Each function
// extent comes from the heuristic; every b or bl whose target lies outside
// that extent queues the target once. Only a failure to resolve start itself
// is returned as an error. Unreachable targets, and targets in data
// sections, land in Skipped.
func Trace(img *dolx.Image, start uint32, opts TraceOptions) (*TraceResult, error) {
	res := &TraceResult{}
	queue := []CallEdge{{From: start, Target: start}}
	seen := map[uint32]bool{start: true}
	limit := opts.maxFunctions()

	for len(queue) > 0 {
		if len(res.Functions) >= limit {
			res.Truncated = true
			slog.Warn("trace stopped at function limit", "limit", limit, "pending", len(queue))
			break
		}
		edge := queue[0]
		queue = queue[1:]

		fn, err := traceTarget(img, edge.Target, edge.Target == start, opts.Options)
		if err != nil {
			if edge.Target == start && len(res.Functions) == 0 {
				return nil, err
			}
			slog.Debug("skipping branch target", "from", hex32(edge.From), "target", hex32(edge.Target), "err", err)
			res.Skipped = append(res.Skipped, Skip{From: edge.From, Target: edge.Target, Err: err})
			continue
		}
		res.Functions = append(res.Functions, fn)

		for _, call := range fn.Calls {
			if seen[call.Target] {
				continue
			}
			seen[call.Target] = true
			queue = append(queue, call)
		}
	}
	return res, nil
}

// traceTarget decodes the function at addr. Only the root may start outside
// the text sections.
func traceTarget(img *dolx.Image, addr uint32, root bool, opts Options) (*Function, error) {
	if _, mapped := img.SectionAt(addr); mapped && !root && !img.InText(addr) {
		return nil, fmt.Errorf("0x%08x: %w", addr, ErrNotCode)
	}
	return traceFunction(img, addr, opts)
}

func traceFunction(img *dolx.Image, start uint32, opts Options) (*Function, error) {
	stream, err := Disassemble(img, AddressRange{Start: start, End: Heuristic()}, opts)
	if err != nil {
		return nil, err
	}
	fn := &Function{Start: start, Span: stream.Span()}
	fn.Insts, fn.Err = stream.Collect()
	if fn.Err != nil {
		slog.Warn("function decode stopped early", "fn", fn.Name(), "err", fn.Err)
	}

	fn.Calls = CollectCalls(fn.Span, fn.Insts)
	return fn, nil
}

// CollectCalls returns the b and bl instructions of insts whose target lies
// outside span.
func CollectCalls(span Span, insts []ppc.Instruction) []CallEdge {
	var calls []CallEdge
	for _, inst := range insts {
		b, ok := inst.Op.(ppc.Branch)
		if !ok {
			continue
		}
		target, _ := ppc.BranchTarget(inst)
		if span.Contains(target) {
			continue
		}
		calls = append(calls, CallEdge{From: inst.Address, Target: target, Link: b.Link})
	}
	return calls
}

package analysis

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dolasm/internal/dolx"
	"dolasm/internal/dolx/doltest"
)

func TestTrace(t *testing.T) {
	img := fixture(t)
	tests := []struct {
		name          string
		start         uint32
		maxFunctions  int
		wantFuncs     []uint32
		wantCalls     map[uint32][]CallEdge
		wantSkipped   []uint32
		wantTruncated bool
	}{
		{
			name:      "call",
			start:     fnA,
			wantFuncs: []uint32{fnA, fnB},
			wantCalls: map[uint32][]CallEdge{fnA: {{From: 0x80003108, Target: fnB, Link: true}}},
		},
		{
			// The heuristic does not stop at a tail branch, so fnC runs on into fnD.
			name:      "tail branch",
			start:     fnC,
			wantFuncs: []uint32{fnC, fnB},
			wantCalls: map[uint32][]CallEdge{fnC: {
				{From: fnC, Target: fnB, Link: false},
				{From: fnD, Target: bss, Link: true},
			}},
			wantSkipped: []uint32{bss},
		},
		{
			name:        "call into bss is skipped",
			start:       fnD,
			wantFuncs:   []uint32{fnD},
			wantCalls:   map[uint32][]CallEdge{fnD: {{From: fnD, Target: bss, Link: true}}},
			wantSkipped: []uint32{bss},
		},
		{
			name:          "function limit",
			start:         fnA,
			maxFunctions:  1,
			wantFuncs:     []uint32{fnA},
			wantCalls:     map[uint32][]CallEdge{fnA: {{From: 0x80003108, Target: fnB, Link: true}}},
			wantTruncated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Trace(img, tt.start, TraceOptions{MaxFunctions: tt.maxFunctions})
			if err != nil {
				t.Fatalf("Trace: %v", err)
			}

			var starts []uint32
			for _, f := range res.Functions {
				starts = append(starts, f.Start)
				if diff := cmp.Diff(tt.wantCalls[f.Start], f.Calls); diff != "" {
					t.Errorf("%s calls mismatch (-want +got):\n%s", f.Name(), diff)
				}
			}
			if diff := cmp.Diff(tt.wantFuncs, starts); diff != "" {
				t.Errorf("functions mismatch (-want +got):\n%s", diff)
			}

			var skipped []uint32
			for _, s := range res.Skipped {
				skipped = append(skipped, s.Target)
				if !errors.Is(s.Err, dolx.ErrNoFileBacking) {
					t.Errorf("skip 0x%x err = %v", s.Target, s.Err)
				}
			}
			if diff := cmp.Diff(tt.wantSkipped, skipped); diff != "" {
				t.Errorf("skipped mismatch (-want +got):\n%s", diff)
			}
			if res.Truncated != tt.wantTruncated {
				t.Errorf("Truncated = %v, want %v", res.Truncated, tt.wantTruncated)
			}
		})
	}
}

func TestTraceBadStart(t *testing.T) {
	img := fixture(t)
	if _, err := Trace(img, bss, TraceOptions{}); !errors.Is(err, dolx.ErrNoFileBacking) {
		t.Errorf("Trace(bss) error = %v, want ErrNoFileBacking", err)
	}
}

func TestTraceLookup(t *testing.T) {
	img := fixture(t)
	res, err := Trace(img, fnA, TraceOptions{})
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	f, ok := res.Lookup(fnB)
	if !ok {
		t.Fatal("Lookup(fnB) failed")
	}
	if f.Name() != "fn_80003128" || len(f.Insts) != 2 || f.Span.Stop != StopReturn {
		t.Errorf("fnB = %s %d insts %v", f.Name(), len(f.Insts), f.Span)
	}
	if _, ok := res.Lookup(fnC); ok {
		t.Error("Lookup(fnC) found an unreached function")
	}
}

func TestTraceSkipsDataTargets(t *testing.T) {
	raw := doltest.Image{
		Sections: []doltest.Section{
			{Index: 0, Addr: 0x80003100, Data: doltest.Words(
				0x48000f01, // bl 0x80004000
				0x4e800020, // blr
			)},
			{Index: 7, Addr: 0x80004000, Data: doltest.Words(0x38600001, 0x4e800020)},
		},
		EntryPoint: 0x80003100,
	}.Bytes()
	img, err := dolx.Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	res, err := Trace(img, 0x80003100, TraceOptions{})
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if len(res.Functions) != 1 {
		t.Errorf("traced %d functions, want 1", len(res.Functions))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Target != 0x80004000 || !errors.Is(res.Skipped[0].Err, ErrNotCode) {
		t.Errorf("Skipped = %+v, want 0x80004000 with ErrNotCode", res.Skipped)
	}

	// A root in data is decoded as requested.
	if res, err := Trace(img, 0x80004000, TraceOptions{}); err != nil || len(res.Functions) != 1 {
		t.Errorf("Trace(data root) = %+v, %v", res, err)
	}
}

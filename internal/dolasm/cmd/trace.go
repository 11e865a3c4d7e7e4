package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"dolasm/internal/analysis"
	"dolasm/internal/callgraph"
	"dolasm/internal/disasm"
	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
)

func newTraceCmd() *cobra.Command {
	traceCmd := &cobra.Command{
		Use:   "trace [file]",
		Short: "Follow direct calls from a start address",
		Long: `Trace decodes the function at the start address, then every function it
reaches through b or bl, breadth first. Each function ends at its first
unconditional return.`,
		Example: `
# Trace from the entry point and print the call graph as DOT
dolasm trace --dot calls.dot main.dol

# Trace from a given address with full listings
dolasm trace --start 80003100 --listing main.dol
  `,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			img, err := openImage(args[0])
			if err != nil {
				return err
			}

			start := img.Header.EntryPoint
			if text, _ := cmd.Flags().GetString("start"); text != "" {
				if start, err = analysis.ParseAddress(text); err != nil {
					return err
				}
			}
			res, err := analysis.Trace(img, start, s.cfg.TraceOptions())
			if err != nil {
				return err
			}

			if dot, _ := cmd.Flags().GetString("dot"); dot != "" {
				if err := writeDOT(dot, callgraph.CallGraphDOT(res, "dolasm call graph")); err != nil {
					return err
				}
			}
			if dot, _ := cmd.Flags().GetString("cfg"); dot != "" {
				if err := writeDOT(dot, callgraph.TraceCFGDOT(res, "dolasm control flow")); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if s.jsonOut {
				return writeJSON(out, traceJSON(img, res, s))
			}
			full, _ := cmd.Flags().GetBool("listing")
			return writeTrace(out, img, res, s, full)
		},
	}

	traceCmd.Flags().String("start", "", "Start address (default: entry point)")
	traceCmd.Flags().Int("max-functions", 0, "Maximum number of functions to visit")
	traceCmd.Flags().String("dot", "", "Write the call graph as DOT")
	traceCmd.Flags().String("cfg", "", "Write every traced function's control flow graph as DOT")
	traceCmd.Flags().BoolP("listing", "l", false, "Print each function's listing")
	return traceCmd
}

func writeTrace(w io.Writer, img *dolx.Image, res *analysis.TraceResult, s settings, full bool) error {
	var bases map[ppc.Register]uint32
	if full {
		bases = analysis.FindSmallDataBases(img, s.cfg.Options())
	}
	color := colorizer(w, s)

	for _, f := range res.Functions {
		fmt.Fprintf(w, "%s %s %d insns, %d calls\n", f.Name(), f.Span, len(f.Insts), len(f.Calls))
		if !full {
			continue
		}
		if err := disasm.Format(w, annotate(img, f.Name(), f, s, bases).Lines, color); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	for _, sk := range res.Skipped {
		fmt.Fprintf(w, "skipped %s from 0x%08x: %v\n", analysis.FunctionName(sk.Target), sk.From, sk.Err)
	}
	if res.Truncated {
		fmt.Fprintf(w, "stopped after %d functions\n", len(res.Functions))
	}
	return nil
}

func traceJSON(img *dolx.Image, res *analysis.TraceResult, s settings) JSONOutput {
	out := JSONOutput{
		Path:      img.Path,
		Digest:    img.Digest(),
		Header:    img.Header.Report(),
		Truncated: res.Truncated,
	}
	bases := analysis.FindSmallDataBases(img, s.cfg.Options())
	for _, f := range res.Functions {
		jf := JSONFunction{Name: f.Name(), Listing: annotate(img, f.Name(), f, s, bases)}
		for _, c := range f.Calls {
			jf.Calls = append(jf.Calls, analysis.FunctionName(c.Target))
		}
		out.Functions = append(out.Functions, jf)
	}
	for _, sk := range res.Skipped {
		out.Skipped = append(out.Skipped, JSONSkip{
			From:   fmt.Sprintf("0x%08x", sk.From),
			Target: fmt.Sprintf("0x%08x", sk.Target),
			Error:  sk.Err.Error(),
		})
	}
	return out
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"dolasm/internal/analysis"
	"dolasm/internal/callgraph"
	"dolasm/internal/disasm"
	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
	"dolasm/internal/ui/colorize"
)

// JSONOutput is the --json document.
type JSONOutput struct {
	Path      string            `json:"path"`
	Digest    string            `json:"digest"`
	Header    dolx.HeaderReport `json:"header"`
	Listing   *disasm.Listing   `json:"listing,omitempty"`
	Functions []JSONFunction    `json:"functions,omitempty"`
	Skipped   []JSONSkip        `json:"skipped,omitempty"`
	Truncated bool              `json:"truncated,omitempty"`
}

type JSONFunction struct {
	Name    string         `json:"name"`
	Listing disasm.Listing `json:"listing"`
	Calls   []string       `json:"calls,omitempty"`
}

type JSONSkip struct {
	From   string `json:"from"`
	Target string `json:"target"`
	Error  string `json:"error"`
}

// listed is one decoded and annotated range.
type listed struct {
	listing disasm.Listing
	fn      *analysis.Function
	err     error
}

// listRange decodes rng and annotates it. A failure to resolve the start is
// returned as an error; a decode failure partway is kept in listed.err so the
// partial listing can still be shown.
func listRange(img *dolx.Image, rng analysis.AddressRange, s settings, bases map[ppc.Register]uint32) (listed, error) {
	stream, err := analysis.Disassemble(img, rng, s.cfg.Options())
	if err != nil {
		return listed{}, err
	}
	insts, decodeErr := stream.Collect()
	span := stream.Span()

	fn := &analysis.Function{
		Start: span.Start,
		Span:  span,
		Insts: insts,
		Calls: analysis.CollectCalls(span, insts),
		Err:   decodeErr,
	}
	name := ""
	if rng.End.Kind == analysis.EndHeuristic {
		name = fn.Name()
	}
	return listed{
		listing: annotate(img, name, fn, s, bases),
		fn:      fn,
		err:     decodeErr,
	}, nil
}

// annotate renders fn with branch labels and address comments.
func annotate(img *dolx.Image, name string, fn *analysis.Function, s settings, bases map[ppc.Register]uint32) disasm.Listing {
	labels := analysis.BuildCFG(name, fn.Insts).Labels()
	notes := analysis.NewAnnotatorChain(
		analysis.BranchTargets{Labels: labels},
		analysis.AddressRefs{Img: img, Bases: bases, Labels: labels},
	).Annotate(fn.Insts)

	return disasm.NewListing(name, fn.Span, fn.Insts, fn.Err, disasm.Options{
		Syntax: s.syntax,
		Labels: labels,
		Notes:  notes,
	})
}

func writeHeader(w io.Writer, img *dolx.Image, s settings) {
	report := img.Header.Report()
	both := !s.headers && !s.sections
	if s.headers || both {
		for _, line := range report.FieldLines() {
			fmt.Fprintln(w, line)
		}
	}
	if s.sections || both {
		for _, line := range report.SectionLines() {
			fmt.Fprintln(w, line)
		}
	}
}

func colorizer(w io.Writer, s settings) func(string) string {
	if s.cfg.NoColor || !isTerminal(w) || colorize.Disabled() {
		return nil
	}
	return colorize.ColorizeInstructionLine
}

// runText prints the requested header parts and listing. With neither a
// header flag nor a range it prints the whole header.
func runText(w io.Writer, img *dolx.Image, s settings) error {
	if s.headers || s.sections || !s.wantsListing() {
		writeHeader(w, img, s)
	}
	if !s.wantsListing() {
		return nil
	}

	bases := analysis.FindSmallDataBases(img, s.cfg.Options())
	l, err := listRange(img, s.rangeFor(img), s, bases)
	if err != nil {
		return err
	}
	if err := disasm.FormatListing(w, l.listing, colorizer(w, s)); err != nil {
		return err
	}
	if s.cfgDot != "" {
		if err := writeDOT(s.cfgDot, callgraph.CFGDOT(l.fn)); err != nil {
			return err
		}
	}
	return l.err
}

func runJSON(w io.Writer, img *dolx.Image, s settings) error {
	out := JSONOutput{
		Path:   img.Path,
		Digest: img.Digest(),
		Header: img.Header.Report(),
	}

	var decodeErr error
	if s.wantsListing() {
		bases := analysis.FindSmallDataBases(img, s.cfg.Options())
		l, err := listRange(img, s.rangeFor(img), s, bases)
		if err != nil {
			return err
		}
		out.Listing = &l.listing
		decodeErr = l.err
	}
	if err := writeJSON(w, out); err != nil {
		return err
	}
	return decodeErr
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeDOT(path, dot string) error {
	if err := os.WriteFile(path, []byte(dot), 0o644); err != nil {
		return fmt.Errorf("write DOT: %w", err)
	}
	slog.Info("wrote DOT graph", "path", path)
	return nil
}

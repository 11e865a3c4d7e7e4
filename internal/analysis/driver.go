package analysis

import (
	"iter"

	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
)

// Stream is a finite, restartable instruction sequence over a resolved span.
// Nothing is decoded until it is iterated.
type Stream struct {
	img  *dolx.Image
	span Span
}

// Disassemble resolves rng and returns a stream over it. The only error is a
// resolver failure on the start of a heuristic range; explicit ranges report
// resolver failures while iterating.
func Disassemble(img *dolx.Image, rng AddressRange, opts Options) (*Stream, error) {
	span, err := ResolveSpan(img, rng, opts)
	if err != nil {
		return nil, err
	}
	return newStream(img, span), nil
}

func newStream(img *dolx.Image, span Span) *Stream {
	return &Stream{img: img, span: span}
}

func (s *Stream) Span() Span { return s.span }

// Iter starts a fresh pass. Every word that begins inside the span is
// decoded; each step re-resolves its address so a span may run into a
// contiguous section.
func (s *Stream) Iter() *Iterator {
	return &Iterator{img: s.img, next: uint64(s.span.Start), end: uint64(s.span.End)}
}

// All yields each instruction with a nil error. A failure is yielded once
// as the final pair.
func (s *Stream) All() iter.Seq2[ppc.Instruction, error] {
	return func(yield func(ppc.Instruction, error) bool) {
		it := s.Iter()
		for {
			inst, ok := it.Next()
			if !ok {
				break
			}
			if !yield(inst, nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield(ppc.Instruction{}, err)
		}
	}
}

// Collect drains a fresh pass. On error the instructions decoded before the
// failure are returned alongside it.
func (s *Stream) Collect() ([]ppc.Instruction, error) {
	var out []ppc.Instruction
	it := s.Iter()
	for {
		inst, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, inst)
	}
	return out, it.Err()
}

// Iterator is a single forward pass. Abandoning it early has no effect.
type Iterator struct {
	img  *dolx.Image
	next uint64
	end  uint64
	err  error
}

// Next decodes the next instruction. It returns false at the end of the
// span or after an error; check Err to tell them apart.
func (it *Iterator) Next() (ppc.Instruction, bool) {
	if it.err != nil || it.next >= it.end {
		return ppc.Instruction{}, false
	}
	addr := uint32(it.next)
	b, err := it.img.ReadAt(addr, instructionSize)
	if err != nil {
		it.err = err
		return ppc.Instruction{}, false
	}
	inst, err := ppc.DecodeBytes(b, addr)
	if err != nil {
		it.err = err
		return ppc.Instruction{}, false
	}
	it.next += instructionSize
	return inst, true
}

func (it *Iterator) Err() error { return it.err }

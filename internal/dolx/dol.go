// Package dolx opens GameCube/Wii DOL executables, exposes their section table, and maps virtual addresses to file offsets.
package dolx

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"os"
	"sort"
)

const (
	HeaderSize  = 0x100
	NumText     = 7
	NumData     = 11
	NumSections = NumText + NumData

	offFileOffsets  = 0x00
	offLoadAddrs    = 0x48
	offSizes        = 0x90
	offBssAddress   = 0xd8
	offBssSize      = 0xdc
	offEntryPoint   = 0xe0
	descriptorWidth = 4
)

type Kind uint8

const (
	KindText Kind = iota
	KindData
)

func (k Kind) String() string {
	if k == KindText {
		return "Text"
	}
	return "Data"
}

// Section is one of the 18 header descriptors. Index is the position in the
// header: 0-6 are text sections, 7-17 are data sections.
type Section struct {
	Index       int    `json:"index"`
	Kind        Kind   `json:"-"`
	FileOffset  uint32 `json:"fileOffset"`
	LoadAddress uint32 `json:"loadAddress"`
	Size        uint32 `json:"size"`
}

// Empty reports whether the descriptor is unused.
func (s Section) Empty() bool { return s.Size == 0 }

// Name returns the conventional section name, e.g. "Text0" or "Data3".
func (s Section) Name() string {
	if s.Kind == KindText {
		return fmt.Sprintf("Text%d", s.Index)
	}
	return fmt.Sprintf("Data%d", s.Index-NumText)
}

// End returns the first load address past the section.
func (s Section) End() uint64 { return uint64(s.LoadAddress) + uint64(s.Size) }

func (s Section) Contains(addr uint32) bool {
	return !s.Empty() && addr >= s.LoadAddress && uint64(addr) < s.End()
}

// SectionTable holds every descriptor in header order, zero-size entries included.
type SectionTable [NumSections]Section

// NonEmpty returns the sections with a non-zero size, in header order.
func (t *SectionTable) NonEmpty() []Section {
	out := make([]Section, 0, NumSections)
	for _, s := range t {
		if !s.Empty() {
			out = append(out, s)
		}
	}
	return out
}

// Omitted counts the zero-size descriptors.
func (t *SectionTable) Omitted() int {
	n := 0
	for _, s := range t {
		if s.Empty() {
			n++
		}
	}
	return n
}

type Header struct {
	Sections   SectionTable
	BssAddress uint32
	BssSize    uint32
	EntryPoint uint32
}

// InBss reports whether addr lies in [BssAddress, BssAddress+BssSize).
func (h *Header) InBss(addr uint32) bool {
	return h.BssSize != 0 && addr >= h.BssAddress && uint64(addr) < uint64(h.BssAddress)+uint64(h.BssSize)
}

type Image struct {
	Path   string
	Header Header
	All    []byte
	// order lists the indices of non-empty sections sorted by load address.
	order []int
}

// Open reads a DOL from disk. gzip, zip and xz wrapped inputs are unpacked first.
func Open(path string) (*Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dol: %w", err)
	}
	data, err := Decompress(raw, path)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", path, err)
	}
	im, err := Parse(data)
	if err != nil {
		return nil, err
	}
	im.Path = path
	return im, nil
}

// Parse validates the fixed header and builds the section table. The buffer
// is retained, not copied.
func Parse(buf []byte) (*Image, error) {
	if len(buf) < HeaderSize {
		return nil, &HeaderError{Section: -1, Reason: fmt.Sprintf("file is %d bytes, header needs %d", len(buf), HeaderSize)}
	}

	im := &Image{All: buf}
	h := &im.Header
	for i := range NumSections {
		kind := KindText
		if i >= NumText {
			kind = KindData
		}
		h.Sections[i] = Section{
			Index:       i,
			Kind:        kind,
			FileOffset:  be32(buf, offFileOffsets+i*descriptorWidth),
			LoadAddress: be32(buf, offLoadAddrs+i*descriptorWidth),
			Size:        be32(buf, offSizes+i*descriptorWidth),
		}
	}
	h.BssAddress = be32(buf, offBssAddress)
	h.BssSize = be32(buf, offBssSize)
	h.EntryPoint = be32(buf, offEntryPoint)

	if err := im.validate(); err != nil {
		return nil, err
	}

	for _, s := range h.Sections {
		if !s.Empty() {
			im.order = append(im.order, s.Index)
		}
	}
	sort.Slice(im.order, func(a, b int) bool {
		return h.Sections[im.order[a]].LoadAddress < h.Sections[im.order[b]].LoadAddress
	})

	slog.Debug("parsed dol", "sections", len(im.order), "omitted", h.Sections.Omitted(),
		"entry", fmt.Sprintf("0x%08x", h.EntryPoint))
	return im, nil
}

func (im *Image) validate() error {
	secs := im.Header.Sections.NonEmpty()
	for _, s := range secs {
		if uint64(s.FileOffset)+uint64(s.Size) > uint64(len(im.All)) {
			return &HeaderError{Section: s.Index, Reason: fmt.Sprintf("range 0x%x+0x%x exceeds file length 0x%x", s.FileOffset, s.Size, len(im.All))}
		}
		if s.End() > 1<<32 {
			return &HeaderError{Section: s.Index, Reason: fmt.Sprintf("load range 0x%08x+0x%x wraps the address space", s.LoadAddress, s.Size)}
		}
	}

	if a, b, ok := firstOverlap(secs, func(s Section) uint32 { return s.FileOffset }); ok {
		return &HeaderError{Section: b.Index, Reason: fmt.Sprintf("file range overlaps %s", a.Name())}
	}
	if a, b, ok := firstOverlap(secs, func(s Section) uint32 { return s.LoadAddress }); ok {
		return &HeaderError{Section: b.Index, Reason: fmt.Sprintf("load range overlaps %s", a.Name())}
	}
	return nil
}

// firstOverlap sorts a copy of secs by key and reports the first adjacent pair whose ranges intersect.
func firstOverlap(secs []Section, key func(Section) uint32) (Section, Section, bool) {
	sorted := append([]Section(nil), secs...)
	sort.Slice(sorted, func(i, j int) bool { return key(sorted[i]) < key(sorted[j]) })
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if uint64(key(prev))+uint64(prev.Size) > uint64(key(cur)) {
			return prev, cur, true
		}
	}
	return Section{}, Section{}, false
}

func be32(b []byte, off int) uint32 {
	return binary.BigEndian.Uint32(b[off : off+descriptorWidth])
}

package dolx

import "sort"

// SectionAt returns the non-empty section whose load range contains addr.
func (im *Image) SectionAt(addr uint32) (Section, bool) {
	secs := &im.Header.Sections
	// First section starting after addr; the candidate is the one before it.
	i := sort.Search(len(im.order), func(i int) bool {
		return secs[im.order[i]].LoadAddress > addr
	})
	if i == 0 {
		return Section{}, false
	}
	s := secs[im.order[i-1]]
	if !s.Contains(addr) {
		return Section{}, false
	}
	return s, true
}

// Resolve translates a virtual address into a file offset. Sections are
// consulted before bss, since small-data sections may sit inside the bss span.
func (im *Image) Resolve(addr uint32) (uint32, error) {
	s, ok := im.SectionAt(addr)
	if ok {
		return s.FileOffset + (addr - s.LoadAddress), nil
	}
	if im.Header.InBss(addr) {
		return 0, &AddressError{Addr: addr, Err: ErrNoFileBacking}
	}
	return 0, &AddressError{Addr: addr, Err: ErrAddressOutOfRange}
}

// ReadAt returns up to n bytes starting at addr without crossing the end of
// the containing section. The result aliases the image buffer.
func (im *Image) ReadAt(addr uint32, n int) ([]byte, error) {
	off, err := im.Resolve(addr)
	if err != nil {
		return nil, err
	}
	s, _ := im.SectionAt(addr)
	avail := int(s.End() - uint64(addr))
	if n > avail {
		n = avail
	}
	if n < 0 {
		n = 0
	}
	return im.All[off : int(off)+n], nil
}

// InText reports whether addr lies in a text section.
func (im *Image) InText(addr uint32) bool {
	s, ok := im.SectionAt(addr)
	return ok && s.Kind == KindText
}

// InData reports whether addr lies in a data section.
func (im *Image) InData(addr uint32) bool {
	s, ok := im.SectionAt(addr)
	return ok && s.Kind == KindData
}

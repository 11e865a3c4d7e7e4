// Package doltest builds synthetic DOL images for tests.
package doltest

import "encoding/binary"

type Section struct {
	Index int
	Addr  uint32
	Data  []byte
}

type Image struct {
	Sections   []Section
	BssAddress uint32
	BssSize    uint32
	EntryPoint uint32
}

// Bytes lays the section payloads out back to back after the 0x100 byte header.
func (img Image) Bytes() []byte {
	buf := make([]byte, 0x100)
	for _, s := range img.Sections {
		off := uint32(len(buf))
		buf = append(buf, s.Data...)
		PutDescriptor(buf, s.Index, off, s.Addr, uint32(len(s.Data)))
	}
	binary.BigEndian.PutUint32(buf[0xd8:], img.BssAddress)
	binary.BigEndian.PutUint32(buf[0xdc:], img.BssSize)
	binary.BigEndian.PutUint32(buf[0xe0:], img.EntryPoint)
	return buf
}

// PutDescriptor writes one raw section descriptor into a header buffer.
func PutDescriptor(buf []byte, index int, off, addr, size uint32) {
	binary.BigEndian.PutUint32(buf[index*4:], off)
	binary.BigEndian.PutUint32(buf[0x48+index*4:], addr)
	binary.BigEndian.PutUint32(buf[0x90+index*4:], size)
}

// Words encodes instruction words big-endian.
func Words(ws ...uint32) []byte {
	out := make([]byte, 4*len(ws))
	for i, w := range ws {
		binary.BigEndian.PutUint32(out[i*4:], w)
	}
	return out
}

package dolx

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"

	"dolasm/internal/dolx/doltest"
)

func TestDecompress(t *testing.T) {
	payload := doltest.Image{
		Sections:   []doltest.Section{{Index: 0, Addr: 0x80003100, Data: doltest.Words(0x4e800020)}},
		EntryPoint: 0x80003100,
	}.Bytes()

	gz := func() []byte {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		w.Write(payload)
		w.Close()
		return buf.Bytes()
	}
	xzb := func() []byte {
		var buf bytes.Buffer
		w, err := xz.NewWriter(&buf)
		if err != nil {
			t.Fatalf("xz.NewWriter: %v", err)
		}
		w.Write(payload)
		w.Close()
		return buf.Bytes()
	}
	zipb := func() []byte {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		f, _ := zw.Create("main.dol")
		f.Write(payload)
		zw.Close()
		return buf.Bytes()
	}

	tests := []struct {
		name string
		in   []byte
	}{
		{"raw", payload},
		{"gzip", gz()},
		{"xz", xzb()},
		{"zip", zipb()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decompress(tt.in, tt.name)
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(got, payload) {
				t.Errorf("Decompress returned %d bytes, want %d", len(got), len(payload))
			}
		})
	}
}

func TestOpen(t *testing.T) {
	payload := doltest.Image{
		Sections:   []doltest.Section{{Index: 0, Addr: 0x80003100, Data: doltest.Words(0x4e800020)}},
		EntryPoint: 0x80003100,
	}.Bytes()
	path := filepath.Join(t.TempDir(), "main.dol")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatal(err)
	}

	im, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if im.Path != path {
		t.Errorf("Path = %q", im.Path)
	}
	if im.Header.EntryPoint != 0x80003100 {
		t.Errorf("EntryPoint = 0x%x", im.Header.EntryPoint)
	}
	if d := im.Digest(); len(d) != 64 {
		t.Errorf("Digest() = %q, want 64 hex chars", d)
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.dol")); err == nil {
		t.Error("Open(missing) succeeded")
	}
}

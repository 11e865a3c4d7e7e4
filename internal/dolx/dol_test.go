package dolx

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"dolasm/internal/dolx/doltest"
)

// reportHeader builds the header from the two-section report scenario. Only
// the header is materialized; section payloads are zero padding.
func reportHeader() []byte {
	buf := make([]byte, 0x190ac0+0x95940)
	doltest.PutDescriptor(buf, 0, 0x100, 0x80004000, 0x1909c0)
	doltest.PutDescriptor(buf, 7, 0x190ac0, 0x801949c0, 0x95940)
	copy(buf[0xd8:], doltest.Words(0x8022a300, 0x7de40, 0x80004000))
	return buf
}

func TestParseReport(t *testing.T) {
	im, err := Parse(reportHeader())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	r := im.Header.Report()
	want := HeaderReport{
		BssAddress: 0x8022a300,
		BssSize:    0x7de40,
		EntryPoint: 0x80004000,
		Sections: []Section{
			{Index: 0, Kind: KindText, FileOffset: 0x100, LoadAddress: 0x80004000, Size: 0x1909c0},
			{Index: 7, Kind: KindData, FileOffset: 0x190ac0, LoadAddress: 0x801949c0, Size: 0x95940},
		},
		Omitted: 16,
	}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Errorf("Report() mismatch (-want +got):\n%s", diff)
	}

	text := r.String()
	for _, line := range []string{
		"BSS address: 8022a300",
		"BSS size: 7de40",
		"Entrypoint: 80004000",
		"16 sections with size 0 were omitted",
	} {
		if !strings.Contains(text, line) {
			t.Errorf("report missing %q:\n%s", line, text)
		}
	}
	if got := len(r.SectionLines()); got != 3 {
		t.Errorf("SectionLines() = %d lines, want 3", got)
	}
}

func TestParseKeepsIndices(t *testing.T) {
	im, err := Parse(reportHeader())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, s := range im.Header.Sections {
		if s.Index != i {
			t.Errorf("Sections[%d].Index = %d", i, s.Index)
		}
	}
	if got := im.Header.Sections[7].Name(); got != "Data0" {
		t.Errorf("Sections[7].Name() = %q, want Data0", got)
	}
	if got := im.Header.Sections[17].Name(); got != "Data10" {
		t.Errorf("Sections[17].Name() = %q, want Data10", got)
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name  string
		build func() []byte
	}{
		{
			name:  "short file",
			build: func() []byte { return make([]byte, 0xff) },
		},
		{
			name: "section past end of file",
			build: func() []byte {
				buf := make([]byte, 0x200)
				doltest.PutDescriptor(buf, 0, 0x100, 0x80003100, 0x101)
				return buf
			},
		},
		{
			name: "file ranges overlap",
			build: func() []byte {
				buf := make([]byte, 0x300)
				doltest.PutDescriptor(buf, 0, 0x100, 0x80003100, 0x100)
				doltest.PutDescriptor(buf, 7, 0x180, 0x80010000, 0x100)
				return buf
			},
		},
		{
			name: "load ranges overlap",
			build: func() []byte {
				buf := make([]byte, 0x300)
				doltest.PutDescriptor(buf, 0, 0x100, 0x80003100, 0x100)
				doltest.PutDescriptor(buf, 1, 0x200, 0x80003180, 0x100)
				return buf
			},
		},
		{
			name: "load range wraps",
			build: func() []byte {
				buf := make([]byte, 0x200)
				doltest.PutDescriptor(buf, 0, 0x100, 0xffffff80, 0x100)
				return buf
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.build())
			if !errors.Is(err, ErrMalformedHeader) {
				t.Fatalf("Parse() error = %v, want ErrMalformedHeader", err)
			}
			var he *HeaderError
			if !errors.As(err, &he) {
				t.Errorf("error %T is not a *HeaderError", err)
			}
		})
	}
}

func TestParseExactHeader(t *testing.T) {
	im, err := Parse(make([]byte, HeaderSize))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := im.Header.Sections.Omitted(); got != NumSections {
		t.Errorf("Omitted() = %d, want %d", got, NumSections)
	}
	if got := OmittedLine(1); got != "1 section with size 0 was omitted" {
		t.Errorf("OmittedLine(1) = %q", got)
	}
}

func TestZeroSizeSectionIgnoresBogusOffset(t *testing.T) {
	buf := make([]byte, 0x200)
	doltest.PutDescriptor(buf, 0, 0x100, 0x80003100, 0x100)
	// Unused descriptors may carry garbage offsets; only the size matters.
	doltest.PutDescriptor(buf, 3, 0xffffff00, 0x80003100, 0)
	if _, err := Parse(buf); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

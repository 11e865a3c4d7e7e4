package dolx

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"log/slog"

	"github.com/ulikunitz/xz"
)

var xzMagic = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}

// Decompress unwraps gzip, xz and single-entry zip containers. Anything else
// is returned unchanged.
func Decompress(data []byte, filename string) ([]byte, error) {
	if len(data) < 2 {
		return data, nil
	}

	switch {
	case data[0] == 0x1f && data[1] == 0x8b:
		slog.Debug("Detected gzip compression", "file", filename)
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer reader.Close()
		return readAllLogged(reader, "gzip", filename, len(data))

	case bytes.HasPrefix(data, xzMagic):
		slog.Debug("Detected xz compression", "file", filename)
		reader, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("xz reader: %w", err)
		}
		return readAllLogged(reader, "xz", filename, len(data))

	case len(data) >= 4 && data[0] == 'P' && data[1] == 'K':
		slog.Debug("Detected ZIP archive", "file", filename)
		reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("zip reader: %w", err)
		}
		if len(reader.File) == 0 {
			return nil, fmt.Errorf("zip archive is empty")
		}
		// DOL distributions carry a single executable per archive.
		file := reader.File[0]
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s in zip: %w", file.Name, err)
		}
		defer rc.Close()
		return readAllLogged(rc, "zip", filename, len(data))
	}
	return data, nil
}

func readAllLogged(r io.Reader, format, filename string, originalSize int) ([]byte, error) {
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s decompression: %w", format, err)
	}
	slog.Debug("Decompression successful", "format", format, "file", filename,
		"original_size", originalSize, "decompressed_size", len(out))
	return out, nil
}

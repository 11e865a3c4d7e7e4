package styles

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/x/exp/charmtone"

	"dolasm/internal/dolx"
)

// Helper functions for style pointers
func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }

// GetMarkdownRenderer returns a glamour TermRenderer using the dolasm palette.
func GetMarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(GetMarkdownStyle()),
		glamour.WithWordWrap(width),
	)
}

// GetMarkdownStyle returns the markdown style configuration
func GetMarkdownStyle() ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(charmtone.Smoke.Hex()),
			},
		},
		BlockQuote: ansi.StyleBlock{
			Indent:      uintPtr(1),
			IndentToken: stringPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       stringPtr(charmtone.Malibu.Hex()),
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix:          " ",
				Suffix:          " ",
				Color:           stringPtr(charmtone.Zest.Hex()),
				BackgroundColor: stringPtr(charmtone.Charple.Hex()),
				Bold:            boolPtr(true),
			},
		},
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "## ",
			},
		},
		H3: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "### ",
				Color:  stringPtr(charmtone.Guac.Hex()),
			},
		},
		Emph: ansi.StylePrimitive{
			Italic: boolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Bold: boolPtr(true),
		},
		HorizontalRule: ansi.StylePrimitive{
			Color:  stringPtr(charmtone.Charcoal.Hex()),
			Format: "\n--------\n",
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr("#EACD53"),
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: stringPtr(charmtone.Squid.Hex()),
				},
				Margin: uintPtr(2),
			},
		},
		Table: ansi.StyleTable{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: stringPtr(charmtone.Smoke.Hex()),
				},
			},
		},
		Text: ansi.StylePrimitive{},
	}
}

// HeaderMarkdown describes an image as markdown: path and digest in a code
// block, the header fields, then a table of the non-empty sections.
func HeaderMarkdown(path, digest string, r dolx.HeaderReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# dolasm\n\n```\n; %s\n", filepath.Base(path))
	if digest != "" {
		fmt.Fprintf(&b, "; blake3 %s\n", digest)
	}
	b.WriteString("```\n\n## Header\n\n")
	for _, line := range r.FieldLines() {
		fmt.Fprintf(&b, "- %s\n", line)
	}

	b.WriteString("\n## Sections\n\n| # | Name | Offset | Address | Size |\n|---|---|---|---|---|\n")
	for _, s := range r.Sections {
		fmt.Fprintf(&b, "| %d | %s | `0x%08x` | `0x%08x` | `0x%08x` |\n",
			s.Index, s.Name(), s.FileOffset, s.LoadAddress, s.Size)
	}
	if r.Omitted > 0 {
		fmt.Fprintf(&b, "\n*%s*\n", dolx.OmittedLine(r.Omitted))
	}
	return b.String()
}

// RenderHeader renders HeaderMarkdown for a terminal of the given width.
func RenderHeader(path, digest string, r dolx.HeaderReport, width int) (string, error) {
	renderer, err := GetMarkdownRenderer(width)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(HeaderMarkdown(path, digest, r))
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(out, "\n"), nil
}

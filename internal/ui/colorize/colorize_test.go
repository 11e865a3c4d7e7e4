package colorize

import (
	"strings"
	"testing"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
)

func TestGekkoDarkRegistered(t *testing.T) {
	if styles.Get("gekko-dark") != GekkoDark {
		t.Error("gekko-dark style not registered")
	}
}

func TestColorizeInstructionLine(t *testing.T) {
	tests := []string{
		"0x80003100 9421ffe0  stwu r1,-32(r1)",
		`0x80003110 38634000  addi r3,r3,16384                   ; "hello, world"`,
		"loc_8000311c:",
		"; fn_80003100 0x80003100-0x80003124 (return)",
		"not an address line",
	}

	for _, line := range tests {
		t.Run(line, func(t *testing.T) {
			t.Setenv("DOLASM_NO_COLOR", "")
			got := ColorizeInstructionLine(line)
			if line != "not an address line" && !strings.Contains(got, "\x1b[") {
				t.Errorf("no escape sequences in %q", got)
			}
			if plain := ansi.Strip(got); plain != line {
				t.Errorf("ansi.Strip(colorized) = %q, want %q", plain, line)
			}

			t.Setenv("DOLASM_NO_COLOR", "1")
			if got := ColorizeInstructionLine(line); got != line {
				t.Errorf("colors disabled: got %q", got)
			}
		})
	}
}

func TestIsAddress(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0x80003100", true},
		{"80003100", true},
		{"0x", false},
		{"loc_1", false},
	}
	for _, tt := range tests {
		if got := isAddress(tt.in); got != tt.want {
			t.Errorf("isAddress(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

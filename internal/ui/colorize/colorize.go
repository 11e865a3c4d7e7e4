// Package colorize highlights listing lines for terminal output.
package colorize

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Disabled reports whether DOLASM_NO_COLOR is set.
func Disabled() bool { return os.Getenv("DOLASM_NO_COLOR") != "" }

// getAssemblyLexer returns the GNU assembler lexer with fallbacks
func getAssemblyLexer() chroma.Lexer {
	candidates := []string{"gas", "GAS", "nasm"}
	for _, name := range candidates {
		if lexer := lexers.Get(name); lexer != nil {
			return lexer
		}
	}
	return nil
}

func getDisasmStyle() *chroma.Style {
	candidates := []string{"gekko-dark", "dracula", "monokai"}
	for _, name := range candidates {
		if style := styles.Get(name); style != nil {
			return style
		}
	}
	return styles.Fallback
}

func getTerminalFormatter() chroma.Formatter {
	candidates := []string{"terminal16m", "terminal256"}
	for _, name := range candidates {
		if formatter := formatters.Get(name); formatter != nil {
			return formatter
		}
	}
	return formatters.Fallback
}

// ColorizeInstructionLine colorizes one listing line while keeping its columns.
// Lines look like "0xADDR body ; comment"; labels end in ':'.
func ColorizeInstructionLine(line string) string {
	if Disabled() {
		return line
	}

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, ";") {
		return fmt.Sprintf("\033[38;2;235;194;237m%s\033[0m", line)
	}
	if strings.HasSuffix(trimmed, ":") && !strings.Contains(trimmed, " ") {
		return fmt.Sprintf("\033[38;2;255;215;0m%s\033[0m", line)
	}

	addr, rest, ok := strings.Cut(line, " ")
	if !ok || !isAddress(addr) {
		return colorizeFullLine(line)
	}

	body, comment, hasComment := strings.Cut(rest, " ; ")
	out := fmt.Sprintf("\033[38;2;79;79;79m%s\033[0m %s", addr, colorizeFullLine(body))
	if hasComment {
		out += fmt.Sprintf(" \033[38;2;234;205;83m; %s\033[0m", comment)
	}
	return out
}

func isAddress(s string) bool {
	s = strings.TrimPrefix(s, "0x")
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexChar(s[i]) {
			return false
		}
	}
	return true
}

func isHexChar(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func colorizeFullLine(line string) string {
	lexer := getAssemblyLexer()
	if lexer == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf strings.Builder
	if err := getTerminalFormatter().Format(&buf, getDisasmStyle(), iterator); err != nil {
		return line
	}
	// lexers terminate input with a newline; a listing line must stay one line
	return strings.ReplaceAll(buf.String(), "\n", "")
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	pathpkg "path/filepath"
	"runtime/pprof"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"dolasm/internal/analysis"
	"dolasm/internal/dolasm/config"
	"dolasm/internal/dolasm/log"
	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
)

// ErrCOutput is returned for --disasm c.
var ErrCOutput = errors.New("C output is not implemented")

// settings is the merged view of the config file and the command line.
type settings struct {
	cfg        config.Config
	syntax     ppc.Syntax
	headers    bool
	sections   bool
	entrypoint bool
	rng        *analysis.AddressRange
	jsonOut    bool
	noTUI      bool
	cfgDot     string
}

// wantsListing reports whether an address range was requested.
func (s settings) wantsListing() bool { return s.rng != nil || s.entrypoint }

// explicitOutput reports flags that select plain output over the TUI.
func (s settings) explicitOutput() bool {
	return s.headers || s.sections || s.wantsListing() || s.jsonOut || s.noTUI
}

// NewRootCmd builds the dolasm command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dolasm [file]",
		Short: "GameCube and Wii DOL disassembler",
		Long: `dolasm parses GameCube and Wii DOL executables and decodes their
PowerPC Gekko code. Without an end address a range runs to the first
unconditional return.`,
		Example: `
# Show the header and section table
dolasm --headers --sections main.dol

# Disassemble the entry function
dolasm --entrypoint main.dol

# Disassemble 16 bytes in GNU syntax
dolasm -x 80003100:+16 --disasm gnu main.dol

# Browse traced functions interactively
dolasm main.dol
  `,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	rootCmd.PersistentFlags().StringP("cwd", "c", "", "Current working directory")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.FileName+")")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Debug")
	rootCmd.PersistentFlags().Int("max-insns", 0, "Instruction cap for the function boundary heuristic")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output results as JSON")
	rootCmd.PersistentFlags().String("disasm", "asm", "Output mode: asm, gnu, go or c")

	rootCmd.Flags().BoolP("help", "h", false, "Help")
	rootCmd.Flags().Bool("headers", false, "Show the BSS and entry point fields")
	rootCmd.Flags().Bool("sections", false, "Show the non-empty sections")
	rootCmd.Flags().StringP("range", "x", "", "Address range <start>:<end>, <start>:+<len> or <start>:")
	rootCmd.Flags().Bool("entrypoint", false, "Disassemble from the entry point")
	rootCmd.Flags().BoolP("no-tui", "n", false, "Print results without the TUI")
	rootCmd.Flags().String("cfg-dot", "", "Write the disassembled range's control flow graph as DOT")
	rootCmd.Flags().String("cpuprofile", "", "Write CPU profile to file")
	rootCmd.Flags().String("memprofile", "", "Write memory profile to file")
	rootCmd.MarkFlagsMutuallyExclusive("range", "entrypoint")

	rootCmd.AddCommand(newTraceCmd(), newSchemaCmd())
	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	cpuprofile, _ := cmd.Flags().GetString("cpuprofile")
	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	memprofile, _ := cmd.Flags().GetString("memprofile")
	if memprofile != "" {
		defer func() {
			f, err := os.Create(memprofile)
			if err != nil {
				slog.Error("could not create memory profile", "error", err)
				return
			}
			defer f.Close()
			if err := pprof.WriteHeapProfile(f); err != nil {
				slog.Error("could not write memory profile", "error", err)
			}
		}()
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	img, err := openImage(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !isTerminal(out) {
		s.noTUI = true
	}

	switch {
	case s.jsonOut:
		return runJSON(out, img, s)
	case s.explicitOutput():
		return runText(out, img, s)
	}

	program := tea.NewProgram(
		NewModel(img, s),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	if _, err := program.Run(); err != nil {
		slog.Error("TUI run error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// loadSettings merges the config file with the flags of cmd. Flags that are
// not defined on cmd are left at their config values.
func loadSettings(cmd *cobra.Command) (settings, error) {
	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return settings{}, err
	}
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cwd)
	if err != nil {
		return settings{}, err
	}

	flags := cmd.Flags()
	if debug, _ := flags.GetBool("debug"); debug {
		cfg.Debug = true
	}
	log.Setup(cfg.Debug)

	if flags.Changed("max-insns") {
		cfg.MaxInstructions, _ = flags.GetInt("max-insns")
	}
	if flags.Changed("max-functions") {
		cfg.MaxFunctions, _ = flags.GetInt("max-functions")
	}

	s := settings{cfg: cfg}
	s.headers, _ = flags.GetBool("headers")
	s.sections, _ = flags.GetBool("sections")
	s.entrypoint, _ = flags.GetBool("entrypoint")
	s.jsonOut, _ = flags.GetBool("json")
	s.noTUI, _ = flags.GetBool("no-tui")
	s.cfgDot, _ = flags.GetString("cfg-dot")

	mode, _ := flags.GetString("disasm")
	if s.syntax, err = syntaxFor(mode, cfg); err != nil {
		return settings{}, err
	}

	if text, _ := flags.GetString("range"); text != "" {
		rng, err := analysis.ParseRange(text)
		if err != nil {
			return settings{}, err
		}
		s.rng = &rng
	}
	if s.cfgDot != "" && !s.wantsListing() {
		return settings{}, errors.New("--cfg-dot needs --range or --entrypoint")
	}
	return s, nil
}

// syntaxFor maps --disasm to a rendering. asm follows the config file.
func syntaxFor(mode string, cfg config.Config) (ppc.Syntax, error) {
	switch mode {
	case "", "asm":
		return ppc.Syntax(cfg.Syntax), nil
	case "gnu":
		return ppc.SyntaxGNU, nil
	case "go":
		return ppc.SyntaxGo, nil
	case "c":
		return "", ErrCOutput
	}
	return "", fmt.Errorf("unknown --disasm mode %q (want asm, gnu, go or c)", mode)
}

func openImage(file string) (*dolx.Image, error) {
	absPath, err := pathpkg.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %s", file)
		}
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	return dolx.Open(absPath)
}

// rangeFor returns the range to list, with --entrypoint resolved against img.
func (s settings) rangeFor(img *dolx.Image) analysis.AddressRange {
	if s.rng != nil {
		return *s.rng
	}
	return analysis.AddressRange{Start: img.Header.EntryPoint, End: analysis.Heuristic()}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

func Execute() {
	rootCmd := NewRootCmd()

	// fang's rendering is for interactive use only
	plain := !term.IsTerminal(os.Stdout.Fd())
	for _, arg := range os.Args[1:] {
		if arg == "--no-tui" || arg == "-n" || arg == "--json" || arg == "-j" {
			plain = true
			break
		}
	}

	if plain {
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		err := os.Chdir(cwd)
		if err != nil {
			return "", fmt.Errorf("failed to change directory: %w", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	return cwd, nil
}

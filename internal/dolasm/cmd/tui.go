package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/v2/list"
	"github.com/charmbracelet/bubbles/v2/spinner"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"dolasm/internal/analysis"
	"dolasm/internal/disasm"
	"dolasm/internal/dolasm/styles"
	"dolasm/internal/dolx"
	"dolasm/internal/ppc"
	"dolasm/internal/ui/colorize"
)

type viewMode int

const (
	viewHeader viewMode = iota
	viewFunctions
	viewListing
)

type functionItem struct {
	fn *analysis.Function
}

func (i functionItem) FilterValue() string {
	return fmt.Sprintf("%s %x", i.fn.Name(), i.fn.Start)
}

type itemDelegate struct{}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(functionItem)
	if !ok {
		return
	}

	indicator := " "
	addrStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	if index == m.Index() {
		indicator = ">"
		addrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	}

	stop := ""
	if i.fn.Err != nil {
		stop = " (decode error)"
	}
	fmt.Fprintf(w, " %s  %s  %-28s %4d insns %3d calls%s",
		indicator,
		addrStyle.Render(i.fn.Name()),
		i.fn.Span.String(),
		len(i.fn.Insts),
		len(i.fn.Calls),
		stop)
}

type model struct {
	header        viewport.Model
	functions     list.Model
	listing       viewport.Model
	spinner       spinner.Model
	mode          viewMode
	img           *dolx.Image
	settings      settings
	digest        string
	trace         *analysis.TraceResult
	traceErr      error
	bases         map[ppc.Register]uint32
	selected      string
	loadingDigest bool
	loadingTrace  bool
	width         int
	height        int
}

type digestMsg struct {
	digest string
}

type traceMsg struct {
	res   *analysis.TraceResult
	bases map[ppc.Register]uint32
	err   error
}

func digestCmd(img *dolx.Image) tea.Cmd {
	return func() tea.Msg {
		return digestMsg{digest: img.Digest()}
	}
}

func traceCmd(img *dolx.Image, s settings) tea.Cmd {
	return func() tea.Msg {
		res, err := analysis.Trace(img, img.Header.EntryPoint, s.cfg.TraceOptions())
		if err != nil {
			return traceMsg{err: err}
		}
		return traceMsg{res: res, bases: analysis.FindSmallDataBases(img, s.cfg.Options())}
	}
}

func NewModel(img *dolx.Image, s settings) model {
	vp := viewport.New()
	vp.SetWidth(80)
	vp.SetHeight(24)

	lvp := viewport.New()
	lvp.SetWidth(80)
	lvp.SetHeight(24)

	functions := list.New([]list.Item{}, itemDelegate{}, 80, 24)
	functions.SetShowStatusBar(false)
	functions.SetFilteringEnabled(true)
	functions.Title = "Functions"
	functions.Styles.Title = lipgloss.NewStyle().
		Foreground(lipgloss.Color("99")).
		MarginLeft(2)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

	m := model{
		header:        vp,
		functions:     functions,
		listing:       lvp,
		spinner:       sp,
		mode:          viewHeader,
		img:           img,
		settings:      s,
		loadingDigest: true,
		loadingTrace:  true,
		width:         80,
		height:        24,
	}
	m.updateContent()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		digestCmd(m.img),
		traceCmd(m.img, m.settings),
		m.spinner.Tick,
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case digestMsg:
		m.digest = msg.digest
		m.loadingDigest = false
		m.updateContent()
		return m, nil

	case traceMsg:
		m.loadingTrace = false
		m.trace, m.bases, m.traceErr = msg.res, msg.bases, msg.err
		m.updateFunctionsList()
		m.updateContent()
		return m, nil

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)
		if m.loadingDigest || m.loadingTrace {
			m.updateContent()
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width != m.width || msg.Height != m.height {
			m.width = msg.Width
			m.height = msg.Height
			m.header.SetWidth(msg.Width)
			m.header.SetHeight(msg.Height - 2)
			m.functions.SetWidth(msg.Width)
			m.functions.SetHeight(msg.Height - 2)
			m.listing.SetWidth(msg.Width)
			m.listing.SetHeight(msg.Height - 2)
			m.updateContent()
		}

	case tea.KeyMsg:
		if m.mode == viewFunctions && m.functions.FilterState() == list.Filtering {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			break
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "h":
			m.mode = viewHeader
			return m, nil
		case "f":
			if m.hasFunctions() {
				m.mode = viewFunctions
			}
			return m, nil
		case "l":
			if m.selected != "" {
				m.mode = viewListing
			}
			return m, nil
		case "enter":
			if m.mode == viewFunctions {
				if item, ok := m.functions.SelectedItem().(functionItem); ok {
					m.showListing(item.fn)
				}
			}
			return m, nil
		case "tab":
			m.cycle(1)
			return m, nil
		case "shift+tab":
			m.cycle(-1)
			return m, nil
		}
	}

	switch m.mode {
	case viewFunctions:
		m.functions, cmd = m.functions.Update(msg)
	case viewListing:
		m.listing, cmd = m.listing.Update(msg)
	default:
		m.header, cmd = m.header.Update(msg)
	}
	return m, cmd
}

func (m *model) hasFunctions() bool {
	return m.trace != nil && len(m.trace.Functions) > 0
}

// cycle moves through the views that currently have content.
func (m *model) cycle(dir int) {
	for range 3 {
		m.mode = viewMode((int(m.mode) + dir + 3) % 3)
		switch {
		case m.mode == viewFunctions && !m.hasFunctions():
		case m.mode == viewListing && m.selected == "":
		default:
			return
		}
	}
}

func (m model) View() string {
	var content string
	switch m.mode {
	case viewFunctions:
		content = m.functions.View()
	case viewListing:
		content = m.listing.View()
	default:
		content = m.header.View()
	}

	var menu string
	switch m.mode {
	case viewFunctions:
		menu = " Enter: view listing • H: header • Tab: cycle • Q: quit "
	case viewListing:
		menu = fmt.Sprintf(" %s • H: header • F: functions • Tab: cycle • Q: quit ", m.selected)
	default:
		if m.hasFunctions() {
			menu = " F: functions • Tab: cycle • Q: quit "
		} else {
			menu = " Q: quit "
		}
	}

	menuStyle := lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("252")).
		Padding(0, 1).
		Width(m.width)

	return content + "\n" + menuStyle.Render(menu)
}

func (m *model) updateContent() {
	width := m.width
	if width == 0 {
		width = 80
	}

	rendered, err := styles.RenderHeader(m.img.Path, m.digest, m.img.Header.Report(), width-2)
	if err != nil {
		rendered = m.img.Header.Report().String()
	}

	var status []string
	if m.loadingDigest {
		status = append(status, fmt.Sprintf("%s Calculating digest...", m.spinner.View()))
	}
	switch {
	case m.loadingTrace:
		status = append(status, fmt.Sprintf("%s Tracing from entry point...", m.spinner.View()))
	case m.traceErr != nil:
		status = append(status, fmt.Sprintf("  trace failed: %v", m.traceErr))
	case m.trace != nil:
		line := fmt.Sprintf("  %d functions traced, %d targets skipped", len(m.trace.Functions), len(m.trace.Skipped))
		if m.trace.Truncated {
			line += " (function limit reached)"
		}
		status = append(status, line)
	}

	if len(status) > 0 {
		rendered += "\n\n" + strings.Join(status, "\n")
	}
	m.header.SetContent(rendered)
}

func (m *model) updateFunctionsList() {
	if m.trace == nil {
		return
	}
	items := make([]list.Item, 0, len(m.trace.Functions))
	for _, fn := range m.trace.Functions {
		items = append(items, functionItem{fn: fn})
	}
	m.functions.SetItems(items)
	m.functions.Title = fmt.Sprintf("Functions (%d traced)", len(items))
}

// showListing renders fn into the listing view and switches to it.
func (m *model) showListing(fn *analysis.Function) {
	var color func(string) string
	if !m.settings.cfg.NoColor && !colorize.Disabled() {
		color = colorize.ColorizeInstructionLine
	}

	var b strings.Builder
	l := annotate(m.img, fn.Name(), fn, m.settings, m.bases)
	if err := disasm.FormatListing(&b, l, color); err != nil {
		fmt.Fprintf(&b, "; %v\n", err)
	}

	m.selected = fn.Name()
	m.listing.SetContent(strings.TrimSuffix(b.String(), "\n"))
	m.listing.GotoTop()
	m.mode = viewListing
}

// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type renders the two console panes: the ingredient match
// lookup on top and the recipe browser below. All state lives in the
// console package; the model here only forwards keys and renders
// snapshots. Calls that reach the catalog run as tea.Cmds so the event
// loop never blocks on the network.
package display

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipedesk/internal/console"
	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	paneTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a")).
			Bold(true)

	activePaneTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#bae6fd")).
				Bold(true)

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	inputTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	// BannerStyle is the muted slate used for the startup banner.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// Primary text, light zinc for list rows.
	primaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d4d4d8"))

	// Secondary text: hints and metadata.
	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	cursorRowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bbf7d0")).
			Bold(true)

	avoidStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5"))

	affinityStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	// Urgent: soft coral box for catalog failures.
	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#fca5a5")).
			Padding(0, 1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd"))

	armedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)
)

// emphasisStyles maps a pairing score emphasis to its style; the weight
// rises with the score.
var emphasisStyles = map[domain.Emphasis]lipgloss.Style{
	domain.EmphasisMuted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#52525b")).
		Faint(true),
	domain.EmphasisNormal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#d4d4d8")),
	domain.EmphasisStrong: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#bbf7d0")).
		Bold(true),
	domain.EmphasisStrongest: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4ade80")).
		Bold(true).
		Underline(true),
}

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Create the [AlertNotifier] first, hand it to the console, then call
// [NewUI] and [UI.Run] (blocking).
type UI struct {
	console *console.Console
	parser  domain.CommandParser
	alerts  *AlertNotifier
	log     *logger.Logger
	program *tea.Program
}

// NewUI creates the display. Call Run() to start.
func NewUI(c *console.Console, parser domain.CommandParser, alerts *AlertNotifier, log *logger.Logger) *UI {
	return &UI{console: c, parser: parser, alerts: alerts, log: log}
}

// Run starts the Bubble Tea event loop and blocks until the user quits or
// ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	m := newModel(ctx, u.console, u.parser, u.log)
	m.onStart = func() tea.Msg {
		u.alerts.attach(u.program.Send)
		return nil
	}

	u.program = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := u.program.Run()
	return err
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// ── Bubble Tea model ─────────────────────────────────────────────

type focus int

const (
	focusMatch focus = iota
	focusRecipe
)

type model struct {
	ctx     context.Context
	console *console.Console
	parser  domain.CommandParser
	log     *logger.Logger
	onStart tea.Cmd

	keys        keyMap
	help        help.Model
	matchInput  textinput.Model
	recipeInput textinput.Model
	detail      viewport.Model
	spinner     spinner.Model
	markdown    *markdownRenderer

	focus    focus
	cursor   int
	alert    *alertMsg
	notice   string // last editor feedback
	showCmds bool   // editor command list open
	lastDoc  string
	width    int
	height   int
}

// Messages.
type doneMsg struct {
	op  string
	err error
}

func newModel(ctx context.Context, c *console.Console, parser domain.CommandParser, log *logger.Logger) model {
	mi := newInput("match> ")
	mi.Placeholder = "type an ingredient"
	mi.Focus()

	ri := newInput("dish> ")
	ri.Placeholder = "search dishes"

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = secondaryStyle

	return model{
		ctx:         ctx,
		console:     c,
		parser:      parser,
		log:         log,
		keys:        defaultKeyMap(),
		help:        help.New(),
		matchInput:  mi,
		recipeInput: ri,
		detail:      viewport.New(80, 12),
		spinner:     sp,
		markdown:    newMarkdownRenderer("dark"),
		focus:       focusMatch,
		width:       80,
		height:      30,
	}
}

func newInput(prompt string) textinput.Model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct.
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.TextStyle = inputTextStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.CharLimit = 500
	ti.Width = 60
	return ti
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.spinner.Tick,
		tea.SetWindowTitle("recipedesk"),
		m.run("load", m.console.Load),
	}
	if m.onStart != nil {
		cmds = append(cmds, m.onStart)
	}
	return tea.Batch(cmds...)
}

// run executes a catalog-bound console call off the event loop.
func (m model) run(op string, f func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return doneMsg{op: op, err: f(ctx)}
	}
}

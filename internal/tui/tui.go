package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/minicasino/internal/console"
	"github.com/lox/minicasino/internal/games"
	"github.com/lox/minicasino/internal/pacing"
)

// TUIModel is the Bubble Tea model for the casino: a scrolling log, a sidebar
// with the session and an input line feeding the console.
type TUIModel struct {
	console *console.Console
	logger  *log.Logger
	pacer   *pacing.Pacer

	// UI components
	logViewport viewport.Model
	actionInput textinput.Model

	// State
	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	// Reveal in progress. Lines are held back until its final frame so the
	// log does not give the result away.
	playback *pacing.Playback
	frames   chan pacing.Frame
	reveal   string
	pending  []string

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// frameMsg carries one reveal frame. playback identifies the reveal it
// belongs to so frames of a skipped reveal are dropped.
type frameMsg struct {
	frame    pacing.Frame
	playback *pacing.Playback
}

// Option configures a TUIModel.
type Option func(*TUIModel)

// WithClock sets the clock reveal frames are paced on.
func WithClock(clock quartz.Clock) Option {
	return func(m *TUIModel) { m.pacer = pacing.New(clock) }
}

// WithTestMode captures log entries for assertions and skips viewport updates.
func WithTestMode() Option {
	return func(m *TUIModel) { m.testMode = true }
}

// DisableColor renders everything without ANSI colors.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// NewTUIModel creates a model driving c.
func NewTUIModel(c *console.Console, logger *log.Logger, opts ...Option) *TUIModel {
	// Sized properly when the first WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 100
	ti.Width = 100
	ti.PromptStyle = lipgloss.NewStyle().Foreground(feltGreen).Bold(true)
	ti.TextStyle = SidebarTextStyle

	m := &TUIModel{
		console:     c,
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		actionInput: ti,
		focusedPane: 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.pacer == nil {
		m.pacer = pacing.New(nil)
	}

	m.addEntry(" Mini Casino ", TitleStyle.Render(" Mini Casino "))
	m.show(c.Execute("help").Lines)
	return m
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case frameMsg:
		if msg.playback != m.playback {
			return m, nil
		}
		return m, m.showFrame(msg.frame)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			m.skipReveal()
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.actionInput.Focus()
			} else {
				m.focusedPane = 0
				m.actionInput.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				input := strings.TrimSpace(m.actionInput.Value())
				m.actionInput.SetValue("")
				cmds = append(cmds, m.Submit(input))
				if m.quitting {
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "pgup", "b":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageUp()
			}
		case "pgdown", "f":
			if m.focusedPane == 0 {
				m.logViewport.HalfPageDown()
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.actionInput, cmd = m.actionInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Submit runs one command line through the console. A reveal still playing
// is cut short first. The returned command delivers the next reveal frame.
func (m *TUIModel) Submit(input string) tea.Cmd {
	m.skipReveal()

	echo := m.console.Prompt() + input
	m.addEntry(echo, HintStyle.Render(echo))
	r := m.console.Execute(input)
	if r.Quit {
		m.quitting = true
	}
	if r.Err != nil {
		m.logger.Debug("Command rejected", "input", input, "error", r.Err)
	}
	if r.Err != nil {
		for _, l := range r.Lines {
			m.addEntry(l, RejectedStyle.Render(l))
		}
		return nil
	}
	if len(r.Frames) == 0 || r.Quit {
		m.show(r.Lines)
		return nil
	}

	m.pending = r.Lines
	m.frames = make(chan pacing.Frame, len(r.Frames))
	frames := m.frames
	m.playback = m.pacer.Start(r.Frames, func(f pacing.Frame) { frames <- f })
	return m.waitForFrame()
}

func (m *TUIModel) waitForFrame() tea.Cmd {
	frames, pb := m.frames, m.playback
	return func() tea.Msg {
		select {
		case f := <-frames:
			return frameMsg{frame: f, playback: pb}
		case <-pb.Done():
			// Frames sent before Done are still buffered.
			select {
			case f := <-frames:
				return frameMsg{frame: f, playback: pb}
			default:
				return nil
			}
		}
	}
}

func (m *TUIModel) showFrame(f pacing.Frame) tea.Cmd {
	m.reveal = f.Text
	if f.Final {
		m.finishReveal()
		return nil
	}
	return m.waitForFrame()
}

func (m *TUIModel) finishReveal() {
	m.playback = nil
	m.frames = nil
	m.reveal = ""
	m.show(m.pending)
	m.pending = nil
}

func (m *TUIModel) skipReveal() {
	if m.playback == nil {
		return
	}
	m.playback.Stop()
	m.finishReveal()
}

// Revealing reports whether a reveal is playing.
func (m *TUIModel) Revealing() bool { return m.playback != nil }

// RevealText is the frame currently shown.
func (m *TUIModel) RevealText() string { return m.reveal }

func (m *TUIModel) show(lines []string) {
	for _, l := range lines {
		m.AddLogEntry(l)
	}
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	actionContent := m.renderActionPane()
	actionHeight := lipgloss.Height(actionContent)
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(feltGreen).
		Width(max(m.width-2, 1)).
		Height(max(actionHeight-2, 1))
	actionPane := actionStyle.Render(actionContent)

	sidebarContent := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-actionHeight-4, 1)

	sidebarPane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimGrey).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	m.logViewport.SetContent(m.renderLogPane())
	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight

	// Start on the latest entries once the viewport has a real size
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dimGrey).
		Width(logWidth).
		Height(paneHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(feltGreen)
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *TUIModel) renderLogPane() string {
	return strings.Join(m.gameLog, "\n")
}

func (m *TUIModel) renderSidebarPane() string {
	s := m.console.Session()
	var content strings.Builder

	content.WriteString(CreditsStyle.Render(fmt.Sprintf("Credits: %d", s.Balance())))
	content.WriteString("\n\n")

	g := m.console.Current()
	if g == "" {
		content.WriteString(HintStyle.Render("In the lobby"))
	} else {
		content.WriteString(TableNameStyle.Render(strings.ToUpper(string(g))))
		content.WriteString("\n")
		content.WriteString(SidebarTextStyle.Render(fmt.Sprintf("Bet:   %d", s.Bet(g))))
		content.WriteString("\n")
		content.WriteString(SidebarTextStyle.Render("State: " + stateOf(m.console, g)))
	}
	content.WriteString("\n\n")

	st := s.Stats()
	content.WriteString(HintStyle.Render(fmt.Sprintf("Played %d  W %d  L %d  P %d",
		st.GamesPlayed, st.Wins, st.Losses, st.Pushes)))
	content.WriteString("\n")
	content.WriteString(HintStyle.Render(fmt.Sprintf("Biggest win %d", st.BiggestWin)))
	content.WriteString("\n")
	content.WriteString(HintStyle.Render("Sound " + onOff(s.SoundEnabled())))

	return content.String()
}

func stateOf(c *console.Console, g games.Game) string {
	s := c.Session()
	switch g {
	case games.GameSlots:
		return s.Slots().State().String()
	case games.GameBlackjack:
		return s.Blackjack().State().String()
	case games.GameRoulette:
		return s.Roulette().State().String()
	case games.GamePoker:
		return s.Poker().State().String()
	case games.GameBaccarat:
		return s.Baccarat().State().String()
	case games.GameDice:
		return s.Dice().State().String()
	}
	return ""
}

func messageOf(c *console.Console, g games.Game) string {
	s := c.Session()
	var t interface{ Message() string }
	switch g {
	case games.GameSlots:
		t = s.Slots()
	case games.GameBlackjack:
		t = s.Blackjack()
	case games.GameRoulette:
		t = s.Roulette()
	case games.GamePoker:
		t = s.Poker()
	case games.GameBaccarat:
		t = s.Baccarat()
	case games.GameDice:
		t = s.Dice()
	default:
		return ""
	}
	return t.Message()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func (m *TUIModel) renderActionPane() string {
	var content strings.Builder

	switch {
	case m.reveal != "":
		content.WriteString(RevealStyle.Render(colorSuits(m.reveal)))
	case m.console.Current() == "":
		content.WriteString(TableNameStyle.Render("Lobby"))
	default:
		content.WriteString(TableNameStyle.Render(messageOf(m.console, m.console.Current())))
	}
	content.WriteString("\n")

	m.actionInput.Prompt = m.console.Prompt()
	if m.console.Current() == "" {
		m.actionInput.Placeholder = "Pick a game: slots, bj, roulette, poker, baccarat, dice"
	} else {
		m.actionInput.Placeholder = "Type a command, 'help' for the list"
	}
	content.WriteString(m.actionInput.View())
	content.WriteString("\n")

	help := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		help = "Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"
	}
	content.WriteString(HintStyle.Render(help))

	return content.String()
}

var redCard = regexp.MustCompile(`(?:10|[2-9AJQK])[♥♦]`)

// colorSuits paints hearts and diamonds red.
func colorSuits(s string) string {
	return redCard.ReplaceAllStringFunc(s, func(c string) string {
		return RedSuitStyle.Render(c)
	})
}

// AddLogEntry adds an entry to the game log
func (m *TUIModel) AddLogEntry(entry string) {
	m.addEntry(entry, colorSuits(entry))
}

func (m *TUIModel) addEntry(raw, styled string) {
	m.gameLog = append(m.gameLog, styled)

	// In test mode, capture the plain entry and skip UI updates
	if m.testMode {
		m.capturedLog = append(m.capturedLog, raw)
		return
	}

	m.logViewport.SetContent(m.renderLogPane())
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// ClearLog clears the game log
func (m *TUIModel) ClearLog() {
	m.gameLog = nil
	m.logViewport.SetContent("")
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

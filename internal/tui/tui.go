package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/rps-game/internal/config"
	"github.com/tatianab/rps-game/internal/engine"
	"github.com/tatianab/rps-game/internal/models"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateSessionOver
	stateError
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	inputErr  string
	gameLog   string
	width     int
	height    int
}

var (
	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	wonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5FD75F")).
			Bold(true)

	lostStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true)

	tiedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	statsStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(eng *engine.Engine) model {
	ti := textinput.New()
	ti.Placeholder = movePrompt(eng)
	ti.Focus()
	ti.CharLimit = 3
	ti.Width = 30

	return model{
		state:     statePlaying,
		engine:    eng,
		textInput: ti,
	}
}

func movePrompt(eng *engine.Engine) string {
	var symbols []string
	for _, m := range eng.Vocabulary().Moves() {
		symbols = append(symbols, m.Symbol())
	}
	return fmt.Sprintf("Your move [%s]...", strings.Join(symbols, "/"))
}

func moveLegend(eng *engine.Engine) string {
	var parts []string
	for _, m := range eng.Vocabulary().Moves() {
		parts = append(parts, fmt.Sprintf("%s=%s", m.Symbol(), m.Name()))
	}
	return strings.Join(parts, "  ")
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state == statePlaying {
				return m.playRound()
			}
			if m.state == stateSessionOver {
				answer := strings.ToLower(strings.TrimSpace(m.textInput.Value()))
				if answer == "y" {
					m.engine.NewSession()
					m.state = statePlaying
					m.gameLog = ""
					m.inputErr = ""
					m.textInput.Reset()
					m.textInput.Placeholder = movePrompt(m.engine)
					m.viewport.SetContent("")
					return m, nil
				}
				// Default is no.
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * 0.72)
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(logWidth, msg.Height-6)
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.gameLog)
	}

	if m.state == statePlaying || m.state == stateSessionOver {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) playRound() (tea.Model, tea.Cmd) {
	raw := m.textInput.Value()
	if raw == "" {
		return m, nil
	}
	m.textInput.Reset()

	round, err := m.engine.PlayRound(raw)
	var invalid *models.InvalidMoveError
	if errors.As(err, &invalid) {
		m.inputErr = fmt.Sprintf("%v — pick one of: %s", invalid, moveLegend(m.engine))
		return m, nil
	}
	if err != nil {
		m.err = err
		m.state = stateError
		return m, nil
	}
	m.inputErr = ""

	m.gameLog += m.renderRound(round)
	if m.engine.State() == engine.SessionOver {
		m.state = stateSessionOver
		m.gameLog += m.renderMatchSummary()
		m.textInput.Placeholder = "Play again? (y/N)"
	}
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
	return m, nil
}

func (m model) renderRound(round *engine.Round) string {
	o := round.Outcome
	header := playerStyle.Render(fmt.Sprintf(" You: %s   Opponent: %s ", o.PlayerMove.Name(), o.OpponentMove.Name()))

	var verdict string
	switch o.Result {
	case models.Won:
		verdict = wonStyle.Render(round.Explanation + " — you win this round.")
	case models.Lost:
		verdict = lostStyle.Render(round.Explanation + " — you lose this round.")
	default:
		verdict = tiedStyle.Render(round.Explanation + " — tied.")
	}

	return header + "\n" + verdict + "\n\n"
}

func (m model) renderMatchSummary() string {
	outcome, ok := m.engine.MatchOutcome()
	if !ok {
		return ""
	}

	var banner string
	if outcome == models.Won {
		banner = wonStyle.Render(fmt.Sprintf("You took the match, %d rounds to %d!",
			m.engine.Stats().Won, m.engine.Stats().Lost))
	} else {
		banner = lostStyle.Render(fmt.Sprintf("The opponent took the match, %d rounds to %d.",
			m.engine.Stats().Lost, m.engine.Stats().Won))
	}

	var dump strings.Builder
	dump.WriteString(titleStyle.Render("SESSION LOG") + "\n")
	for _, e := range m.engine.Log() {
		dump.WriteString(fmt.Sprintf("%s  %-5s  you: %-8s  opponent: %-8s\n",
			e.Timestamp.Format("15:04:05"), e.Result, e.PlayerMove.Name(), e.OpponentMove.Name()))
	}

	return banner + "\n\n" + dump.String() + "\n"
}

func (m model) View() string {
	var s string

	switch m.state {
	case statePlaying, stateSessionOver:
		logView := m.viewport.View()
		statsView := m.renderStats()

		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			logView,
			statsView,
		)

		help := helpStyle.Render(moveLegend(m.engine) + "  (Esc quits)")
		if m.inputErr != "" {
			help = lostStyle.Render(m.inputErr)
		}

		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderStats() string {
	stats := m.engine.Stats()
	pcts := m.engine.Percentages()

	opponent := titleStyle.Render("OPPONENT") + "\n" + m.engine.OpponentName() + "\n\n"
	match := titleStyle.Render("MATCH") + "\n" + fmt.Sprintf("first to %d\n\n", m.engine.WinLimit())

	scoreTitle := titleStyle.Render("SCORE") + "\n"
	var score string
	if stats.Total == 0 {
		score = "no rounds yet\n"
	} else {
		score = fmt.Sprintf("won:  %d (%.2f%%)\nlost: %d (%.2f%%)\ntied: %d (%.2f%%)\ntotal: %d\n",
			stats.Won, pcts.Won, stats.Lost, pcts.Lost, stats.Tied, pcts.Tied, stats.Total)
	}

	content := opponent + match + scoreTitle + score

	statsWidth := int(float64(m.width) * 0.24)
	return statsStyle.Width(statsWidth).Height(m.viewport.Height).Render(content)
}

// Run plays the game with an already-constructed engine.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Start loads the configuration, builds the engine and runs the game.
func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	eng, err := engine.NewEngine(models.Variant(cfg.Variant), cfg.Adaptive, cfg.WinLimit, cfg.Seed)
	if err != nil {
		return err
	}

	return Run(eng)
}

package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/element-mixer/internal/engine"
	"github.com/tatianab/element-mixer/internal/models"
	"github.com/tatianab/element-mixer/internal/placement"
	"github.com/tatianab/element-mixer/internal/session"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateMixing
)

type model struct {
	state     sessionState
	session   *session.Session
	textInput textinput.Model
	viewport  viewport.Model
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	discoveryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7CFC00")).
			Bold(true)

	achievementStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFD700"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func NewModel(s *session.Session) model {
	ti := textinput.New()
	ti.Placeholder = "place Fire, mix 1 2, combine Fire + Water..."
	ti.Focus()
	ti.CharLimit = 156
	ti.Width = 60

	st := s.State()
	return model{
		state:     statePlaying,
		session:   s,
		textInput: ti,
		gameLog:   gameStyle.Bold(true).Render(fmt.Sprintf("Element Mixer (%s mode), profile %q", st.GameMode, s.Profile())) + "\n\n",
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

type mixedMsg struct {
	result engine.Result
	err    error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if m.state != statePlaying {
				return m, nil
			}
			input := m.textInput.Value()
			if strings.TrimSpace(input) == "" {
				return m, nil
			}
			m.textInput.Reset()
			m.appendLog(userStyle.Width(m.logWidth()).Render("> " + input))

			c, err := parseCommand(input)
			if err != nil {
				m.appendLog(helpStyle.Render(err.Error()))
				return m, nil
			}
			if c.kind == cmdQuit {
				return m, tea.Quit
			}
			if c.kind == cmdMix || c.kind == cmdCombine {
				m.state = stateMixing
				return m, m.mix(c)
			}
			m.appendLog(m.run(c))
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(m.logWidth(), msg.Height-6)
		} else {
			m.viewport.Width = m.logWidth()
			m.viewport.Height = msg.Height - 6
		}
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()

	case mixedMsg:
		m.state = statePlaying
		if msg.err != nil {
			m.appendLog(helpStyle.Render(msg.err.Error()))
			return m, nil
		}
		m.appendLog(renderResult(msg.result))
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

// run executes the commands that do not wait on the oracle.
func (m *model) run(c command) string {
	ctx := context.Background()
	g := m.session.Game()

	switch c.kind {
	case cmdPlace:
		p := placement.Point{X: c.x, Y: c.y}
		if !c.hasPos {
			l := g.Layout()
			p = placement.Point{X: (l.Width - l.TokenSize) / 2, Y: (l.Height - l.TokenSize) / 2}
		}
		tok, err := m.session.Place(c.names[0], p)
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("#%d %s %s at (%.0f, %.0f)", tok.Index, tok.Emoji, tok.Name, tok.X, tok.Y)

	case cmdMove:
		tok, err := g.Move(c.indices[0], placement.Point{X: c.x, Y: c.y})
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("#%d moved to (%.0f, %.0f)", tok.Index, tok.X, tok.Y)

	case cmdRemove:
		if err := g.Remove(c.indices[0]); err != nil {
			return err.Error()
		}
		return fmt.Sprintf("#%d removed", c.indices[0])

	case cmdClear:
		g.Clear()
		return "Workspace cleared."

	case cmdUndo:
		last, err := m.session.Undo(ctx)
		if err != nil {
			return err.Error()
		}
		return fmt.Sprintf("Undid %s %s.", last.Created.Emoji, last.Created.Name)

	case cmdReset:
		if err := m.session.Reset(ctx); err != nil {
			return err.Error()
		}
		return "Started over."

	case cmdMode:
		if err := m.session.SetMode(ctx, c.mode); err != nil {
			return err.Error()
		}
		return fmt.Sprintf("Switched to %s mode. Everything starts over.", c.mode)

	case cmdHelp:
		return helpStyle.Render(helpText)
	}
	return ""
}

func (m model) mix(c command) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		var (
			res engine.Result
			err error
		)
		if c.kind == cmdMix {
			res, err = m.session.Mix(ctx, c.indices[0], c.indices[1])
		} else {
			res, err = m.session.Combine(ctx, c.energized, c.names...)
		}
		return mixedMsg{res, err}
	}
}

func renderResult(r engine.Result) string {
	var b strings.Builder
	switch {
	case r.IsNew:
		b.WriteString(discoveryStyle.Render(r.Message()))
		if r.Element.Reasoning != "" {
			b.WriteString("\n" + gameStyle.Render(r.Element.Reasoning))
		}
	default:
		b.WriteString(gameStyle.Render(r.Message()))
	}
	for _, a := range r.Achievements {
		b.WriteString("\n" + achievementStyle.Render(fmt.Sprintf("Achievement unlocked: %s %s, %s", a.Emoji, a.Name, a.Description)))
	}
	if r.Token != nil {
		b.WriteString("\n" + helpStyle.Render(fmt.Sprintf("#%d %s is in the workspace", r.Token.Index, r.Token.Name)))
	}
	return b.String()
}

func (m *model) appendLog(text string) {
	if text == "" {
		return
	}
	m.gameLog += text + "\n\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.65)
}

func (m model) View() string {
	mainView := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewport.View(),
		m.renderState(),
	)
	input := m.textInput.View()
	if m.state == stateMixing {
		input = helpStyle.Render("Mixing...")
	}
	help := helpStyle.Render("Type help for commands, quit to leave.")

	s := lipgloss.JoinVertical(lipgloss.Left,
		mainView,
		"\n"+input,
		"\n"+help,
	)
	return "\n" + s + "\n"
}

func (m model) renderState() string {
	st := m.session.State()
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("ELEMENTS (%d)", st.DiscoveredCount())))
	elements := append([]models.Element(nil), st.Elements...)
	sort.SliceStable(elements, func(i, j int) bool { return elements[i].UnlockOrder < elements[j].UnlockOrder })
	for _, e := range elements {
		fmt.Fprintf(&b, "%s %s\n", glyph(e), e.Name)
	}
	for _, e := range st.EndElements {
		fmt.Fprintf(&b, "%s %s (final)\n", glyph(e), e.Name)
	}

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("WORKSPACE"))
	if len(st.Workspace) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, t := range st.Workspace {
		mark := ""
		if t.Energized {
			mark = " ⚡"
		}
		fmt.Fprintf(&b, "#%d %s %s%s\n", t.Index, glyph(t.Element), t.Name, mark)
	}

	fmt.Fprintf(&b, "\n%s\n", titleStyle.Render("ACHIEVEMENTS"))
	if len(st.Achievements) == 0 {
		b.WriteString("(none yet)\n")
	}
	for _, a := range st.Achievements {
		line := fmt.Sprintf("%s %s", a.Emoji, a.Name)
		if a.Tier > 0 {
			line += fmt.Sprintf(" (tier %d)", a.Tier)
		}
		b.WriteString(line + "\n")
	}

	u := m.session.Game().Usage()
	if !u.HasAPIKey {
		fmt.Fprintf(&b, "\nMixes today: %d/%d", u.DailyCount, u.DailyLimit)
		if u.TokenBalance > 0 {
			fmt.Fprintf(&b, ", tokens: %d", u.TokenBalance)
		}
		b.WriteString("\n")
	}

	stateWidth := int(float64(m.width) * 0.33)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(b.String())
}

func glyph(e models.Element) string {
	if e.Icon != "" {
		return e.Icon
	}
	return e.Emoji
}

func Run(s *session.Session) error {
	p := tea.NewProgram(NewModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

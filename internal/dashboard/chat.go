package dashboard

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/youthpulse/internal/assistant"
)

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

type chatMessage struct {
	role    string
	content string
	time    time.Time
}

var placeholders = map[assistant.Language]string{
	assistant.English: "Ask about youth employment, skills or sports...",
	assistant.Twi:     "Bisa biribi fa mmabun adwuma ho...",
}

// chatModel is the Ask AI page. It shares the dashboard's frame loop for
// the typing indicator instead of running a spinner tick of its own.
type chatModel struct {
	textinput textinput.Model
	viewport  viewport.Model
	renderer  *glamour.TermRenderer
	styles    Styles
	log       *zap.Logger

	asst     *assistant.Assistant
	history  []chatMessage
	lang     assistant.Language
	pending  bool
	sentAt   time.Time
	now      time.Time
	selected int
	width    int
	height   int
}

func newChatModel(a *assistant.Assistant, s Styles, log *zap.Logger) chatModel {
	ti := textinput.New()
	ti.Placeholder = placeholders[assistant.English]
	ti.CharLimit = 280
	ti.Width = 60
	ti.Prompt = "› "

	m := chatModel{
		textinput: ti,
		viewport:  viewport.New(80, 16),
		styles:    s,
		log:       log,
		asst:      a,
		selected:  -1,
		width:     84,
	}
	m.setRenderer()
	m.refresh()
	return m
}

func (m *chatModel) setRenderer() {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.styles.Theme.Markdown),
		glamour.WithWordWrap(max(m.width-8, 20)),
	)
	if err != nil {
		m.log.Warn("markdown renderer unavailable", zap.Error(err))
		r = nil
	}
	m.renderer = r
}

func (m *chatModel) SetSize(w, h int) {
	m.width, m.height = w, h
	m.viewport.Width = max(w-4, 20)
	m.viewport.Height = max(h-10, 4)
	m.textinput.Width = max(w-12, 20)
	m.setRenderer()
	m.refresh()
}

func (m *chatModel) SetStyles(s Styles) {
	m.styles = s
	m.setRenderer()
	m.refresh()
}

func (m *chatModel) Focus() tea.Cmd {
	return m.textinput.Focus()
}

func (m *chatModel) Blur() {
	m.textinput.Blur()
}

// Tick advances the typing indicator clock.
func (m *chatModel) Tick(now time.Time) {
	m.now = now
}

func (m chatModel) Pending() bool { return m.pending }

func (m chatModel) Language() assistant.Language { return m.lang }

// Len counts the messages in the transcript.
func (m chatModel) Len() int { return len(m.history) }

// Value is the current text of the input.
func (m chatModel) Value() string { return m.textinput.Value() }

// Options lists the questions currently offered under the input.
func (m chatModel) Options() []string { return m.options() }

// options are the questions offered under the input: the starter
// suggestions before anything is asked, follow-ups once a reply is shown,
// nothing while a reply is pending.
func (m chatModel) options() []string {
	if m.pending {
		return nil
	}
	switch {
	case len(m.history) == 0:
		sug := m.asst.Suggestions()
		out := make([]string, len(sug))
		for i, s := range sug {
			out[i] = s.Question
		}
		return out
	case len(m.history) >= 2:
		return m.asst.FollowUps()
	}
	return nil
}

// send starts a question. Blank input and input while a reply is pending
// are dropped.
func (m *chatModel) send(question string) tea.Cmd {
	q := strings.TrimSpace(question)
	if q == "" || m.pending {
		return nil
	}
	m.history = append(m.history, chatMessage{role: roleUser, content: q, time: m.now})
	m.pending = true
	m.sentAt = m.now
	m.selected = -1
	m.textinput.SetValue("")
	m.refresh()
	m.log.Info("question sent", zap.String("question", q), zap.String("lang", m.lang.String()))
	return m.asst.Ask(q)
}

func (m chatModel) Update(msg tea.Msg) (chatModel, tea.Cmd) {
	switch msg := msg.(type) {
	case assistant.ReplyMsg:
		m.pending = false
		m.history = append(m.history, chatMessage{role: roleAssistant, content: msg.Text, time: msg.At})
		m.refresh()
		m.log.Debug("reply shown", zap.Bool("matched", msg.Matched))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := m.send(m.textinput.Value())
			return m, cmd
		case "ctrl+l":
			m.lang = m.lang.Toggle()
			m.textinput.Placeholder = placeholders[m.lang]
			return m, nil
		case "up", "down":
			opts := m.options()
			if len(opts) == 0 {
				return m, nil
			}
			if msg.String() == "down" {
				m.selected = (m.selected + 1) % len(opts)
			} else if m.selected <= 0 {
				m.selected = len(opts) - 1
			} else {
				m.selected--
			}
			m.textinput.SetValue(opts[m.selected])
			m.textinput.CursorEnd()
			return m, nil
		case "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		case "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textinput, cmd = m.textinput.Update(msg)
	return m, cmd
}

func (m *chatModel) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m chatModel) renderHistory() string {
	if len(m.history) == 0 {
		return m.styles.Muted.Render("Ask a question about Ghana's youth, or pick one below with ↑/↓.")
	}
	var sb strings.Builder
	for _, msg := range m.history {
		if msg.role == roleUser {
			sb.WriteString(m.styles.User.Render("You") + "\n")
			sb.WriteString(msg.content)
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(m.styles.Bot.Render("YouthPulse AI") + "\n")
		sb.WriteString(m.renderMarkdown(msg.content))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m chatModel) renderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()
	if m.renderer != nil && content != "" {
		if out, err := m.renderer.Render(content); err == nil {
			return out
		}
	}
	return content
}

// typing picks the spinner frame for the time since the question was sent.
func (m chatModel) typing() string {
	sp := spinner.Dot
	i := 0
	if elapsed := m.now.Sub(m.sentAt); elapsed > 0 && sp.FPS > 0 {
		i = int(elapsed/sp.FPS) % len(sp.Frames)
	}
	return m.styles.Bot.Render(sp.Frames[i]) + m.styles.Muted.Render(" YouthPulse AI is typing...")
}

func (m chatModel) View() string {
	var b strings.Builder
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.pending {
		b.WriteString(m.typing())
		b.WriteString("\n")
	}

	opts := m.options()
	for i, q := range opts {
		line := "  " + q
		if i == m.selected {
			line = m.styles.User.Render("› " + q)
		} else {
			line = m.styles.Muted.Render(line)
		}
		b.WriteString(line + "\n")
	}

	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Gold).
		Padding(0, 1).
		Render(m.textinput.View())
	lang := m.styles.Label.Render("[" + m.lang.String() + "]")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, input, " ", lang))
	return b.String()
}

// Package dashboard is the YouthPulse terminal UI: one page per topic, each
// led by a row of animated KPI cards, plus the Ask AI chat page.
package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/youthpulse/internal/assistant"
	"github.com/san-kum/youthpulse/internal/config"
	"github.com/san-kum/youthpulse/internal/counter"
	"github.com/san-kum/youthpulse/internal/dataset"
)

// TickMsg is one frame of the refresh loop.
type TickMsg time.Time

const (
	minCardWidth = 24
	defaultWidth = 100
)

// Model is the root tea.Model. Counters of every page share one FrameQueue
// that is flushed once per TickMsg.
type Model struct {
	cfg      *config.Config
	log      *zap.Logger
	ds       *dataset.Dataset
	registry *Registry
	frames   *counter.FrameQueue
	cards    map[string][]*KPICard

	page     string
	styles   Styles
	chat     chatModel
	width    int
	height   int
	showHelp bool
}

func New(cfg *config.Config, ds *dataset.Dataset, a *assistant.Assistant, log *zap.Logger) (Model, error) {
	if log == nil {
		log = zap.NewNop()
	}
	reg := NewRegistry(ds)
	if _, err := reg.Get(cfg.Page); err != nil {
		return Model{}, err
	}

	frames := counter.NewFrameQueue()
	cards := make(map[string][]*KPICard)
	for _, name := range reg.Names() {
		p, _ := reg.Get(name)
		for _, k := range p.KPIs {
			cards[name] = append(cards[name], NewKPICard(k, frames, cfg.CounterDuration()))
		}
	}

	styles := NewStyles(GetTheme(cfg.Theme))
	m := Model{
		cfg:      cfg,
		log:      log,
		ds:       ds,
		registry: reg,
		frames:   frames,
		cards:    cards,
		page:     cfg.Page,
		styles:   styles,
		chat:     newChatModel(a, styles, log),
		width:    defaultWidth,
	}
	m.bind(m.page)
	if m.page == "ask" {
		m.chat.Focus()
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), textinput.Blink)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.FrameInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Page() string { return m.page }

// Cards returns the KPI cards of the current page.
func (m Model) Cards() []*KPICard { return m.cards[m.page] }

// CardsOf returns the KPI cards of the named page.
func (m Model) CardsOf(page string) []*KPICard { return m.cards[page] }

func (m Model) Theme() Theme { return m.styles.Theme }

func (m Model) Chat() chatModel { return m.chat }

func (m Model) Frames() *counter.FrameQueue { return m.frames }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.chat.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case TickMsg:
		now := time.Time(msg)
		m.frames.Flush(now)
		m.chat.Tick(now)
		return m, m.tick()

	case assistant.ReplyMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	names := m.registry.Names()
	idx := m.registry.Index(m.page)

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m.switchTo(names[(idx+1)%len(names)])
	case "shift+tab":
		return m.switchTo(names[(idx-1+len(names))%len(names)])
	}

	if m.page == "ask" {
		if msg.String() == "esc" {
			return m.switchTo(names[0])
		}
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd
	}

	switch key := msg.String(); key {
	case "q", "esc":
		return m, tea.Quit
	case "t":
		m.setTheme(NextTheme(m.styles.Theme.Name))
	case "r":
		m.bind(m.page)
	case "?":
		m.showHelp = !m.showHelp
	case "left", "h":
		return m.switchTo(names[(idx-1+len(names))%len(names)])
	case "right", "l":
		return m.switchTo(names[(idx+1)%len(names)])
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if n := int(key[0] - '1'); n < len(names) {
				return m.switchTo(names[n])
			}
		}
	}
	return m, nil
}

// switchTo tears down the counters of the page being left and replays the
// count-up on the page entered.
func (m Model) switchTo(name string) (tea.Model, tea.Cmd) {
	if name == m.page {
		return m, nil
	}
	for _, c := range m.cards[m.page] {
		c.Cancel()
	}
	m.log.Debug("page switched", zap.String("from", m.page), zap.String("to", name))
	m.page = name
	m.bind(name)

	if name == "ask" {
		cmd := m.chat.Focus()
		return m, cmd
	}
	m.chat.Blur()
	return m, nil
}

func (m *Model) bind(page string) {
	for _, c := range m.cards[page] {
		c.Bind()
	}
}

func (m *Model) setTheme(t Theme) {
	m.styles = NewStyles(t)
	m.chat.SetStyles(m.styles)
	m.log.Debug("theme changed", zap.String("theme", t.Name))
}

func (m Model) View() string {
	p, err := m.registry.Get(m.page)
	if err != nil {
		return err.Error()
	}

	var s strings.Builder
	s.WriteString(m.renderHeader())
	s.WriteString("\n")
	if p.Name == "ask" {
		s.WriteString(m.chat.View())
	} else {
		s.WriteString(m.renderCards(m.cards[p.Name]))
		if p.Body != nil {
			s.WriteString("\n")
			s.WriteString(m.styles.Separator(m.width))
			s.WriteString("\n")
			s.WriteString(p.Body(m.ds, m.styles, m.width))
		}
	}
	s.WriteString("\n")
	s.WriteString(m.renderFooter())

	if m.showHelp {
		return m.styles.Panel.Render(helpText) + "\n" + s.String()
	}
	return s.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Header.Render("YOUTHPULSE GHANA")
	tabs := make([]string, 0, len(m.registry.Names()))
	for i, name := range m.registry.Names() {
		p, _ := m.registry.Get(name)
		label := fmt.Sprintf("%d %s", i+1, p.Title)
		if name == m.page {
			tabs = append(tabs, m.styles.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderCards lays the KPI cards out in as many rows as the width needs.
func (m Model) renderCards(cards []*KPICard) string {
	if len(cards) == 0 {
		return ""
	}
	perRow := min(max(m.width/(minCardWidth+2), 1), len(cards))
	width := max(m.width/perRow-4, minCardWidth-4)

	var rows []string
	for start := 0; start < len(cards); start += perRow {
		end := min(start+perRow, len(cards))
		views := make([]string, 0, end-start)
		for _, c := range cards[start:end] {
			views = append(views, c.View(m.styles, width))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, views...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderFooter() string {
	if m.page == "ask" {
		return m.styles.KeyHint.Render("enter send  ↑/↓ suggestions  ctrl+l language  pgup/pgdn scroll  esc back  tab next page")
	}
	return m.styles.KeyHint.Render(fmt.Sprintf("tab/←→ pages  1-%d jump  r replay  t theme (%s)  ? help  q quit",
		len(m.registry.Names()), m.styles.Theme.Name))
}

const helpText = `KEYBOARD SHORTCUTS
  Tab / →     Next page
  Shift+Tab   Previous page
  1-7         Jump to page
  R           Replay the KPI count-up
  T           Cycle themes
  ?           Toggle this help
  Q / Esc     Quit
Ask AI
  Enter       Send question
  ↑ / ↓       Pick a suggested question
  Ctrl+L      Toggle EN / TWI
  Esc         Back to overview`

// Run starts the dashboard on the alternate screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

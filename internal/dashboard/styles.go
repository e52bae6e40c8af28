package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Styles are derived from a Theme and rebuilt whenever the theme changes.
type Styles struct {
	Theme Theme

	Header    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Panel     lipgloss.Style
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	KeyHint   lipgloss.Style
	User      lipgloss.Style
	Bot       lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Theme: t,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Gold).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Border),
		Tab: lipgloss.NewStyle().
			Foreground(t.Muted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Gold).
			Underline(true).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Label:   lipgloss.NewStyle().Foreground(t.Muted),
		Value:   lipgloss.NewStyle().Bold(true).Foreground(t.Text),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		KeyHint: lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		User:    lipgloss.NewStyle().Bold(true).Foreground(t.Gold),
		Bot:     lipgloss.NewStyle().Bold(true).Foreground(t.Green),
	}
}

// Card is the bordered box of a KPI card in the given accent colour.
func (s Styles) Card(accent string, width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.Color(accent)).
		Width(width).
		Padding(0, 1)
}

// BoxWithTitle renders content in a panel with a bold title line.
func (s Styles) BoxWithTitle(title, content string, width int) string {
	body := s.Title.Render(title) + "\n" + content
	return s.Panel.Width(width).Render(body)
}

func (s Styles) Separator(width int) string {
	if width < 8 {
		return s.Muted.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	return s.Muted.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}

// Trend renders an up or down arrow with a signed percentage.
func (s Styles) Trend(pct float64) string {
	if pct >= 0 {
		return lipgloss.NewStyle().Foreground(s.Theme.Green).Render(fmt.Sprintf("▲ +%.1f%%", pct))
	}
	return lipgloss.NewStyle().Foreground(s.Theme.Red).Render(fmt.Sprintf("▼ %.1f%%", pct))
}

// ProgressBar renders a fraction in [0, 1] as a bar of the given width.
func (s Styles) ProgressBar(fraction float64, width int) string {
	if math.IsNaN(fraction) {
		fraction = 0
	}
	filled := int(math.Round(fraction * float64(width)))
	filled = min(max(filled, 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	color := s.Theme.Red
	if fraction > 0.8 {
		color = s.Theme.Green
	} else if fraction > 0.4 {
		color = s.Theme.Gold
	}
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// Sparkline renders values as a one-line chart, sampled to fit width.
func (s Styles) Sparkline(values []float64, width int, accent string) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}
	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := max(len(values)/width, 1)
	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := min(max(int(norm*float64(len(chars)-1)), 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return lipgloss.NewStyle().Foreground(s.Theme.Color(accent)).Render(b.String())
}

// BarRows renders one horizontal bar per label, scaled to the largest value.
func (s Styles) BarRows(labels []string, values []float64, barWidth int, accent string, format func(float64) string) string {
	if len(labels) == 0 {
		return ""
	}
	barWidth = max(barWidth, 0)
	labelWidth := 0
	for _, l := range labels {
		labelWidth = max(labelWidth, runewidth.StringWidth(l))
	}
	hi := 0.0
	for _, v := range values {
		hi = math.Max(hi, v)
	}

	bar := lipgloss.NewStyle().Foreground(s.Theme.Color(accent))
	var b strings.Builder
	for i, l := range labels {
		n := 0
		if hi > 0 && !math.IsNaN(values[i]) {
			n = int(math.Round(values[i] / hi * float64(barWidth)))
		}
		n = min(max(n, 0), barWidth)
		b.WriteString(s.Label.Render(runewidth.FillRight(l, labelWidth)))
		b.WriteString(" ")
		b.WriteString(bar.Render(strings.Repeat("█", n)))
		b.WriteString(strings.Repeat(" ", barWidth-n+1))
		b.WriteString(s.Value.Render(format(values[i])))
		if i < len(labels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

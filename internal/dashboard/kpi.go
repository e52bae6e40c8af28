package dashboard

import (
	"strings"
	"time"

	"github.com/san-kum/youthpulse/internal/counter"
)

// KPI describes one headline figure.
type KPI struct {
	Title    string
	Value    float64
	Prefix   string
	Suffix   string
	Decimals int
	Color    string
	// Trend is a signed percentage change; HasTrend hides it when false.
	Trend    float64
	HasTrend bool
	Note     string
}

func trend(pct float64) func(*KPI) {
	return func(k *KPI) {
		k.Trend = pct
		k.HasTrend = true
	}
}

func kpi(title string, value float64, color string, opts ...func(*KPI)) KPI {
	k := KPI{Title: title, Value: value, Color: color}
	for _, opt := range opts {
		opt(&k)
	}
	return k
}

func decimals(n int) func(*KPI) { return func(k *KPI) { k.Decimals = n } }

func prefix(p string) func(*KPI) { return func(k *KPI) { k.Prefix = p } }

func suffix(s string) func(*KPI) { return func(k *KPI) { k.Suffix = s } }

func note(n string) func(*KPI) { return func(k *KPI) { k.Note = n } }

// KPICard pairs a KPI with the counter that animates it.
type KPICard struct {
	KPI
	counter *counter.Counter
}

func NewKPICard(k KPI, s counter.Scheduler, d time.Duration) *KPICard {
	return &KPICard{
		KPI:     k,
		counter: counter.New(s, counter.WithDuration(d), counter.WithDecimals(k.Decimals)),
	}
}

// Bind restarts the count-up from zero.
func (c *KPICard) Bind() { c.counter.Bind(c.Value) }

func (c *KPICard) Cancel() { c.counter.Cancel() }

func (c *KPICard) Counter() *counter.Counter { return c.counter }

// Text is the displayed value with prefix and suffix.
func (c *KPICard) Text() string {
	return c.Prefix + c.counter.String() + c.Suffix
}

func (c *KPICard) View(s Styles, width int) string {
	var b strings.Builder
	b.WriteString(s.Label.Render(c.Title))
	b.WriteString("\n")
	b.WriteString(s.Value.Foreground(s.Theme.Color(c.Color)).Render(c.Text()))
	b.WriteString("\n")
	switch {
	case c.HasTrend:
		b.WriteString(s.Trend(c.Trend))
		if c.Note != "" {
			b.WriteString(" " + s.Muted.Render(c.Note))
		}
	case c.Note != "":
		b.WriteString(s.Muted.Render(c.Note))
	}
	return s.Card(c.Color, width).Render(b.String())
}

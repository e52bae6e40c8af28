package dashboard

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for the dashboard. The five accent colours
// are the ones KPI cards and charts pick from by name.
type Theme struct {
	Name   string
	Gold   lipgloss.Color
	Green  lipgloss.Color
	Red    lipgloss.Color
	Blue   lipgloss.Color
	Purple lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	// Markdown is the glamour standard style used for chat replies.
	Markdown string
}

var (
	ThemeKente = Theme{
		Name:     "kente",
		Gold:     lipgloss.Color("#F59E0B"),
		Green:    lipgloss.Color("#10B981"),
		Red:      lipgloss.Color("#EF4444"),
		Blue:     lipgloss.Color("#3B82F6"),
		Purple:   lipgloss.Color("#8B5CF6"),
		Text:     lipgloss.Color("#F8FAFC"),
		Muted:    lipgloss.Color("#94A3B8"),
		Border:   lipgloss.Color("#334155"),
		Markdown: "dark",
	}

	ThemeVolta = Theme{
		Name:     "volta",
		Gold:     lipgloss.Color("#FBBF24"),
		Green:    lipgloss.Color("#2DD4BF"),
		Red:      lipgloss.Color("#FB7185"),
		Blue:     lipgloss.Color("#38BDF8"),
		Purple:   lipgloss.Color("#A78BFA"),
		Text:     lipgloss.Color("#E0F2FE"),
		Muted:    lipgloss.Color("#5B8BA8"),
		Border:   lipgloss.Color("#1E3A5F"),
		Markdown: "dark",
	}

	ThemeHarmattan = Theme{
		Name:     "harmattan",
		Gold:     lipgloss.Color("#D97706"),
		Green:    lipgloss.Color("#65A30D"),
		Red:      lipgloss.Color("#B91C1C"),
		Blue:     lipgloss.Color("#0369A1"),
		Purple:   lipgloss.Color("#7E22CE"),
		Text:     lipgloss.Color("#1C1917"),
		Muted:    lipgloss.Color("#78716C"),
		Border:   lipgloss.Color("#D6D3D1"),
		Markdown: "light",
	}

	ThemeMono = Theme{
		Name:     "mono",
		Gold:     lipgloss.Color("#FFFFFF"),
		Green:    lipgloss.Color("#DDDDDD"),
		Red:      lipgloss.Color("#BBBBBB"),
		Blue:     lipgloss.Color("#CCCCCC"),
		Purple:   lipgloss.Color("#AAAAAA"),
		Text:     lipgloss.Color("#FFFFFF"),
		Muted:    lipgloss.Color("#777777"),
		Border:   lipgloss.Color("#444444"),
		Markdown: "notty",
	}

	Themes = []Theme{
		ThemeKente,
		ThemeVolta,
		ThemeHarmattan,
		ThemeMono,
	}
)

// GetTheme returns a theme by name, falling back to kente.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeKente
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// Color resolves an accent name (gold, green, red, blue, purple). Unknown
// names get gold.
func (t Theme) Color(name string) lipgloss.Color {
	switch name {
	case "green":
		return t.Green
	case "red":
		return t.Red
	case "blue":
		return t.Blue
	case "purple":
		return t.Purple
	default:
		return t.Gold
	}
}

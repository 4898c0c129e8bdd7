package styles

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Theme represents a color scheme for the application
type Theme struct {
	Name string

	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary lipgloss.Color
	Accent  lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary: lipgloss.Color("#7aa2f7"),
	Accent:  lipgloss.Color("#7dcfff"),

	Success: lipgloss.Color("#9ece6a"),
	Error:   lipgloss.Color("#f7768e"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
}

// Current holds the active theme
var Current = TokyoNight

// MaxWidth is the maximum content width for the app
const MaxWidth = 60

// ContentWidth returns the content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth <= 0 || terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView centers content horizontally if the terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style
	Count      lipgloss.Style

	// Rows
	Row          lipgloss.Style
	RowSelected  lipgloss.Style
	RowChecked   lipgloss.Style
	Disappearing lipgloss.Style
	Checkbox     lipgloss.Style
	CheckboxOn   lipgloss.Style

	Empty lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonDanger  lipgloss.Style

	Modal lipgloss.Style

	Status lipgloss.Style
	Help   help.Styles
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.ForegroundDim)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border)

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		Count: lipgloss.NewStyle().
			Foreground(t.Accent).
			Bold(true),

		Row: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 1),

		RowSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		RowChecked: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true).
			Padding(0, 1),

		Disappearing: lipgloss.NewStyle().
			Foreground(t.Border).
			Faint(true).
			Padding(0, 1),

		Checkbox: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		CheckboxOn: lipgloss.NewStyle().
			Foreground(t.Success),

		Empty: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Italic(true).
			Padding(1, 1),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonFocused: lipgloss.NewStyle().
			Foreground(t.Primary).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),

		ButtonDanger: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Error).
			Padding(0, 2).
			Bold(true),

		Modal: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		Status: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		Help: help.Styles{
			ShortKey:       keyStyle,
			ShortDesc:      descStyle,
			ShortSeparator: sepStyle,
			Ellipsis:       sepStyle,
			FullKey:        keyStyle,
			FullDesc:       descStyle,
			FullSeparator:  sepStyle,
		},
	}
}

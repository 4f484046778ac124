// Package theme provides the two color palettes of the wizard and the
// lipgloss styles derived from them.
package theme

import (
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

type Palette struct {
	Name       string
	Primary    string
	Secondary  string
	Accent     string
	Text       string
	Subtle     string
	Error      string
	Warning    string
	Success    string
	Background string
	Surface    string
	OnPrimary  string
}

func Light() Palette {
	return Palette{
		Name:       "light",
		Primary:    "#1d4ed8",
		Secondary:  "#93c5fd",
		Accent:     "#4338ca",
		Text:       "#1f2937",
		Subtle:     "#6b7280",
		Error:      "#b91c1c",
		Warning:    "#b45309",
		Success:    "#15803d",
		Background: "#f9fafb",
		Surface:    "#ffffff",
		OnPrimary:  "#ffffff",
	}
}

func Dark() Palette {
	return Palette{
		Name:       "dark",
		Primary:    "#93c5fd",
		Secondary:  "#1e3a8a",
		Accent:     "#c7d2fe",
		Text:       "#e5e7eb",
		Subtle:     "#9ca3af",
		Error:      "#fca5a5",
		Warning:    "#fcd34d",
		Success:    "#86efac",
		Background: "#111827",
		Surface:    "#1f2937",
		OnPrimary:  "#0b1220",
	}
}

// For picks the palette matching the dark flag.
func For(dark bool) Palette {
	if dark {
		return Dark()
	}
	return Light()
}

type Styles struct {
	Palette Palette

	Title           lipgloss.Style
	Subtitle        lipgloss.Style
	Normal          lipgloss.Style
	Bold            lipgloss.Style
	Subtle          lipgloss.Style
	Warning         lipgloss.Style
	Error           lipgloss.Style
	Success         lipgloss.Style
	StatusBar       lipgloss.Style
	Key             lipgloss.Style
	SpinnerStyle    lipgloss.Style
	HighlightButton lipgloss.Style
	Button          lipgloss.Style
	SelectedOption  lipgloss.Style
	Card            lipgloss.Style
	StepActive      lipgloss.Style
	StepDone        lipgloss.Style
	StepPending     lipgloss.Style
	LogBox          lipgloss.Style
}

func NewStyles(p Palette) Styles {
	return Styles{
		Palette: p,

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Italic(true),

		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)),

		Bold: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Bold(true),

		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Subtle)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Error)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Warning)),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.OnPrimary)).
			Background(lipgloss.Color(p.Primary)).
			Padding(0, 1),

		Key: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		SpinnerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)),

		HighlightButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.OnPrimary)).
			Background(lipgloss.Color(p.Primary)).
			Padding(0, 2).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Surface)).
			Padding(0, 2),

		SelectedOption: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Accent)).
			Bold(true),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.Secondary)).
			Padding(0, 1),

		StepActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Primary)).
			Bold(true),

		StepDone: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Success)),

		StepPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Subtle)),

		LogBox: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Subtle)).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color(p.Secondary)).
			PaddingLeft(1),
	}
}

func (s Styles) NewProgress(width int) progress.Model {
	prog := progress.New(
		progress.WithGradient(s.Palette.Secondary, s.Palette.Primary),
	)

	prog.Width = width
	prog.ShowPercentage = true
	prog.PercentFormat = "%.0f%%"
	prog.PercentageStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Palette.Text)).
		Bold(true)

	return prog
}

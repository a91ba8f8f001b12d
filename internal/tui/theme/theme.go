// Package theme defines color themes for the lendbook TUI.
package theme

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name         string
	Background   lipgloss.Color // Main app background
	Surface      lipgloss.Color // Card/panel backgrounds
	SurfaceHover lipgloss.Color // Selected row
	Border       lipgloss.Color // Subtle borders
	BorderAccent lipgloss.Color // Focused card border
	TextDim      lipgloss.Color // Hints, disabled
	TextMuted    lipgloss.Color // Labels, metadata
	TextPrimary  lipgloss.Color // Primary content text
	Accent       lipgloss.Color // Active tab, prompts
	AccentBright lipgloss.Color
	Green        lipgloss.Color // Paid, success
	Orange       lipgloss.Color // Pending, warnings
	Red          lipgloss.Color // Errors, unreadable rows
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   lipgloss.Color("#100F0F"),
	Surface:      lipgloss.Color("#1C1B1A"),
	SurfaceHover: lipgloss.Color("#282726"),
	Border:       lipgloss.Color("#403E3C"),
	BorderAccent: lipgloss.Color("#3AA99F"),
	TextDim:      lipgloss.Color("#575653"),
	TextMuted:    lipgloss.Color("#878580"),
	TextPrimary:  lipgloss.Color("#FFFCF0"),
	Accent:       lipgloss.Color("#3AA99F"),
	AccentBright: lipgloss.Color("#5BC8BE"),
	Green:        lipgloss.Color("#879A39"),
	Orange:       lipgloss.Color("#DA702C"),
	Red:          lipgloss.Color("#D14D41"),
}

// TokyoNight is a cool blue/purple theme inspired by Tokyo city lights.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   lipgloss.Color("#1A1B26"),
	Surface:      lipgloss.Color("#24283B"),
	SurfaceHover: lipgloss.Color("#343A52"),
	Border:       lipgloss.Color("#565F89"),
	BorderAccent: lipgloss.Color("#7AA2F7"),
	TextDim:      lipgloss.Color("#565F89"),
	TextMuted:    lipgloss.Color("#A9B1D6"),
	TextPrimary:  lipgloss.Color("#C0CAF5"),
	Accent:       lipgloss.Color("#7AA2F7"),
	AccentBright: lipgloss.Color("#A9C1FF"),
	Green:        lipgloss.Color("#9ECE6A"),
	Orange:       lipgloss.Color("#FF9E64"),
	Red:          lipgloss.Color("#F7768E"),
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:         "terminal",
	Background:   lipgloss.Color("0"),
	Surface:      lipgloss.Color("0"),
	SurfaceHover: lipgloss.Color("8"),
	Border:       lipgloss.Color("8"),
	BorderAccent: lipgloss.Color("6"),
	TextDim:      lipgloss.Color("8"),
	TextMuted:    lipgloss.Color("7"),
	TextPrimary:  lipgloss.Color("15"),
	Accent:       lipgloss.Color("6"),
	AccentBright: lipgloss.Color("14"),
	Green:        lipgloss.Color("2"),
	Orange:       lipgloss.Color("3"),
	Red:          lipgloss.Color("1"),
}

// All available themes.
var All = []Theme{FlexokiDark, TokyoNight, Terminal}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Form returns a huh form theme matching the active palette.
func Form() *huh.Theme {
	t := Active
	ft := huh.ThemeBase()

	ft.Focused.Base = ft.Focused.Base.BorderForeground(t.BorderAccent)
	ft.Focused.Title = ft.Focused.Title.Foreground(t.Accent).Bold(true)
	ft.Focused.NoteTitle = ft.Focused.NoteTitle.Foreground(t.AccentBright).Bold(true)
	ft.Focused.Description = ft.Focused.Description.Foreground(t.TextMuted)
	ft.Focused.ErrorIndicator = ft.Focused.ErrorIndicator.Foreground(t.Red)
	ft.Focused.ErrorMessage = ft.Focused.ErrorMessage.Foreground(t.Red)
	ft.Focused.SelectSelector = ft.Focused.SelectSelector.Foreground(t.Accent)
	ft.Focused.Option = ft.Focused.Option.Foreground(t.TextPrimary)
	ft.Focused.SelectedOption = ft.Focused.SelectedOption.Foreground(t.Green)
	ft.Focused.FocusedButton = ft.Focused.FocusedButton.Foreground(t.Background).Background(t.Accent)
	ft.Focused.BlurredButton = ft.Focused.BlurredButton.Foreground(t.TextMuted).Background(t.SurfaceHover)
	ft.Focused.TextInput.Cursor = ft.Focused.TextInput.Cursor.Foreground(t.AccentBright)
	ft.Focused.TextInput.Prompt = ft.Focused.TextInput.Prompt.Foreground(t.Accent)
	ft.Focused.TextInput.Placeholder = ft.Focused.TextInput.Placeholder.Foreground(t.TextDim)
	ft.Focused.TextInput.Text = ft.Focused.TextInput.Text.Foreground(t.TextPrimary)

	ft.Blurred = ft.Focused
	ft.Blurred.Base = ft.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	ft.Blurred.Title = ft.Blurred.Title.Foreground(t.TextMuted).Bold(false)

	return ft
}

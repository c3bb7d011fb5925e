package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines a color scheme for UI output.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary is the accent for entity and subsystem names.
	Primary lipgloss.TerminalColor
	// Secondary is used for less prominent elements such as timings.
	Secondary lipgloss.TerminalColor
	// Success marks a ready entity.
	Success lipgloss.TerminalColor
	// Warning marks a timed-out attempt.
	Warning lipgloss.TerminalColor
	// Error marks a failed subsystem.
	Error lipgloss.TerminalColor
	// Info is used for informational messages.
	Info lipgloss.TerminalColor
}

var (
	// DarkTheme is optimized for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   lipgloss.Color("39"),
		Secondary: lipgloss.Color("245"),
		Success:   lipgloss.Color("82"),
		Warning:   lipgloss.Color("220"),
		Error:     lipgloss.Color("196"),
		Info:      lipgloss.Color("141"),
	}

	// LightTheme is optimized for light terminal backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   lipgloss.Color("27"),
		Secondary: lipgloss.Color("240"),
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("130"),
		Error:     lipgloss.Color("124"),
		Info:      lipgloss.Color("54"),
	}

	// NoColorTheme renders text with the terminal's default colors.
	NoColorTheme = Theme{
		Name:      "none",
		Primary:   lipgloss.NoColor{},
		Secondary: lipgloss.NoColor{},
		Success:   lipgloss.NoColor{},
		Warning:   lipgloss.NoColor{},
		Error:     lipgloss.NoColor{},
		Info:      lipgloss.NoColor{},
	}

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

// Styles holds the lipgloss styles derived from a theme.
type Styles struct {
	Title   lipgloss.Style
	Name    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// Styles builds the styles for t. The colorless theme also drops bold.
func (t Theme) Styles() Styles {
	base := lipgloss.NewStyle()
	bold := base.Bold(t.Name != NoColorTheme.Name)
	return Styles{
		Title:   bold.Foreground(t.Primary),
		Name:    base.Foreground(t.Primary),
		Muted:   base.Foreground(t.Secondary),
		Success: bold.Foreground(t.Success),
		Warning: bold.Foreground(t.Warning),
		Error:   bold.Foreground(t.Error),
		Info:    base.Foreground(t.Info),
	}
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme; mainly used by tests to restore
// state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme changes the active theme by name ("dark", "light", "none").
// Unknown names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// InitTheme selects the theme from the noColor flag and the NO_COLOR
// environment variable (https://no-color.org/).
func InitTheme(noColor bool) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	if noColor {
		currentTheme = NoColorTheme
		return
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		currentTheme = NoColorTheme
		return
	}
	currentTheme = DarkTheme
}

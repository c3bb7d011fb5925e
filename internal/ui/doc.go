// Package ui provides the color themes used by the command-line output.
// Themes are lipgloss palettes; the NO_COLOR convention and the --no-color
// flag select a colorless theme.
package ui

package ui

import (
	"testing"
)

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name string
		want string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"neon", "dark"},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme().Name; got != tt.want {
			t.Errorf("SetTheme(%q) selected %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInitTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Run("flag disables color", func(t *testing.T) {
		InitTheme(true)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("theme = %q, want none", GetCurrentTheme().Name)
		}
	})

	t.Run("NO_COLOR disables color", func(t *testing.T) {
		t.Setenv("NO_COLOR", "")
		InitTheme(false)
		if GetCurrentTheme().Name != "none" {
			t.Errorf("theme = %q, want none", GetCurrentTheme().Name)
		}
	})
}

func TestNoColorStylesRenderPlainText(t *testing.T) {
	s := NoColorTheme.Styles()
	for name, style := range map[string]func(...string) string{
		"title":   s.Title.Render,
		"success": s.Success.Render,
		"error":   s.Error.Render,
	} {
		if got := style("AIBrain"); got != "AIBrain" {
			t.Errorf("%s style rendered %q, want plain text", name, got)
		}
	}
}

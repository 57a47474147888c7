package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("75")  // Blue
	ColorSecondary = lipgloss.Color("241") // Gray
	ColorSuccess   = lipgloss.Color("42")  // Green
	ColorError     = lipgloss.Color("160") // Red
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorText      = lipgloss.Color("252") // White/Gray

	// Base styles
	StyleTitle   = lipgloss.NewStyle().Foreground(ColorText).Bold(true)
	StyleSubtle  = lipgloss.NewStyle().Foreground(ColorSecondary)
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
)

// Status glyphs for task rows and the win calendar.
const (
	GlyphDone       = "✓"
	GlyphSkipped    = "–"
	GlyphInProgress = "▶"
	GlyphPlanned    = "·"
	GlyphWin        = "★"
	GlyphMiss       = "☆"
)

// StatusGlyph returns the glyph for a task status string.
func StatusGlyph(status string) string {
	switch status {
	case "completed":
		return StyleSuccess.Render(GlyphDone)
	case "skipped":
		return StyleSubtle.Render(GlyphSkipped)
	case "in_progress":
		return StyleWarning.Render(GlyphInProgress)
	}
	return StyleSubtle.Render(GlyphPlanned)
}

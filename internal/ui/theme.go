package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Title, Muted, Accent, Success, Error, Warn, Selected lipgloss.Style

	Border             lipgloss.Border
	BorderColor        lipgloss.TerminalColor
	SymOK, SymFail     string
	SymWarn, SymNote   string
	SymCursor, SymNone string
}

var current = themeFor("classic")

// SetTheme switches to "classic", "neon" or "mono". Unknown names fall back
// to classic.
func SetTheme(name string) {
	current = themeFor(name)
}

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),

			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
			SymOK:       "✔", SymFail: "✖", SymWarn: "!", SymNote: "✎",
			SymCursor: "▸", SymNone: "·",
		}
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Title: plain, Muted: plain, Accent: plain,
			Success: plain, Error: plain, Warn: plain,
			Selected: plain.Reverse(true),

			Border:      lipgloss.ASCIIBorder(),
			BorderColor: lipgloss.NoColor{},
			SymOK:       "ok", SymFail: "error:", SymWarn: "warning:", SymNote: "*",
			SymCursor: ">", SymNone: "-",
		}
	default: // classic
		return Theme{
			Title:    lipgloss.NewStyle().Bold(true),
			Muted:    lipgloss.NewStyle().Faint(true),
			Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			Selected: lipgloss.NewStyle().Bold(true).Reverse(true),

			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
			SymOK:       "✔", SymFail: "✖", SymWarn: "!", SymNote: "✎",
			SymCursor: ">", SymNone: "·",
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }

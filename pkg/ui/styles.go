package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark switching.
var (
	headingColor = lipgloss.AdaptiveColor{
		Light: "#007ACC",
		Dark:  "#3D9EFF",
	}

	mutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#A0A8B0",
	}

	successColor = lipgloss.AdaptiveColor{
		Light: "#28A745",
		Dark:  "#4CDD76",
	}

	warningColor = lipgloss.AdaptiveColor{
		Light: "#FFC107",
		Dark:  "#FFD54F",
	}

	pathColor = lipgloss.AdaptiveColor{
		Light: "#6F42C1",
		Dark:  "#BBA0FF",
	}
)

var (
	// TitleStyle heads each command's pretty output.
	TitleStyle = lipgloss.NewStyle().
			Foreground(headingColor).
			Bold(true)

	// LabelStyle renders field names in detail views.
	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// MutedStyle renders de-emphasized annotations like "(bundled)".
	MutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	// SuccessStyle renders positive outcomes.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	// WarningStyle renders removals and other attention-worthy counts.
	WarningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	// PathStyle renders filesystem paths.
	PathStyle = lipgloss.NewStyle().
			Foreground(pathColor)
)

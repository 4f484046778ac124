package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rostart/rostart/internal/theme"
)

func renderBanner(s theme.Styles) string {
	logo := `
██████╗  ██████╗       ███████╗████████╗ █████╗ ██████╗ ████████╗
██╔══██╗██╔═══██╗      ██╔════╝╚══██╔══╝██╔══██╗██╔══██╗╚══██╔══╝
██████╔╝██║   ██║█████╗███████╗   ██║   ███████║██████╔╝   ██║
██╔══██╗██║   ██║╚════╝╚════██║   ██║   ██╔══██║██╔══██╗   ██║
██║  ██║╚██████╔╝      ███████║   ██║   ██║  ██║██║  ██║   ██║
╚═╝  ╚═╝ ╚═════╝       ╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   `

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Palette.Primary)).
		Bold(true).
		MarginBottom(1)

	return style.Render(logo)
}

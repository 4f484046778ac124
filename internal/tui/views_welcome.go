package tui

import (
	"strings"

	"github.com/rostart/rostart/internal/catalog"
	"github.com/rostart/rostart/internal/locale"
	"github.com/rostart/rostart/internal/theme"
)

func (m Model) viewWelcome(b *locale.Bundle, s theme.Styles) string {
	var out strings.Builder

	out.WriteString(renderBanner(s))
	out.WriteString("\n")
	out.WriteString(s.Title.Render(b.Welcome.Title))
	out.WriteString("\n")
	out.WriteString(s.Subtitle.Render(b.Welcome.Subtitle))
	out.WriteString("\n\n")
	out.WriteString(wrap(s, m.width, b.Welcome.Description))
	out.WriteString("\n\n")

	for _, key := range catalog.Features {
		f := b.Welcome.Features[key]
		out.WriteString(s.Key.Render("• " + f.Title))
		out.WriteString("\n")
		out.WriteString(s.Subtle.Render("  " + f.Desc))
		out.WriteString("\n")
	}

	return out.String()
}

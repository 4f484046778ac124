package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rostart/rostart/internal/host"
	"github.com/rostart/rostart/internal/wizard"
)

// Run drives the wizard until the user quits or the host dismisses it. The
// caller subscribes before any host starts publishing and unsubscribes after
// Run returns.
func Run(ctx context.Context, ctrl *wizard.Controller, sub *host.Subscription) error {
	model := NewModel(ctx, ctrl, sub)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run wizard: %w", err)
	}
	return nil
}

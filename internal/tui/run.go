package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/scopezero/scopezero/internal/engine"
)

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run shows the dashboard until the user quits. When out is not a terminal it
// prints the snapshot as a table instead.
func Run(ctx context.Context, store StateStore, in io.Reader, out io.Writer) error {
	if !IsTerminal(out) {
		return engine.RenderSnapshotAsTable(out, store.Snapshot())
	}

	p := tea.NewProgram(
		NewDashboardModel(ctx, store),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/fakegpt-tui/internal/config"
	"github.com/jeranaias/fakegpt-tui/internal/ui/chat"
	"github.com/jeranaias/fakegpt-tui/internal/ui/styles"
)

// runTUI starts the full-screen client and blocks until it exits.
func (a *app) runTUI(ctx context.Context) error {
	if err := RequiresTTY("run the full-screen client"); err != nil {
		return fmt.Errorf("%w (use 'fakegpt chat' or 'fakegpt send' instead)", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := a.newStore(ctx, a.client())
	defer st.Close()

	theme := styles.NewTheme(a.cfg.UI.Theme, lipgloss.NewRenderer(os.Stdout))
	m := chat.New(chat.Options{
		Store:          st,
		Theme:          theme,
		RevealInterval: a.cfg.UI.RevealInterval,
		Logger:         a.logger,
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	// Config edits are pushed into the running program.
	if a.configPath != "" {
		w, err := config.NewWatcher(a.configPath, config.DefaultDebounce, a.logger)
		if err != nil {
			a.logger.Warn("config watch unavailable", "path", a.configPath, "error", err)
		} else {
			defer w.Close()
			w.Watch(func(cfg *config.Config) {
				p.Send(chat.ConfigReloadedMsg{Config: cfg})
			})
		}
	}

	a.logger.Info("tui started", "backend", a.cfg.Backend.URL)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

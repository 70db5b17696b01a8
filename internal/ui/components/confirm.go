// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/fakegpt-tui/internal/ui/styles"
)

// ConfirmDialog is a yes/no modal. It holds no state of its own; the caller
// decides what is being confirmed.
type ConfirmDialog struct {
	Question string
	// Subject is shown under the question, e.g. the chat title
	Subject string
	Yes     string
	No      string
}

// View renders the dialog centered in a width x height area.
func (d ConfirmDialog) View(theme *styles.Theme, width, height int) string {
	inner := 40
	if width > 0 && width-10 < inner {
		inner = width - 10
	}
	if inner < 16 {
		inner = 16
	}

	lines := []string{theme.ModalTitle.Render(d.Question)}
	if d.Subject != "" {
		lines = append(lines, "", runewidth.Truncate(d.Subject, inner, "…"))
	}
	buttons := theme.ModalButton.Render("[y] "+d.Yes) + "   " + theme.Help.Render("[n] "+d.No)
	lines = append(lines, "", buttons)

	box := theme.Modal.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	if width <= 0 || height <= 0 {
		return box
	}
	return theme.Renderer().Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/fakegpt-tui/internal/model"
	"github.com/jeranaias/fakegpt-tui/internal/ui/styles"
)

// ChatList renders the sidebar of chats.
type ChatList struct {
	Header string
	// Fallback is shown for chats without a title
	Fallback string
	Chats    []model.Chat
	ActiveID string
	Cursor   int
	Focused  bool
}

// View renders the list in a box of width x height cells, borders included.
func (l ChatList) View(theme *styles.Theme, width, height int) string {
	box := theme.Sidebar
	if l.Focused {
		box = theme.SidebarFocused
	}

	// Border and horizontal padding.
	inner := max(4, width-4)
	// Border, header and its margin.
	visible := max(1, height-4)

	var b strings.Builder
	b.WriteString(theme.SidebarHeader.Render(runewidth.Truncate(l.Header, inner, "…")))

	start, end := l.window(visible)
	for i := start; i < end; i++ {
		c := l.Chats[i]
		marker := "  "
		if c.ID == l.ActiveID {
			marker = "● "
		}
		label := runewidth.FillRight(runewidth.Truncate(marker+c.DisplayTitle(l.Fallback), inner, "…"), inner)

		style := theme.SidebarItem
		switch {
		case l.Focused && i == l.Cursor:
			style = theme.SidebarItemSelected
		case c.ID == l.ActiveID:
			style = theme.SidebarItemActive
		}
		b.WriteByte('\n')
		b.WriteString(style.Render(label))
	}

	return box.Width(max(1, width-2)).Height(max(1, height-2)).Render(b.String())
}

// window returns the slice of chats that fits n rows while keeping the
// cursor visible.
func (l ChatList) window(n int) (int, int) {
	total := len(l.Chats)
	if total <= n {
		return 0, total
	}
	start := 0
	if l.Cursor >= n {
		start = l.Cursor - n + 1
	}
	if start+n > total {
		start = total - n
	}
	return start, start + n
}

// ClampCursor keeps cursor within a list of n chats.
func ClampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

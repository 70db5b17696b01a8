// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jeranaias/fakegpt-tui/internal/model"
	"github.com/jeranaias/fakegpt-tui/internal/reveal"
)

// =============================================================================
// MARKDOWN
// =============================================================================

var markdownRenderer *glamour.TermRenderer

// renderMarkdown renders bot text for a color terminal. Plain output and
// rendering failures return the text unchanged.
func renderMarkdown(text string) string {
	if !ColorsEnabled() {
		return text
	}
	if markdownRenderer == nil {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrapWidth()),
		)
		if err != nil {
			return text
		}
		markdownRenderer = r
	}
	out, err := markdownRenderer.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

// =============================================================================
// MESSAGES
// =============================================================================

// printMessage writes one message with its role prefix.
func printMessage(w io.Writer, msg *model.Message) {
	switch {
	case msg.Role == model.RoleUser:
		text := msg.Text
		if msg.Image != nil {
			text = strings.TrimSpace(text + " [image: " + msg.Image.Name() + "]")
		} else if msg.HasRemoteImage {
			text = strings.TrimSpace(text + " [image]")
		}
		fmt.Fprintf(w, "%s %s\n", UserStyle.Render(msg.Role.DisplayName()+":"), text)
	case msg.Failed:
		fmt.Fprintf(w, "%s %s\n", BotStyle.Render(msg.Role.DisplayName()+":"), ErrorStyle.Render(msg.Text))
	default:
		fmt.Fprintf(w, "%s\n%s\n", BotStyle.Render(msg.Role.DisplayName()+":"), renderMarkdown(msg.Text))
	}
}

// typeOut reveals msg through sched, writing each newly visible rune as its
// tick fires. Ticks run on the calling goroutine, so it returns once the whole
// text is out. A nil scheduler writes the text at once.
func typeOut(w io.Writer, sched *reveal.Scheduler, msg *model.Message) {
	if sched == nil {
		fmt.Fprintln(w, msg.Text)
		return
	}
	defer sched.Stop()

	printed := 0
	flush := func() {
		visible := []rune(sched.Visible())
		fmt.Fprint(w, string(visible[printed:]))
		printed = len(visible)
	}

	cmd := sched.Track(msg.ID, msg.Text)
	for cmd != nil {
		tick, ok := cmd().(reveal.TickMsg)
		if !ok {
			break
		}
		cmd = sched.Update(tick)
		flush()
	}
	sched.Skip()
	flush()
	fmt.Fprintln(w)
}

// =============================================================================
// CHAT LISTS
// =============================================================================

// renderChatTable renders chats with 1-based positions, marking activeID.
func renderChatTable(chats []model.Chat, activeID, fallback string) string {
	rows := make([][]string, 0, len(chats))
	for i, c := range chats {
		pos := strconv.Itoa(i + 1)
		if c.ID == activeID {
			pos = "*" + pos
		}
		rows = append(rows, []string{pos, c.ID, c.DisplayTitle(fallback)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(DimStyle).
		Headers("#", "ID", "TITLE").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return TitleStyle.Padding(0, 1)
			}
			if row >= 0 && row < len(chats) && chats[row].ID == activeID {
				return ActiveStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}

// resolveChat accepts a 1-based position or an id.
func resolveChat(chats []model.Chat, ref string) (model.Chat, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(chats) {
			return chats[n-1], nil
		}
	}
	if i := model.IndexOf(chats, ref); i >= 0 {
		return chats[i], nil
	}
	return model.Chat{}, fmt.Errorf("no chat %q", ref)
}

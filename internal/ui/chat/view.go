// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jeranaias/fakegpt-tui/internal/model"
	"github.com/jeranaias/fakegpt-tui/internal/ui/components"
)

// =============================================================================
// LAYOUT
// =============================================================================

// resize recomputes component sizes from the window size.
func (m *Model) resize() {
	m.sidebarWidth = m.width / 4
	if m.sidebarWidth < minSidebarWidth {
		m.sidebarWidth = minSidebarWidth
	}
	if m.sidebarWidth > maxSidebarWidth {
		m.sidebarWidth = maxSidebarWidth
	}
	// Narrow terminals drop the sidebar.
	if m.width < 2*minSidebarWidth+10 {
		m.sidebarWidth = 0
	}

	m.viewport.Width = max(1, m.width-m.sidebarWidth-1)
	m.viewport.Height = max(1, m.mainHeight())

	inputWidth := max(1, m.width-4-lipgloss.Width(m.input.Prompt))
	m.input.Width = inputWidth
	m.pathInput.Width = max(1, m.width-4-lipgloss.Width(m.pathInput.Prompt))
}

// mainHeight is the height of the sidebar and thread row.
func (m *Model) mainHeight() int {
	return m.height - composerHeight - footerHeight
}

// refreshThread re-renders the thread into the viewport. With follow set the
// viewport is scrolled to the newest line.
func (m *Model) refreshThread(follow bool) {
	if m.width == 0 {
		return
	}
	wasAtBottom := m.viewport.AtBottom()
	m.viewport.SetContent(m.renderThread())
	if follow || wasAtBottom {
		m.viewport.GotoBottom()
	}
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the chat view.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.store.Strings().Typing
	}

	if m.mode == ModeConfirm {
		return m.renderConfirm()
	}

	thread := m.viewport.View()
	main := thread
	if m.sidebarWidth > 0 {
		main = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), " ", thread)
	}

	base := lipgloss.JoinVertical(
		lipgloss.Left,
		main,
		m.renderComposer(),
		m.renderStatusBar(),
		m.renderHelp(),
	)

	if m.toasts.HasToasts() {
		stack := components.RenderToastStack(m.theme, m.toasts.Toasts(), m.width)
		return m.overlayToasts(base, stack)
	}
	return base
}

func (m Model) renderSidebar() string {
	strs := m.store.Strings()
	list := components.ChatList{
		Header:   strs.Chats,
		Fallback: strs.NewChat,
		Chats:    m.store.Chats(),
		ActiveID: m.store.ActiveChatID(),
		Cursor:   m.cursor,
		Focused:  m.focus == FocusSidebar,
	}
	return list.View(m.theme, m.sidebarWidth, max(3, m.mainHeight()))
}

func (m Model) renderComposer() string {
	style := m.theme.Composer
	if m.focus == FocusComposer || m.mode == ModeAttach {
		style = m.theme.ComposerFocused
	}

	content := m.input.View()
	if m.mode == ModeAttach {
		content = m.pathInput.View()
	}
	return style.Width(max(1, m.width-2)).Render(content)
}

func (m Model) renderStatusBar() string {
	strs := m.store.Strings()

	title := strs.NewChat
	if chat, ok := m.store.ActiveChat(); ok {
		title = chat.DisplayTitle(strs.NewChat)
	}
	left := title
	if a := m.store.PendingAttachment(); a != nil {
		left += "  " + m.theme.AttachmentChip.Render(strs.Attachment+": "+a.String())
	}

	right := string(m.store.Lang()) + " • " + strs.Theme + ": " + m.theme.Mode
	gap := m.width - 2 - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = ansi.Truncate(left, max(0, m.width-4-lipgloss.Width(right)), "…")
		gap = 1
	}
	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	return m.theme.Help.Render(ansi.Truncate(m.store.Strings().Help, m.width, "…"))
}

func (m Model) renderConfirm() string {
	strs := m.store.Strings()
	var subject string
	if i := model.IndexOf(m.store.Chats(), m.store.PendingDelete()); i >= 0 {
		subject = m.store.Chats()[i].DisplayTitle(strs.NewChat)
	}
	d := components.ConfirmDialog{
		Question: strs.DeleteConfirm,
		Subject:  subject,
		Yes:      strs.Yes,
		No:       strs.No,
	}
	return d.View(m.theme, m.width, m.height)
}

// =============================================================================
// THREAD
// =============================================================================

func (m *Model) renderThread() string {
	strs := m.store.Strings()
	msgs := m.store.Messages()
	width := m.viewport.Width

	var parts []string
	if len(msgs) == 0 && !m.busy() {
		parts = append(parts, m.theme.Welcome.Render(strs.Welcome))
	}
	for _, msg := range msgs {
		parts = append(parts, m.renderMessage(msg, width))
	}
	if m.busy() {
		parts = append(parts, m.theme.Typing.Render(m.spinner.View()+" "+strs.Typing))
	}
	return strings.Join(parts, "\n")
}

// bubbleWidth is the widest a bubble may be, borders included.
func bubbleWidth(width int) int {
	w := width * 3 / 4
	if w < 20 {
		w = min(20, width)
	}
	return max(4, w)
}

func (m *Model) renderMessage(msg *model.Message, width int) string {
	maxWidth := bubbleWidth(width)
	// Border and padding take four cells.
	textWidth := max(1, maxWidth-4)

	label := m.theme.RoleLabel.Render(msg.Role.DisplayName())

	if msg.Role == model.RoleUser {
		var body []string
		if msg.Text != "" {
			body = append(body, wrap(msg.Text, textWidth))
		}
		switch {
		case msg.Image != nil:
			body = append(body, components.Thumbnail(m.theme, msg.Image, min(components.ThumbnailCols, textWidth), components.ThumbnailRows))
		case msg.HasRemoteImage:
			body = append(body, components.ImageLabel(m.theme, ""))
		}
		bubble := m.theme.UserBubble.Render(strings.Join(body, "\n"))
		block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
	}

	text := m.reveal.VisibleFor(msg)
	var bubble string
	switch {
	case msg.Failed:
		bubble = m.theme.FailedBubble.Render(wrap(text, textWidth))
	case m.reveal.Running() && m.reveal.ID() == msg.ID:
		bubble = m.theme.BotBubble.Render(wrap(text, textWidth))
	default:
		md := m.markdown.Render(msg.ID, text, m.theme.GlamourStyle(), m.theme.ColorProfile, textWidth)
		bubble = m.theme.BotBubble.Render(md)
	}
	if msg.HasRemoteImage {
		bubble = lipgloss.JoinVertical(lipgloss.Left, bubble, components.ImageLabel(m.theme, ""))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, bubble)
}

// wrap soft-wraps text to width cells, breaking long words.
func wrap(text string, width int) string {
	return ansi.Wrap(text, width, "")
}

// =============================================================================
// OVERLAYS
// =============================================================================

// overlayToasts draws the toast stack over the bottom-right of the main area,
// just above the composer.
func (m Model) overlayToasts(baseView, toastView string) string {
	baseLines := strings.Split(baseView, "\n")
	toastLines := strings.Split(toastView, "\n")

	startRow := m.mainHeight() - len(toastLines)
	if startRow < 0 {
		startRow = 0
	}

	for i, toastLine := range toastLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}
		toastWidth := lipgloss.Width(strings.TrimLeft(toastLine, " "))
		if toastWidth == 0 {
			continue
		}
		cut := max(0, m.width-toastWidth-1)
		baseLine := ansi.Truncate(baseLines[row], cut, "")
		if pad := cut - lipgloss.Width(baseLine); pad > 0 {
			baseLine += strings.Repeat(" ", pad)
		}
		baseLines[row] = baseLine + " " + strings.TrimLeft(toastLine, " ")
	}
	return strings.Join(baseLines, "\n")
}

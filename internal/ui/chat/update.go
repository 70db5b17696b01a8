// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/config"
	"github.com/jeranaias/fakegpt-tui/internal/i18n"
	"github.com/jeranaias/fakegpt-tui/internal/model"
	"github.com/jeranaias/fakegpt-tui/internal/reveal"
	"github.com/jeranaias/fakegpt-tui/internal/store"
	"github.com/jeranaias/fakegpt-tui/internal/ui/components"
	"github.com/jeranaias/fakegpt-tui/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.refreshThread(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case store.ChatsLoadedMsg, store.ChatCreatedMsg, store.MessagesLoadedMsg,
		store.ChatDeletedMsg, store.MessageSentMsg:
		return m, m.afterStore(m.store.Update(msg))

	case store.NoticeMsg:
		m.toasts.AddError(msg.Text)
		return m, m.startToastTick()

	case reveal.TickMsg:
		cmd := m.reveal.Update(msg)
		m.refreshThread(true)
		return m, cmd

	case spinner.TickMsg:
		if !m.busy() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.refreshThread(false)
		return m, cmd

	case components.ToastTickMsg:
		if m.toasts.Tick() {
			return m, components.ToastTickCmd()
		}
		m.toastTicking = false
		return m, nil

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return m, nil
	}

	// Cursor blink and other input internals.
	var cmd tea.Cmd
	if m.mode == ModeAttach {
		m.pathInput, cmd = m.pathInput.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

// afterStore runs after every store transition: it re-syncs the composer and
// the cursor, lets the reveal follow the thread and redraws.
func (m *Model) afterStore(cmd tea.Cmd) tea.Cmd {
	m.syncInput()
	m.cursor = components.ClampCursor(m.cursor, len(m.store.Chats()))
	if m.mode == ModeConfirm && m.store.PendingDelete() == "" {
		m.mode = ModeNormal
	}

	cmds := []tea.Cmd{cmd, m.reveal.Follow(m.store.Messages()), m.startSpinner()}
	m.refreshThread(true)
	return tea.Batch(cmds...)
}

// syncInput mirrors the store draft into the composer. The two only differ
// after the store clears a dispatched draft.
func (m *Model) syncInput() {
	if text := m.store.PendingText(); m.input.Value() != text {
		m.input.SetValue(text)
		m.input.CursorEnd()
	}
}

func (m *Model) busy() bool {
	return m.store.Loading() || m.store.Creating()
}

func (m *Model) startSpinner() tea.Cmd {
	if !m.busy() || m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) startToastTick() tea.Cmd {
	if m.toastTicking {
		return nil
	}
	m.toastTicking = true
	return components.ToastTickCmd()
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeAttach:
		return m.handleAttachKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NewChat):
		return m, m.afterStore(m.store.NewChat())

	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		m.requestDelete(m.store.ActiveChatID())
		return m, nil

	case key.Matches(msg, m.keys.Attach):
		m.mode = ModeAttach
		m.pathInput.Reset()
		m.input.Blur()
		return m, m.pathInput.Focus()

	case key.Matches(msg, m.keys.Detach):
		m.store.RemoveAttachment()
		return m, nil

	case key.Matches(msg, m.keys.Language):
		m.setLang(i18n.Next(m.store.Lang()))
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.setTheme(m.theme.Toggle())
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLastReply()

	case key.Matches(msg, m.keys.Skip):
		m.reveal.Skip()
		m.refreshThread(true)
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	if m.focus == FocusSidebar {
		return m.handleSidebarKey(msg)
	}
	return m.handleComposerKey(msg)
}

func (m Model) handleComposerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		m.store.SetText(m.input.Value())
		if !m.store.CanSend() {
			return m, nil
		}
		return m, m.afterStore(m.store.Send())
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.store.SetText(m.input.Value())
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chats := m.store.Chats()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = components.ClampCursor(m.cursor-1, len(chats))
	case key.Matches(msg, m.keys.Down):
		m.cursor = components.ClampCursor(m.cursor+1, len(chats))
	case key.Matches(msg, m.keys.Submit):
		if len(chats) == 0 {
			return m, nil
		}
		return m, m.afterStore(m.store.SelectChat(chats[m.cursor].ID))
	case key.Matches(msg, m.keys.DeleteItem):
		if len(chats) > 0 {
			m.requestDelete(chats[m.cursor].ID)
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = ModeNormal
		return m, m.afterStore(m.store.ConfirmDelete())
	case key.Matches(msg, m.keys.Deny):
		m.mode = ModeNormal
		m.store.CancelDelete()
	}
	return m, nil
}

func (m Model) handleAttachKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.leaveAttach()
		return m, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(m.pathInput.Value())
		m.leaveAttach()
		if path == "" {
			return m, nil
		}
		a, err := attachment.Load(path)
		if err != nil {
			m.logger.Warn("attach failed", "path", path, "error", err)
			m.toasts.AddError(fmt.Sprintf("%s: %v", m.store.Strings().Attachment, err))
			return m, m.startToastTick()
		}
		m.store.Attach(a)
		return m, nil
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

func (m *Model) leaveAttach() {
	m.mode = ModeNormal
	m.pathInput.Blur()
	if m.focus == FocusComposer {
		m.input.Focus()
	}
}

// =============================================================================
// ACTIONS
// =============================================================================

func (m *Model) toggleFocus() {
	if m.focus == FocusComposer {
		m.focus = FocusSidebar
		m.input.Blur()
		if i := model.IndexOf(m.store.Chats(), m.store.ActiveChatID()); i >= 0 {
			m.cursor = i
		}
		return
	}
	m.focus = FocusComposer
	m.input.Focus()
}

func (m *Model) requestDelete(id string) {
	if m.store.RequestDelete(id) {
		m.mode = ModeConfirm
	}
}

func (m *Model) copyLastReply() tea.Cmd {
	last := model.LastBot(m.store.Messages())
	if last == nil {
		return nil
	}
	if err := m.clipboard(last.Text); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.toasts.AddError(err.Error())
	} else {
		m.toasts.AddInfo(m.store.Strings().Copied)
	}
	return m.startToastTick()
}

func (m *Model) setLang(lang i18n.Lang) {
	m.store.SetLang(lang)
	strs := m.store.Strings()
	m.input.Placeholder = strs.Placeholder
	m.pathInput.Prompt = strs.AttachPrompt + " "
	m.refreshThread(false)
}

func (m *Model) setTheme(t *styles.Theme) {
	m.theme = t
	m.spinner.Style = t.Typing
	m.markdown.Forget()
	m.refreshThread(false)
}

// applyConfig takes the presentation settings of a reloaded config. Backend
// settings need a restart.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	if lang := i18n.Lang(cfg.UI.Language); lang != m.store.Lang() && i18n.IsSupported(cfg.UI.Language) {
		m.setLang(lang)
	}
	if cfg.UI.Theme != config.ThemeAuto && cfg.UI.Theme != m.theme.Mode {
		m.setTheme(styles.NewTheme(cfg.UI.Theme, m.theme.Renderer()))
	}
	m.reveal.SetInterval(cfg.UI.RevealInterval)
	m.logger.Info("config reloaded", "language", cfg.UI.Language, "theme", cfg.UI.Theme)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/backend"
	"github.com/jeranaias/fakegpt-tui/internal/config"
	"github.com/jeranaias/fakegpt-tui/internal/i18n"
	"github.com/jeranaias/fakegpt-tui/internal/logging"
	"github.com/jeranaias/fakegpt-tui/internal/model"
	"github.com/jeranaias/fakegpt-tui/internal/store"
	"github.com/jeranaias/fakegpt-tui/internal/ui/styles"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

type fakeAPI struct {
	chats   []model.Chat
	history map[string][]string
	nextID  int
	sendErr error
	delErr  error
}

func (f *fakeAPI) ListChats(ctx context.Context) ([]model.Chat, error) {
	return append([]model.Chat(nil), f.chats...), nil
}

func (f *fakeAPI) CreateChat(ctx context.Context) (model.Chat, error) {
	f.nextID++
	c := model.Chat{ID: fmt.Sprintf("new-%d", f.nextID)}
	f.chats = append(f.chats, c)
	return c, nil
}

func (f *fakeAPI) GetMessages(ctx context.Context, chatID string) ([]*model.Message, error) {
	var msgs []*model.Message
	for _, text := range f.history[chatID] {
		msgs = append(msgs, model.NewBotMessage(text))
	}
	return msgs, nil
}

func (f *fakeAPI) DeleteChat(ctx context.Context, chatID string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.chats = model.RemoveChat(f.chats, chatID)
	return nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, chatID, text string, att *attachment.Attachment) (backend.Reply, error) {
	if f.sendErr != nil {
		return backend.Reply{}, f.sendErr
	}
	return backend.Reply{Response: "echo: " + text}, nil
}

func testTheme() *styles.Theme {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return styles.NewTheme(styles.ModeDark, r)
}

func newTestModel(t *testing.T, api *fakeAPI, lang i18n.Lang) (Model, *[]string) {
	t.Helper()
	st := store.New(api, store.Options{Logger: logging.Discard(), Lang: lang})
	var copied []string
	m := New(Options{
		Store:          st,
		Theme:          testTheme(),
		RevealInterval: time.Millisecond,
		Logger:         logging.Discard(),
		Clipboard: func(s string) error {
			copied = append(copied, s)
			return nil
		},
	})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return run(t, m, m.Init()), &copied
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and runs whatever store work it started.
func press(t *testing.T, m Model, k tea.KeyMsg) Model {
	t.Helper()
	next, cmd := m.Update(k)
	return run(t, next.(Model), cmd)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// run executes cmd and feeds store results back into the model. Timer
// messages are dropped so the test controls the reveal.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(t, steps, 500, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case store.ChatsLoadedMsg, store.ChatCreatedMsg, store.MessagesLoadedMsg,
			store.ChatDeletedMsg, store.MessageSentMsg, store.NoticeMsg:
			next, follow := m.Update(msg)
			m = next.(Model)
			queue = append(queue, follow)
		}
	}
	return m
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

// =============================================================================
// TESTS
// =============================================================================

func TestInit_LoadsChats(t *testing.T) {
	api := &fakeAPI{chats: []model.Chat{{ID: "a", Title: "Weather"}}}
	m, _ := newTestModel(t, api, i18n.English)

	assert.Equal(t, []model.Chat{{ID: "a", Title: "Weather"}}, m.Store().Chats())
	view := m.View()
	assert.Contains(t, view, "Weather")
	assert.Contains(t, view, "Hello! How can I help you?")
}

func TestSend_CreatesChatAndReveals(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newTestModel(t, api, i18n.English)

	m = typeText(t, m, "hello")
	m = press(t, m, keyEnter)

	st := m.Store()
	require.Equal(t, "new-1", st.ActiveChatID())
	msgs := st.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "echo: hello", msgs[1].Text)
	assert.Empty(t, st.PendingText())
	assert.Empty(t, m.input.Value(), "composer cleared with the draft")

	// The reply is revealed character by character.
	assert.True(t, m.Reveal().Running())
	assert.Equal(t, msgs[1].ID, m.Reveal().ID())
	assert.Empty(t, m.Reveal().Visible())

	m = update(t, m, keyEsc)
	assert.Equal(t, "echo: hello", m.Reveal().VisibleFor(msgs[1]))
	assert.Contains(t, m.View(), "echo: hello")
}

func TestSend_EmptyDraftIgnored(t *testing.T) {
	api := &fakeAPI{}
	m, _ := newTestModel(t, api, i18n.English)

	m = typeText(t, m, "   ")
	m = press(t, m, keyEnter)
	assert.Empty(t, m.Store().Messages())
	assert.Empty(t, api.chats, "no chat created")
}

func TestSend_FailureShowsErrorReply(t *testing.T) {
	api := &fakeAPI{sendErr: errors.New("boom")}
	m, _ := newTestModel(t, api, i18n.Polish)

	m = typeText(t, m, "hej")
	m = press(t, m, keyEnter)

	last := model.Last(m.Store().Messages())
	require.NotNil(t, last)
	assert.True(t, last.Failed)
	assert.Equal(t, i18n.ErrorMarker+"Błąd połączenia", last.Text)
}

func TestSidebar_SelectAndDelete(t *testing.T) {
	api := &fakeAPI{
		chats:   []model.Chat{{ID: "a", Title: "First"}, {ID: "b", Title: "Second"}},
		history: map[string][]string{"b": {"old reply"}},
	}
	m, _ := newTestModel(t, api, i18n.English)

	m = update(t, m, keyTab)
	require.Equal(t, FocusSidebar, m.Focus())
	m = update(t, m, keyDown)
	assert.Equal(t, 1, m.Cursor())

	m = press(t, m, keyEnter)
	assert.Equal(t, "b", m.Store().ActiveChatID())
	require.Len(t, m.Store().Messages(), 1)

	m = update(t, m, runeKey('d'))
	require.Equal(t, ModeConfirm, m.Mode())
	assert.Contains(t, m.View(), "Delete this chat?")

	m = press(t, m, runeKey('y'))
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Empty(t, m.Store().ActiveChatID())
	assert.Equal(t, []model.Chat{{ID: "a", Title: "First"}}, m.Store().Chats())
	assert.Equal(t, 0, m.Cursor())
}

func TestDelete_CancelKeepsChat(t *testing.T) {
	api := &fakeAPI{chats: []model.Chat{{ID: "a"}}}
	m, _ := newTestModel(t, api, i18n.English)

	m = update(t, m, keyTab)
	m = update(t, m, runeKey('d'))
	require.Equal(t, ModeConfirm, m.Mode())

	m = update(t, m, runeKey('n'))
	assert.Equal(t, ModeNormal, m.Mode())
	assert.Empty(t, m.Store().PendingDelete())
	assert.Len(t, m.Store().Chats(), 1)
}

func TestDelete_FailureShowsToast(t *testing.T) {
	api := &fakeAPI{chats: []model.Chat{{ID: "a"}}, delErr: errors.New("down")}
	m, _ := newTestModel(t, api, i18n.English)

	m = update(t, m, keyTab)
	m = update(t, m, runeKey('d'))
	m = press(t, m, runeKey('y'))

	assert.Len(t, m.Store().Chats(), 1)
	toasts := m.Toasts()
	require.Len(t, toasts, 1)
	assert.Equal(t, "Connection error", toasts[0].Message)
	assert.Contains(t, m.View(), "Connection error")
}

func TestLanguageCycle(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{}, i18n.Polish)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	assert.Equal(t, i18n.English, m.Store().Lang())
	assert.Equal(t, "Type a message...", m.input.Placeholder)
	assert.Contains(t, m.View(), "Your Chats")
}

func TestThemeToggle(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{}, i18n.English)
	require.True(t, m.Theme().IsDark)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.False(t, m.Theme().IsDark)
}

func TestCopyLastReply(t *testing.T) {
	m, copied := newTestModel(t, &fakeAPI{}, i18n.English)
	m = typeText(t, m, "ping")
	m = press(t, m, keyEnter)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, []string{"echo: ping"}, *copied)
	require.Len(t, m.Toasts(), 1)
	assert.Equal(t, "Reply copied", m.Toasts()[0].Message)
}

func TestAttach(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	path := filepath.Join(dir, "pic.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	m, _ := newTestModel(t, &fakeAPI{}, i18n.English)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	require.Equal(t, ModeAttach, m.Mode())
	m = typeText(t, m, path)
	m = update(t, m, keyEnter)

	assert.Equal(t, ModeNormal, m.Mode())
	require.NotNil(t, m.Store().PendingAttachment())
	assert.Equal(t, "pic.png", m.Store().PendingAttachment().Name)
	assert.True(t, m.Store().CanSend(), "attachment alone can be sent")

	// Attachment-only send shows the thumbnail in the thread.
	m = press(t, m, keyEnter)
	msgs := m.Store().Messages()
	require.Len(t, msgs, 2)
	assert.True(t, msgs[0].HasImage())
	assert.Nil(t, m.Store().PendingAttachment())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlO})
	m = typeText(t, m, filepath.Join(dir, "missing.png"))
	m = update(t, m, keyEnter)
	assert.Nil(t, m.Store().PendingAttachment())
	assert.Len(t, m.Toasts(), 1)
}

func TestDetach(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{}, i18n.English)
	a, err := attachment.New("a.txt", []byte("data"))
	require.NoError(t, err)
	m.Store().Attach(a)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Nil(t, m.Store().PendingAttachment())
}

func TestConfigReloaded(t *testing.T) {
	m, _ := newTestModel(t, &fakeAPI{}, i18n.Polish)

	cfg := config.Default()
	cfg.UI.Language = "uk"
	cfg.UI.Theme = config.ThemeLight
	cfg.UI.RevealInterval = 5 * time.Millisecond

	m = update(t, m, ConfigReloadedMsg{Config: cfg})
	assert.Equal(t, i18n.Ukrainian, m.Store().Lang())
	assert.False(t, m.Theme().IsDark)
	assert.Equal(t, 5*time.Millisecond, m.Reveal().Interval())
}

func TestView_BeforeResize(t *testing.T) {
	st := store.New(&fakeAPI{}, store.Options{Logger: logging.Discard(), Lang: i18n.English})
	m := New(Options{Store: st, Theme: testTheme()})
	assert.Equal(t, "Thinking...", m.View())
}

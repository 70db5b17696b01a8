// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/backend"
	"github.com/jeranaias/fakegpt-tui/internal/i18n"
	"github.com/jeranaias/fakegpt-tui/internal/model"
)

var errBoom = errors.New("boom")

func newTestStore(t *testing.T, api *fakeAPI) *Store {
	t.Helper()
	s := New(api, Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Lang:   i18n.English,
	})
	t.Cleanup(s.Close)
	return s
}

// loaded returns a store whose chat list has been fetched.
func loaded(t *testing.T, api *fakeAPI) *Store {
	t.Helper()
	s := newTestStore(t, api)
	Drain(s, s.Init())
	return s
}

func mustAttachment(t *testing.T, name string) *attachment.Attachment {
	t.Helper()
	a, err := attachment.New(name, []byte("content of "+name))
	require.NoError(t, err)
	return a
}

func texts(msgs []*model.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func chatIDs(chats []model.Chat) []string {
	out := make([]string, 0, len(chats))
	for _, c := range chats {
		out = append(out, c.ID)
	}
	return out
}

// =============================================================================
// SEND GUARD TESTS
// =============================================================================

func TestSend_EmptyDraftIsNoop(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))
	calls := api.total()

	for _, text := range []string{"", "   ", "\n\t"} {
		s.SetText(text)
		assert.False(t, s.CanSend())
		assert.Nil(t, s.Send())
	}

	assert.Equal(t, calls, api.total())
	assert.Equal(t, []string{"hello from a"}, texts(s.Messages()))
	assert.False(t, s.Loading())
}

func TestSend_RejectedWhileLoading(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	s.SetText("first")
	cmd := s.Send()
	require.NotNil(t, cmd)
	assert.True(t, s.Loading())

	s.SetText("second")
	assert.False(t, s.CanSend())
	assert.Nil(t, s.Send())
	assert.Len(t, s.Messages(), 2)

	s.Update(cmd())
	assert.False(t, s.Loading())
	assert.Equal(t, 1, api.calls["send"])
	assert.Equal(t, "second", s.PendingText())
}

func TestSend_AttachmentOnlyIsAllowed(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	s.Attach(mustAttachment(t, "a.png"))
	assert.True(t, s.CanSend())
	Drain(s, s.Send())

	require.Len(t, api.sent, 1)
	assert.Equal(t, "", api.sent[0].text)
	assert.Equal(t, "a.png", api.sent[0].att.Name)
	assert.Nil(t, s.PendingAttachment())
}

// =============================================================================
// SEND FLOW TESTS
// =============================================================================

func TestSend_WithoutChatCreatesOne(t *testing.T) {
	api := newFakeAPI()
	api.reply = &backend.Reply{Response: "Hi there"}
	s := loaded(t, api)
	require.Empty(t, s.Chats())

	s.SetText("Hello")
	created := s.Send()
	require.NotNil(t, created)
	assert.True(t, s.Creating())
	assert.False(t, s.CanSend())

	send := s.Update(created())
	require.NotNil(t, send)
	require.Len(t, s.Chats(), 1)
	assert.Equal(t, s.Chats()[0].ID, s.ActiveChatID())
	assert.Equal(t, []string{"Hello"}, texts(s.Messages()))
	assert.Equal(t, model.RoleUser, s.Messages()[0].Role)
	assert.True(t, s.Loading())
	assert.Empty(t, s.PendingText())

	refresh := s.Update(send())
	assert.False(t, s.Loading())
	assert.Equal(t, []string{"Hello", "Hi there"}, texts(s.Messages()))
	assert.True(t, s.Messages()[1].IsBot())
	assert.False(t, s.Messages()[1].Failed)

	require.NotNil(t, refresh)
	s.Update(refresh())
	assert.Len(t, s.Chats(), 1)
	assert.Equal(t, 1, api.calls["create"])
	assert.Equal(t, 1, api.calls["send"])
}

func TestSend_CreateFailureAbandonsSend(t *testing.T) {
	api := newFakeAPI()
	api.createErr = errBoom
	s := loaded(t, api)

	s.SetText("Hello")
	notices := Drain(s, s.Send())

	require.Len(t, notices, 1)
	notice, ok := notices[0].(NoticeMsg)
	require.True(t, ok)
	assert.ErrorIs(t, notice.Err, errBoom)
	assert.Equal(t, "Connection error", notice.Text)

	assert.Zero(t, api.calls["send"])
	assert.Empty(t, s.Chats())
	assert.Empty(t, s.ActiveChatID())
	assert.Empty(t, s.Messages())
	assert.Equal(t, "Hello", s.PendingText())
	assert.False(t, s.Creating())
	assert.True(t, s.CanSend())
}

func TestSend_FailureAppendsErrorMarker(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	api.sendErr = errBoom
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))
	lists := api.calls["list"]

	s.SetText("Hello")
	notices := Drain(s, s.Send())

	assert.Empty(t, notices)
	assert.False(t, s.Loading())
	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Hello", msgs[1].Text)
	assert.True(t, msgs[2].IsBot())
	assert.True(t, msgs[2].Failed)
	assert.Equal(t, "⚠️ Connection error", msgs[2].Text)
	assert.Equal(t, lists, api.calls["list"])
}

func TestSend_ErrorMarkerFollowsLanguage(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	api.sendErr = errBoom
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	s.SetLang(i18n.Polish)
	s.SetText("Cześć")
	Drain(s, s.Send())

	assert.Equal(t, i18n.Lookup(i18n.Polish).ErrorReply(), model.Last(s.Messages()).Text)
}

func TestSend_RefreshFailureDoesNotAffectSend(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	api.listErr = errBoom
	s.SetText("Hello")
	notices := Drain(s, s.Send())

	assert.Empty(t, notices)
	assert.False(t, s.Loading())
	assert.Equal(t, "echo: Hello", model.Last(s.Messages()).Text)
	assert.Len(t, s.Chats(), 1)
}

func TestSend_OptimisticInsertBeforeNetwork(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	s.SetText("Hello")
	cmd := s.Send()
	assert.Zero(t, api.calls["send"])
	assert.Equal(t, "Hello", model.Last(s.Messages()).Text)
	cmd()
	assert.Equal(t, 1, api.calls["send"])
}

func TestSend_NewTitleUpdatesList(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	api.reply = &backend.Reply{Response: "ok", NewTitle: "Trip to Kraków"}
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	s.SetText("plan a trip")
	cmd := s.Send()
	s.Update(cmd())

	chat, ok := s.ActiveChat()
	require.True(t, ok)
	assert.Equal(t, "Trip to Kraków", chat.Title)
}

func TestSend_ReplyForInactiveChatIsDropped(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	s.SetText("for a")
	send := s.Send()
	Drain(s, s.SelectChat("b"))

	Drain(s, func() tea.Msg { return send() })
	assert.False(t, s.Loading())
	assert.Equal(t, "b", s.ActiveChatID())
	assert.Equal(t, []string{"hello from b"}, texts(s.Messages()))
}

func TestSend_KeepsDraftTypedDuringCreation(t *testing.T) {
	api := newFakeAPI()
	s := loaded(t, api)

	s.SetText("first")
	created := s.Send()
	s.SetText("second")

	send := s.Update(created())
	assert.Equal(t, "second", s.PendingText())
	s.Update(send())
	require.Len(t, api.sent, 1)
	assert.Equal(t, "first", api.sent[0].text)
}

// =============================================================================
// COMPOSE TESTS
// =============================================================================

func TestAttach_ReplacesPrevious(t *testing.T) {
	s := newTestStore(t, newFakeAPI())
	a := mustAttachment(t, "a.png")
	b := mustAttachment(t, "b.png")

	s.Attach(a)
	s.Attach(b)
	assert.Same(t, b, s.PendingAttachment())

	s.RemoveAttachment()
	assert.Nil(t, s.PendingAttachment())
}

// =============================================================================
// CHAT TRANSITION TESTS
// =============================================================================

func TestNewChat(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	Drain(s, s.NewChat())
	assert.Len(t, s.Chats(), 2)
	assert.Equal(t, "new-1", s.ActiveChatID())
	assert.Empty(t, s.Messages())
}

func TestNewChat_FailureLeavesStateUnchanged(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))
	api.createErr = errBoom

	notices := Drain(s, s.NewChat())
	require.Len(t, notices, 1)
	assert.Len(t, s.Chats(), 1)
	assert.Equal(t, "a", s.ActiveChatID())
	assert.Equal(t, []string{"hello from a"}, texts(s.Messages()))
}

func TestSelectChat_ReplacesMessages(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)

	Drain(s, s.SelectChat("a"))
	assert.Equal(t, []string{"hello from a"}, texts(s.Messages()))

	cmd := s.SelectChat("b")
	assert.Equal(t, "b", s.ActiveChatID(), "selection is optimistic")
	s.Update(cmd())
	assert.Equal(t, []string{"hello from b"}, texts(s.Messages()))
}

func TestSelectChat_UnknownIDIgnored(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)

	assert.Nil(t, s.SelectChat("zzz"))
	assert.Empty(t, s.ActiveChatID())
}

func TestSelectChat_IgnoredWhileCreatingForSend(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)

	s.SetText("Hello")
	created := s.Send()
	require.True(t, s.Creating())
	assert.Nil(t, s.SelectChat("a"))
	assert.Empty(t, s.ActiveChatID())

	Drain(s, s.Update(created()))
	assert.Equal(t, "new-1", s.ActiveChatID())
	assert.Equal(t, []string{"Hello", "echo: Hello"}, texts(s.Messages()))
	assert.Equal(t, "new-1", api.sent[0].chatID)
}

func TestSelectChat_StaleResponseDiscarded(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)

	loadA := s.SelectChat("a")
	loadB := s.SelectChat("b")

	s.Update(loadB())
	s.Update(loadA())
	assert.Equal(t, "b", s.ActiveChatID())
	assert.Equal(t, []string{"hello from b"}, texts(s.Messages()))
}

func TestSelectChat_ReselectDiscardsOlderLoad(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)

	first := s.SelectChat("a")
	api.history["a"] = []string{"hello from a", "newer"}
	second := s.SelectChat("a")

	s.Update(second())
	s.Update(first())
	assert.Equal(t, []string{"hello from a", "newer"}, texts(s.Messages()))
}

func TestSelectChat_FailureKeepsLastLoaded(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	api.getErr = errBoom
	notices := Drain(s, s.SelectChat("b"))

	assert.Empty(t, notices)
	assert.Equal(t, "b", s.ActiveChatID())
	assert.Equal(t, []string{"hello from a"}, texts(s.Messages()))
}

func TestSelectChat_LoadDoesNotWipeOptimisticInsert(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)

	load := s.SelectChat("a")
	s.SetText("quick")
	send := s.Send()

	s.Update(load())
	assert.Equal(t, []string{"quick"}, texts(s.Messages()))
	s.Update(send())
	assert.Equal(t, []string{"quick", "echo: quick"}, texts(s.Messages()))
}

// =============================================================================
// DELETE TESTS
// =============================================================================

func TestDelete_RequiresConfirmation(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)

	assert.Nil(t, s.ConfirmDelete())
	assert.False(t, s.RequestDelete("missing"))

	require.True(t, s.RequestDelete("a"))
	assert.Equal(t, "a", s.PendingDelete())
	s.CancelDelete()
	assert.Nil(t, s.ConfirmDelete())
	assert.Zero(t, api.calls["delete"])
}

func TestDelete_ActiveChatClearsSelection(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	require.True(t, s.RequestDelete("a"))
	Drain(s, s.ConfirmDelete())

	assert.Equal(t, []model.Chat{{ID: "b", Title: "title b"}}, s.Chats())
	assert.Empty(t, s.ActiveChatID())
	assert.Empty(t, s.Messages())
}

func TestDelete_OtherChatKeepsSelection(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	require.True(t, s.RequestDelete("b"))
	Drain(s, s.ConfirmDelete())

	assert.Len(t, s.Chats(), 1)
	assert.Equal(t, "a", s.ActiveChatID())
	assert.Equal(t, []string{"hello from a"}, texts(s.Messages()))
}

func TestDelete_FailureNotifiesWithoutMutation(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	api.deleteErr = errBoom
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	require.True(t, s.RequestDelete("a"))
	notices := Drain(s, s.ConfirmDelete())

	require.Len(t, notices, 1)
	assert.IsType(t, NoticeMsg{}, notices[0])
	assert.Len(t, s.Chats(), 1)
	assert.Equal(t, "a", s.ActiveChatID())
	assert.Len(t, s.Messages(), 1)
}

// =============================================================================
// REFRESH TESTS
// =============================================================================

func TestRefresh_OnlyTouchesChats(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	api.chats[1].Title = "renamed"
	Drain(s, s.Refresh())

	assert.Equal(t, "renamed", s.Chats()[1].Title)
	assert.Equal(t, "a", s.ActiveChatID())
	assert.Equal(t, []string{"hello from a"}, texts(s.Messages()))
}

func TestRefresh_FailureIsSilent(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	api.listErr = errBoom

	assert.Empty(t, Drain(s, s.Refresh()))
	assert.Len(t, s.Chats(), 1)
}

func TestRefresh_StaleListAfterCreateDiscarded(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)

	refresh := s.Refresh()
	stale := refresh()
	Drain(s, s.NewChat())
	refetch := s.Update(stale)

	assert.Len(t, s.Chats(), 2)
	assert.Equal(t, "new-1", s.ActiveChatID())

	require.NotNil(t, refetch, "a stale list triggers a new fetch")
	Drain(s, refetch)
	assert.Len(t, s.Chats(), 2)
	assert.Equal(t, "new-1", s.ActiveChatID())
}

func TestRefresh_CreateResolvingBeforeStartupList(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b", "c")
	s := newTestStore(t, api)

	startup := s.Init()()
	Drain(s, s.NewChat())
	require.Len(t, s.Chats(), 1, "only the created chat is known so far")

	Drain(s, func() tea.Msg { return startup })

	assert.Equal(t, []string{"a", "b", "c", "new-1"}, chatIDs(s.Chats()))
	assert.Equal(t, "new-1", s.ActiveChatID())
	assert.Equal(t, 2, api.calls["list"])
}

func TestRefresh_DeleteDuringRefreshKeepsServerChanges(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)

	api.chats[1].Title = "renamed"
	inflight := s.Refresh()()
	require.True(t, s.RequestDelete("a"))
	Drain(s, s.ConfirmDelete())

	Drain(s, func() tea.Msg { return inflight })

	require.Equal(t, []string{"b"}, chatIDs(s.Chats()))
	assert.Equal(t, "renamed", s.Chats()[0].Title)
}

func TestRefresh_ActiveChatGoneClearsSelection(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	api.chats = nil
	Drain(s, s.Refresh())
	assert.Empty(t, s.ActiveChatID())
	assert.Empty(t, s.Messages())
}

// =============================================================================
// PREVIEW HANDLE TESTS
// =============================================================================

func TestPreviews_ReleasedWhenNoLongerDisplayed(t *testing.T) {
	api := newFakeAPI()
	api.seed("a", "b")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	s.Attach(mustAttachment(t, "cat.png"))
	s.SetText("look")
	Drain(s, s.Send())

	msgs := s.Messages()
	require.NotNil(t, msgs[1].Image)
	assert.Equal(t, 1, s.Previews().Live())

	Drain(s, s.SelectChat("b"))
	assert.Zero(t, s.Previews().Live())
}

func TestPreviews_ReleasedOnClose(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))

	s.Attach(mustAttachment(t, "cat.png"))
	Drain(s, s.Send())
	require.Equal(t, 1, s.Previews().Live())

	s.Close()
	assert.Zero(t, s.Previews().Live())
}

func TestPreviews_ReleasedOnDeleteAndNewChat(t *testing.T) {
	api := newFakeAPI()
	api.seed("a")
	s := loaded(t, api)
	Drain(s, s.SelectChat("a"))
	s.Attach(mustAttachment(t, "one.png"))
	Drain(s, s.Send())

	Drain(s, s.NewChat())
	assert.Zero(t, s.Previews().Live())

	s.Attach(mustAttachment(t, "two.png"))
	Drain(s, s.Send())
	require.Equal(t, 1, s.Previews().Live())

	require.True(t, s.RequestDelete(s.ActiveChatID()))
	Drain(s, s.ConfirmDelete())
	assert.Zero(t, s.Previews().Live())
}

// =============================================================================
// PROPERTY TESTS
// =============================================================================

// TestActiveChatAlwaysListed drives random create/select/delete sequences and
// checks the active chat is always none or in the list.
func TestActiveChatAlwaysListed(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		api := newFakeAPI()
		api.seed("a", "b", "c")
		s := loaded(t, api)

		for step := 0; step < 40; step++ {
			switch rng.Intn(5) {
			case 0:
				Drain(s, s.NewChat())
			case 1, 2:
				if chats := s.Chats(); len(chats) > 0 {
					Drain(s, s.SelectChat(chats[rng.Intn(len(chats))].ID))
				}
			case 3:
				if chats := s.Chats(); len(chats) > 0 {
					s.RequestDelete(chats[rng.Intn(len(chats))].ID)
					Drain(s, s.ConfirmDelete())
				}
			case 4:
				s.SetText("msg")
				Drain(s, s.Send())
			}

			if id := s.ActiveChatID(); id != "" {
				require.Truef(t, model.Contains(s.Chats(), id), "run %d step %d: active %q not listed", run, step, id)
			}
			require.False(t, s.Loading())
		}
	}
}

func TestEverySendAppendsExactlyOneBotMessage(t *testing.T) {
	for _, fail := range []bool{false, true} {
		api := newFakeAPI()
		api.seed("a")
		if fail {
			api.sendErr = errBoom
		}
		s := loaded(t, api)
		Drain(s, s.SelectChat("a"))

		for i := 0; i < 3; i++ {
			before := len(s.Messages())
			s.SetText("ping")
			Drain(s, s.Send())

			msgs := s.Messages()
			require.Len(t, msgs, before+2)
			assert.Equal(t, model.RoleUser, msgs[before].Role)
			assert.True(t, msgs[before+1].IsBot())
			assert.Equal(t, fail, msgs[before+1].Failed)
			assert.False(t, s.Loading())
		}
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/backend"
	"github.com/jeranaias/fakegpt-tui/internal/i18n"
	"github.com/jeranaias/fakegpt-tui/internal/model"
)

// API is the backend surface the store needs. *backend.Client implements it.
type API interface {
	ListChats(ctx context.Context) ([]model.Chat, error)
	CreateChat(ctx context.Context) (model.Chat, error)
	GetMessages(ctx context.Context, chatID string) ([]*model.Message, error)
	DeleteChat(ctx context.Context, chatID string) error
	SendMessage(ctx context.Context, chatID, text string, att *attachment.Attachment) (backend.Reply, error)
}

// Options configures a Store.
type Options struct {
	// Context is the parent of every backend call (default: Background).
	Context context.Context

	// Logger records silent failures (default: slog.Default()).
	Logger *slog.Logger

	// Lang selects the labels used for notices and error replies.
	Lang i18n.Lang
}

// draft is the composer content captured when Send is called.
type draft struct {
	text string
	att  *attachment.Attachment
}

// Store is the conversation state container. It is not safe for concurrent
// use; all methods must be called from one goroutine.
type Store struct {
	api    API
	ctx    context.Context
	logger *slog.Logger
	lang   i18n.Lang

	chats       []model.Chat
	activeID    string
	messages    []*model.Message
	pendingText string
	pending     *attachment.Attachment
	loading     bool

	// creating is set while a send waits on inline chat creation.
	creating bool

	// pendingDelete is the chat awaiting confirmation.
	pendingDelete string

	// loadToken increases on every history request and every local change to
	// messages, so older responses can be recognized.
	loadToken uint64

	// listToken increases whenever the chat list is changed locally.
	listToken uint64

	previews *attachment.Tracker
}

// New creates a Store backed by api.
func New(api API, opts Options) *Store {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if !i18n.IsSupported(string(opts.Lang)) {
		opts.Lang = i18n.Default
	}
	return &Store{
		api:      api,
		ctx:      opts.Context,
		logger:   opts.Logger,
		lang:     opts.Lang,
		previews: attachment.NewTracker(),
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Chats returns the chat list. Callers must not modify it.
func (s *Store) Chats() []model.Chat { return s.chats }

// ActiveChatID returns the active chat id, or "" when none is selected.
func (s *Store) ActiveChatID() string { return s.activeID }

// ActiveChat returns the active chat entry, if it is in the list.
func (s *Store) ActiveChat() (model.Chat, bool) {
	if i := model.IndexOf(s.chats, s.activeID); i >= 0 && s.activeID != "" {
		return s.chats[i], true
	}
	return model.Chat{}, false
}

// Messages returns the active chat's messages. Callers must not modify it.
func (s *Store) Messages() []*model.Message { return s.messages }

// PendingText returns the composer text.
func (s *Store) PendingText() string { return s.pendingText }

// PendingAttachment returns the staged attachment, or nil.
func (s *Store) PendingAttachment() *attachment.Attachment { return s.pending }

// Loading reports whether a send is outstanding.
func (s *Store) Loading() bool { return s.loading }

// Creating reports whether a send is waiting on chat creation.
func (s *Store) Creating() bool { return s.creating }

// PendingDelete returns the chat awaiting delete confirmation, or "".
func (s *Store) PendingDelete() string { return s.pendingDelete }

// Previews exposes the preview tracker, mainly so leaks can be checked.
func (s *Store) Previews() *attachment.Tracker { return s.previews }

// Lang returns the current UI language.
func (s *Store) Lang() i18n.Lang { return s.lang }

// Strings returns the label table for the current language.
func (s *Store) Strings() i18n.Strings { return i18n.Lookup(s.lang) }

// SetLang switches the UI language. Stored messages are not touched.
func (s *Store) SetLang(lang i18n.Lang) {
	if i18n.IsSupported(string(lang)) {
		s.lang = lang
	}
}

// CanSend reports whether Send would do anything.
func (s *Store) CanSend() bool {
	if s.loading || s.creating {
		return false
	}
	return strings.TrimSpace(s.pendingText) != "" || s.pending != nil
}

// =============================================================================
// COMPOSE
// =============================================================================

// SetText replaces the composer text.
func (s *Store) SetText(text string) {
	s.pendingText = text
}

// Attach stages a, replacing any previously staged attachment.
func (s *Store) Attach(a *attachment.Attachment) {
	s.pending = a
}

// RemoveAttachment clears the staged attachment.
func (s *Store) RemoveAttachment() {
	s.pending = nil
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Init loads the chat list.
func (s *Store) Init() tea.Cmd {
	return s.Refresh()
}

// Refresh reloads the chat list in the background.
func (s *Store) Refresh() tea.Cmd {
	api, ctx, token := s.api, s.ctx, s.listToken
	return func() tea.Msg {
		chats, err := api.ListChats(ctx)
		return ChatsLoadedMsg{Chats: chats, Err: err, token: token}
	}
}

// Close releases every preview handle still held.
func (s *Store) Close() {
	model.ReleaseAll(s.messages)
}

// =============================================================================
// CHAT TRANSITIONS
// =============================================================================

// NewChat creates a chat and makes it active once the backend confirms it.
func (s *Store) NewChat() tea.Cmd {
	return s.create(nil)
}

// SelectChat activates id immediately and loads its history. Ids that are
// not in the chat list are ignored, as is any selection while a send waits
// on chat creation: the created chat becomes active when it resolves.
func (s *Store) SelectChat(id string) tea.Cmd {
	if s.creating || !model.Contains(s.chats, id) {
		return nil
	}
	s.activeID = id
	s.loadToken++

	api, ctx, token := s.api, s.ctx, s.loadToken
	return func() tea.Msg {
		msgs, err := api.GetMessages(ctx, id)
		return MessagesLoadedMsg{ChatID: id, Messages: msgs, Err: err, token: token}
	}
}

// RequestDelete asks for confirmation before deleting id. It reports false
// when id is not in the chat list.
func (s *Store) RequestDelete(id string) bool {
	if !model.Contains(s.chats, id) {
		return false
	}
	s.pendingDelete = id
	return true
}

// CancelDelete drops a pending delete request.
func (s *Store) CancelDelete() {
	s.pendingDelete = ""
}

// ConfirmDelete deletes the chat that RequestDelete staged.
func (s *Store) ConfirmDelete() tea.Cmd {
	id := s.pendingDelete
	if id == "" {
		return nil
	}
	s.pendingDelete = ""

	api, ctx := s.api, s.ctx
	return func() tea.Msg {
		return ChatDeletedMsg{ChatID: id, Err: api.DeleteChat(ctx, id)}
	}
}

// =============================================================================
// SEND
// =============================================================================

// Send posts the current draft. It is a no-op when CanSend is false. Without
// an active chat, one is created first and the send is abandoned if that fails.
func (s *Store) Send() tea.Cmd {
	if !s.CanSend() {
		return nil
	}
	d := &draft{text: strings.TrimSpace(s.pendingText), att: s.pending}

	if s.activeID == "" {
		s.creating = true
		return s.create(d)
	}
	return s.dispatch(s.activeID, d)
}

// dispatch performs the optimistic insert and issues the send.
func (s *Store) dispatch(chatID string, d *draft) tea.Cmd {
	preview := s.previews.Acquire(d.att)
	s.messages = append(s.messages, model.NewUserMessage(d.text, preview))

	// A history load issued before this point must not wipe the insert.
	s.loadToken++

	// Only clear the composer if it still holds what was sent; the user may
	// have kept typing while the chat was being created.
	if strings.TrimSpace(s.pendingText) == d.text {
		s.pendingText = ""
	}
	if s.pending == d.att {
		s.pending = nil
	}
	s.loading = true

	api, ctx := s.api, s.ctx
	return func() tea.Msg {
		reply, err := api.SendMessage(ctx, chatID, d.text, d.att)
		return MessageSentMsg{ChatID: chatID, Reply: reply, Err: err}
	}
}

func (s *Store) create(forSend *draft) tea.Cmd {
	api, ctx := s.api, s.ctx
	return func() tea.Msg {
		chat, err := api.CreateChat(ctx)
		return ChatCreatedMsg{Chat: chat, Err: err, forSend: forSend}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update applies a backend result. Messages the store does not own are
// ignored and return nil.
func (s *Store) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ChatsLoadedMsg:
		return s.handleChatsLoaded(msg)
	case ChatCreatedMsg:
		return s.handleChatCreated(msg)
	case MessagesLoadedMsg:
		s.handleMessagesLoaded(msg)
	case ChatDeletedMsg:
		return s.handleChatDeleted(msg)
	case MessageSentMsg:
		return s.handleMessageSent(msg)
	}
	return nil
}

func (s *Store) handleChatsLoaded(msg ChatsLoadedMsg) tea.Cmd {
	if msg.Err != nil {
		s.logger.Warn("chat list refresh failed", "error", msg.Err)
		return nil
	}
	if msg.token != s.listToken {
		// The list predates a local create or delete. Fetch again so server
		// side changes in it (renames, other clients) are not lost.
		s.logger.Debug("refetching stale chat list", "token", msg.token, "current", s.listToken)
		return s.Refresh()
	}
	s.chats = model.Dedupe(msg.Chats)

	// The active chat must be listed, so a refresh that drops it also
	// clears the open conversation.
	if s.activeID != "" && !model.Contains(s.chats, s.activeID) && !s.creating {
		s.logger.Info("active chat no longer on server", "chat_id", s.activeID)
		s.clearActive()
	}
	if s.pendingDelete != "" && !model.Contains(s.chats, s.pendingDelete) {
		s.pendingDelete = ""
	}
	return nil
}

func (s *Store) handleChatCreated(msg ChatCreatedMsg) tea.Cmd {
	if msg.forSend != nil {
		s.creating = false
	}
	if msg.Err != nil {
		s.logger.Warn("create chat failed", "error", msg.Err)
		return s.notice(msg.Err)
	}

	s.chats = model.AppendChat(s.chats, msg.Chat)
	s.listToken++
	s.clearActive()
	s.activeID = msg.Chat.ID

	if msg.forSend != nil {
		return s.dispatch(msg.Chat.ID, msg.forSend)
	}
	return nil
}

func (s *Store) handleMessagesLoaded(msg MessagesLoadedMsg) {
	if msg.token != s.loadToken || msg.ChatID != s.activeID {
		s.logger.Debug("dropping stale history", "chat_id", msg.ChatID, "active", s.activeID)
		return
	}
	if msg.Err != nil {
		s.logger.Warn("load chat failed", "chat_id", msg.ChatID, "error", msg.Err)
		return
	}
	model.ReleaseAll(s.messages)
	s.messages = msg.Messages
}

func (s *Store) handleChatDeleted(msg ChatDeletedMsg) tea.Cmd {
	if msg.Err != nil {
		s.logger.Warn("delete chat failed", "chat_id", msg.ChatID, "error", msg.Err)
		return s.notice(msg.Err)
	}

	s.chats = model.RemoveChat(s.chats, msg.ChatID)
	s.listToken++
	if msg.ChatID == s.activeID {
		s.clearActive()
	}
	return nil
}

func (s *Store) handleMessageSent(msg MessageSentMsg) tea.Cmd {
	s.loading = false

	if msg.Err == nil && msg.Reply.NewTitle != "" {
		if i := model.IndexOf(s.chats, msg.ChatID); i >= 0 {
			s.chats[i].Title = msg.Reply.NewTitle
		}
	}

	if msg.ChatID != s.activeID {
		s.logger.Info("reply arrived for inactive chat", "chat_id", msg.ChatID, "error", msg.Err)
		if msg.Err != nil {
			return nil
		}
		return s.Refresh()
	}

	if msg.Err != nil {
		s.logger.Warn("send failed", "chat_id", msg.ChatID, "error", msg.Err)
		s.messages = append(s.messages, model.NewErrorMessage(s.Strings().ErrorReply()))
		s.loadToken++
		return nil
	}

	s.messages = append(s.messages, model.NewBotMessage(msg.Reply.Response))
	s.loadToken++
	return s.Refresh()
}

// clearActive deselects the active chat and releases its messages.
func (s *Store) clearActive() {
	model.ReleaseAll(s.messages)
	s.messages = nil
	s.activeID = ""
	s.loadToken++
}

func (s *Store) notice(err error) tea.Cmd {
	text := s.Strings().Error
	return func() tea.Msg {
		return NoticeMsg{Text: text, Err: err}
	}
}

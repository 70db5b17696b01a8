// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"github.com/jeranaias/fakegpt-tui/internal/backend"
	"github.com/jeranaias/fakegpt-tui/internal/model"
)

// =============================================================================
// BACKEND RESULT MESSAGES
// =============================================================================

// ChatsLoadedMsg carries the result of a chat list fetch.
type ChatsLoadedMsg struct {
	Chats []model.Chat
	Err   error
	token uint64
}

// ChatCreatedMsg carries the result of a chat creation.
type ChatCreatedMsg struct {
	Chat model.Chat
	Err  error

	// forSend is the draft waiting on this chat, if creation was triggered
	// by a send.
	forSend *draft
}

// MessagesLoadedMsg carries the result of a history load.
type MessagesLoadedMsg struct {
	ChatID   string
	Messages []*model.Message
	Err      error
	token    uint64
}

// ChatDeletedMsg carries the result of a chat deletion.
type ChatDeletedMsg struct {
	ChatID string
	Err    error
}

// MessageSentMsg carries the backend reply to a send.
type MessageSentMsg struct {
	ChatID string
	Reply  backend.Reply
	Err    error
}

// =============================================================================
// NOTIFICATIONS
// =============================================================================

// NoticeMsg asks the presentation layer to show a user-visible notification.
// It is emitted only for failed create and delete calls.
type NoticeMsg struct {
	Text string
	Err  error
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import "github.com/jeranaias/fakegpt-tui/internal/model"

// Reply is the backend's answer to a sent message.
type Reply struct {
	Response string `json:"response"`

	// NewTitle is set when the backend renamed the chat.
	NewTitle string `json:"new_title,omitempty"`
}

// createResponse is the body of POST /chats/new.
type createResponse struct {
	ChatID string `json:"chat_id"`
	Title  string `json:"title"`
}

// historyEntry is one message of GET /chats/{id}. Image is a data URL the
// backend keeps for user uploads.
type historyEntry struct {
	Role  string `json:"role"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

func (h historyEntry) toMessage() *model.Message {
	msg := model.NewMessage(model.ParseRole(h.Role), h.Text)
	msg.HasRemoteImage = h.Image != ""
	return msg
}

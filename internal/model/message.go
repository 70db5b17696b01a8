// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/jeranaias/fakegpt-tui/internal/attachment"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the author of a message.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleBot:
		return "FakeGPT"
	default:
		return string(r)
	}
}

// ParseRole maps a backend role string onto a Role. Anything that is not the
// user is rendered as the bot, matching how the backend labels replies.
func ParseRole(s string) Role {
	if s == string(RoleUser) {
		return RoleUser
	}
	return RoleBot
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message is a single turn in the active chat.
type Message struct {
	// ID is a client-side identity used to key the reveal animation.
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time

	// Image is set only on optimistically inserted user messages.
	Image *attachment.Preview

	// Failed marks the synthetic reply inserted when a send fails.
	Failed bool

	// HasRemoteImage is set for history entries that carried an image on the
	// server. No preview is created for those.
	HasRemoteImage bool
}

// NewMessage creates a message with a generated ID.
func NewMessage(role Role, text string) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a user message, optionally owning a preview.
func NewUserMessage(text string, image *attachment.Preview) *Message {
	msg := NewMessage(RoleUser, text)
	msg.Image = image
	return msg
}

// NewBotMessage creates a bot reply.
func NewBotMessage(text string) *Message {
	return NewMessage(RoleBot, text)
}

// NewErrorMessage creates the synthetic bot reply shown for a failed send.
func NewErrorMessage(text string) *Message {
	msg := NewMessage(RoleBot, text)
	msg.Failed = true
	return msg
}

// IsBot reports whether the bot authored the message.
func (m *Message) IsBot() bool {
	return m != nil && m.Role == RoleBot
}

// HasImage reports whether the message has an image, local or remote.
func (m *Message) HasImage() bool {
	return m.Image != nil || m.HasRemoteImage
}

// ReleaseImage releases the owned preview, if any.
func (m *Message) ReleaseImage() {
	if m.Image != nil {
		m.Image.Release()
		m.Image = nil
	}
}

// Preview returns a truncated preview of the message text.
// Uses rune-based truncation to handle Unicode correctly.
func (m *Message) Preview(maxLen int) string {
	runes := []rune(m.Text)
	if len(runes) <= maxLen {
		return m.Text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// =============================================================================
// MESSAGE SLICE HELPERS
// =============================================================================

// Last returns the last message or nil.
func Last(msgs []*Message) *Message {
	if len(msgs) == 0 {
		return nil
	}
	return msgs[len(msgs)-1]
}

// LastBot returns the most recent bot message or nil.
func LastBot(msgs []*Message) *Message {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].IsBot() {
			return msgs[i]
		}
	}
	return nil
}

// ReleaseAll releases every preview owned by msgs.
func ReleaseAll(msgs []*Message) {
	for _, m := range msgs {
		m.ReleaseImage()
	}
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// =============================================================================
// CHAT TYPE
// =============================================================================

// Chat is a conversation thread held by the backend.
type Chat struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DisplayTitle returns the title, or fallback when the server has not named
// the chat yet.
func (c Chat) DisplayTitle(fallback string) string {
	if c.Title == "" {
		return fallback
	}
	return c.Title
}

// =============================================================================
// CHAT LIST HELPERS
// =============================================================================

// IndexOf returns the position of id in chats, or -1.
func IndexOf(chats []Chat, id string) int {
	for i, c := range chats {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether id is in chats.
func Contains(chats []Chat, id string) bool {
	return IndexOf(chats, id) >= 0
}

// AppendChat appends c unless a chat with the same ID is present, in which case
// that entry is updated in place. The list stays unique by ID.
func AppendChat(chats []Chat, c Chat) []Chat {
	if i := IndexOf(chats, c.ID); i >= 0 {
		chats[i] = c
		return chats
	}
	return append(chats, c)
}

// RemoveChat returns chats without id. The input slice is not modified.
func RemoveChat(chats []Chat, id string) []Chat {
	out := make([]Chat, 0, len(chats))
	for _, c := range chats {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

// Dedupe keeps the first occurrence of each ID, preserving order.
func Dedupe(chats []Chat) []Chat {
	seen := make(map[string]struct{}, len(chats))
	out := make([]Chat, 0, len(chats))
	for _, c := range chats {
		if _, ok := seen[c.ID]; ok {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

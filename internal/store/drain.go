// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import tea "github.com/charmbracelet/bubbletea"

// Drain runs cmd to completion on the calling goroutine, applying every store
// message to s and following the commands Update returns. Messages the store
// does not own (such as NoticeMsg) are returned in arrival order.
//
// It is the synchronous counterpart of the Bubble Tea runtime, used by the
// line-mode REPL and by one-shot commands.
func Drain(s *Store, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		switch msg := next().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case ChatsLoadedMsg, ChatCreatedMsg, MessagesLoadedMsg, ChatDeletedMsg, MessageSentMsg:
			queue = append(queue, s.Update(msg))
		default:
			out = append(out, msg)
		}
	}
	return out
}

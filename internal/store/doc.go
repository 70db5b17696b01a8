// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store is the client-side conversation state machine.
//
// A Store holds the chat list, the active chat and its messages, the composer
// draft (text plus at most one staged attachment) and the loading flag. Every
// mutation happens on the caller's goroutine. Network calls are returned as
// Bubble Tea commands; their results come back as messages that Update
// applies. The TUI feeds them through its own Update loop, the line-mode REPL
// runs them synchronously with Drain.
//
// # Transitions
//
//   - NewChat: create server-side, append, activate, clear messages
//   - SelectChat: activate immediately, then load history
//   - RequestDelete/ConfirmDelete: delete after explicit confirmation
//   - SetText/Attach/RemoveAttachment: compose the draft
//   - Send: optimistic insert, then post; the reply or an error marker follows
//
// History loads are matched against a monotonic token and the chat id they
// were issued for. Late responses for a chat that is no longer active are
// dropped. Background list refreshes only ever replace the chat list.
package store

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable render pieces of the fakegpt TUI.

# Components

ChatList (chatlist.go) - Sidebar listing chats with the active one marked.
ConfirmDialog (confirm.go) - Centered yes/no modal used before deleting a chat.
ToastManager (toast.go) - Non-blocking notifications that auto-dismiss.
Thumbnail (thumbnail.go) - Half-block rendering of attached images.

Components take a *styles.Theme explicitly and keep no conversation state.
*/
package components

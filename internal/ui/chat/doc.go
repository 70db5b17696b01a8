// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen chat view for the fakegpt TUI.

The Model is a Bubble Tea model that renders the conversation store. It owns
no conversation data of its own: every chat, message and draft lives in
store.Store, and the Model only forwards user input to store transitions and
store results back to the store.

# Layout

	┌ Your Chats ─┐┌ thread ────────────────────────┐
	│ ● Weather   ││ You                            │
	│   New Chat  ││ FakeGPT                        │
	└─────────────┘└────────────────────────────────┘
	┌ composer ───────────────────────────────────────┐
	└─────────────────────────────────────────────────┘
	 status bar
	 help line

# Update Loop (update.go)

Key presses become store transitions. Store result messages are applied to
the store, after which the reveal scheduler follows the last bot message and
the thread viewport is refreshed.

# View Rendering (view.go)

Bot replies are rendered as markdown with glamour once their reveal has
finished; while a reply is being revealed it is shown as plain wrapped text.
*/
package chat

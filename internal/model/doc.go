// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for chats and messages.
//
// # Key Types
//
//   - Chat: a server-side conversation thread (opaque ID, optional title)
//   - Message: one turn in the active thread, authored by the user or the bot
//   - Role: message author (user, bot)
//
// # Usage
//
//	msg := model.NewUserMessage("Hello!", nil)
//	reply := model.NewBotMessage("Hi there")
//	chats = model.AppendChat(chats, model.Chat{ID: "c1"})
package model

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the fakegpt command tree.
//
// Running fakegpt without a subcommand starts the full-screen client. The
// other commands work without a terminal UI and are suitable for scripts.
//
// # Commands Overview
//
//   - tui: full-screen client (default)
//   - chat: line-mode REPL over the same conversation store as the TUI
//   - chats list|show|delete: one-shot chat management
//   - send: send one message (optionally with --file) and print the reply
//   - config [init]: print the effective configuration or write the defaults
//   - version: build information
//
// # Configuration Order
//
// Built-in defaults, then ~/.fakegpt/config.toml (or --config), then the
// dotenv file, then FAKEGPT_* variables, then flags.
//
// # Usage
//
//	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
//	    fmt.Fprintln(os.Stderr, err)
//	    os.Exit(1)
//	}
package cli

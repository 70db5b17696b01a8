// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for fakegpt.
//
// Values are layered, later layers winning:
//   - Built-in defaults
//   - ~/.fakegpt/config.toml (or the path given with --config)
//   - .env in the working directory (loaded into the environment)
//   - FAKEGPT_* environment variables
//   - Command line flags (applied by the cli package)
//
// The client never writes this file. Watcher reloads it when it changes so a
// running TUI can pick up language, theme and reveal speed edits.
//
// # Example config.toml
//
//	[backend]
//	url = "http://localhost:8000"
//	timeout = "60s"
//
//	[ui]
//	language = "en"
//	theme = "dark"
package config

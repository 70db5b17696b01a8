// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging sets up the diagnostic log file.
//
// The TUI owns the terminal, so all diagnostics go to a file. "Silent"
// failures (chat list refresh, history load) appear here as warnings and
// nowhere else.
package logging

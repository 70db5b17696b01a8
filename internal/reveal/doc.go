// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package reveal animates the latest bot reply one character at a time.
//
// The Scheduler is a cooperative timer built on tea.Tick. Each tick carries
// the generation it was scheduled for; restarting or stopping the scheduler
// bumps the generation, so ticks from a superseded target are dropped when
// they arrive.
package reveal

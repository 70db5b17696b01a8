// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the fakegpt TUI.

# Color System (colors.go)

All colors are Lip Gloss AdaptiveColor values. Which side of each pair is used
depends on the renderer a Theme is built with, so dark and light themes can be
switched at runtime without touching global state.

  - Purple - bot replies, selections, focus
  - Cyan - brand, user highlights, key hints
  - Rose - failed replies and error toasts
  - Amber - warnings and the delete confirmation
  - Emerald - success toasts

# Themes (theme.go)

NewTheme resolves "auto", "dark" or "light" into a Theme. "auto" asks termenv
whether the terminal background is dark.

	th := styles.NewTheme(styles.ModeAuto, nil)
	fmt.Println(th.Title.Render("fakegpt"))
*/
package styles

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
)

// markdownRenderer renders finished bot replies and caches the result per
// message. The cache is dropped when the style or wrap width changes.
type markdownRenderer struct {
	style   string
	width   int
	profile termenv.Profile
	tr      *glamour.TermRenderer
	cache   map[string]string
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{cache: make(map[string]string)}
}

// Render returns text rendered as markdown. Rendering errors fall back to the
// raw text.
func (r *markdownRenderer) Render(id, text, style string, profile termenv.Profile, width int) string {
	if width < 10 {
		width = 10
	}
	if r.tr == nil || style != r.style || width != r.width || profile != r.profile {
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithColorProfile(profile),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return text
		}
		r.tr = tr
		r.style = style
		r.width = width
		r.profile = profile
		r.cache = make(map[string]string)
	}

	key := id + "\x00" + text
	if out, ok := r.cache[key]; ok {
		return out
	}
	out, err := r.tr.Render(text)
	if err != nil {
		return text
	}
	out = strings.Trim(out, "\n")
	r.cache[key] = out
	return out
}

// Forget drops cached output for messages no longer displayed.
func (r *markdownRenderer) Forget() {
	r.cache = make(map[string]string)
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme modes accepted by NewTheme.
const (
	ModeAuto  = "auto"
	ModeDark  = "dark"
	ModeLight = "light"
)

// Theme holds all the styled components for the application.
type Theme struct {
	// Mode is the resolved mode, never ModeAuto.
	Mode         string
	IsDark       bool
	ColorProfile termenv.Profile

	renderer *lipgloss.Renderer

	// ==========================================================================
	// LAYOUT
	// ==========================================================================

	App       lipgloss.Style
	Title     lipgloss.Style
	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// ==========================================================================
	// SIDEBAR
	// ==========================================================================

	Sidebar             lipgloss.Style
	SidebarFocused      lipgloss.Style
	SidebarHeader       lipgloss.Style
	SidebarItem         lipgloss.Style
	SidebarItemActive   lipgloss.Style
	SidebarItemSelected lipgloss.Style

	// ==========================================================================
	// THREAD
	// ==========================================================================

	UserBubble   lipgloss.Style
	BotBubble    lipgloss.Style
	FailedBubble lipgloss.Style
	RoleLabel    lipgloss.Style
	ImageLabel   lipgloss.Style
	Welcome      lipgloss.Style
	Typing       lipgloss.Style

	// ==========================================================================
	// COMPOSER
	// ==========================================================================

	Composer        lipgloss.Style
	ComposerFocused lipgloss.Style
	AttachmentChip  lipgloss.Style

	// ==========================================================================
	// OVERLAYS
	// ==========================================================================

	Modal       lipgloss.Style
	ModalTitle  lipgloss.Style
	ModalButton lipgloss.Style
	ToastError  lipgloss.Style
	ToastInfo   lipgloss.Style
}

// NewTheme builds a theme for mode. A nil renderer uses one bound to stdout.
// Unknown modes behave like ModeAuto.
func NewTheme(mode string, r *lipgloss.Renderer) *Theme {
	if r == nil {
		r = lipgloss.NewRenderer(os.Stdout)
	}

	var isDark bool
	switch mode {
	case ModeDark:
		isDark = true
	case ModeLight:
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	r.SetHasDarkBackground(isDark)

	t := &Theme{
		Mode:         ModeLight,
		IsDark:       isDark,
		ColorProfile: r.ColorProfile(),
		renderer:     r,
	}
	if isDark {
		t.Mode = ModeDark
	}
	t.initStyles()
	return t
}

// Toggle returns the opposite theme on the same renderer.
func (t *Theme) Toggle() *Theme {
	if t.IsDark {
		return NewTheme(ModeLight, t.renderer)
	}
	return NewTheme(ModeDark, t.renderer)
}

// Renderer returns the renderer the styles are bound to.
func (t *Theme) Renderer() *lipgloss.Renderer {
	return t.renderer
}

// GlamourStyle returns the glamour standard style name matching the theme.
func (t *Theme) GlamourStyle() string {
	if t.IsDark {
		return "dark"
	}
	return "light"
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	s := t.renderer.NewStyle

	t.App = s().Foreground(TextPrimary)
	t.Title = s().Bold(true).Foreground(Cyan)
	t.StatusBar = s().
		Foreground(TextSecondary).
		Background(SurfaceDim).
		Padding(0, 1)
	t.Help = s().Foreground(TextMuted)

	// Sidebar
	t.Sidebar = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.SidebarFocused = t.Sidebar.BorderForeground(Purple)
	t.SidebarHeader = s().Bold(true).Foreground(TextSecondary).MarginBottom(1)
	t.SidebarItem = s().Foreground(TextPrimary)
	t.SidebarItemActive = s().Bold(true).Foreground(Purple)
	t.SidebarItemSelected = s().
		Foreground(TextPrimary).
		Background(SelectionBg)

	// Thread
	t.UserBubble = s().
		Foreground(UserBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(UserBubbleBorder).
		Padding(0, 1)
	t.BotBubble = s().
		Foreground(BotBubbleFg).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(BotBubbleBorder).
		Padding(0, 1)
	t.FailedBubble = t.BotBubble.
		Foreground(FailedBubbleFg).
		BorderForeground(Rose)
	t.RoleLabel = s().Bold(true).Foreground(TextSecondary)
	t.ImageLabel = s().Italic(true).Foreground(Cyan)
	t.Welcome = s().Foreground(TextSecondary).Italic(true).Padding(1, 2)
	t.Typing = s().Foreground(Purple).Italic(true)

	// Composer
	t.Composer = s().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)
	t.ComposerFocused = t.Composer.BorderForeground(Cyan)
	t.AttachmentChip = s().
		Foreground(TextInverse).
		Background(Cyan).
		Padding(0, 1)

	// Overlays
	t.Modal = s().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Amber).
		Padding(1, 3)
	t.ModalTitle = s().Bold(true).Foreground(Amber)
	t.ModalButton = s().Bold(true).Foreground(Cyan)
	t.ToastError = s().
		Foreground(Rose).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Rose).
		Padding(0, 1)
	t.ToastInfo = t.ToastError.
		Foreground(Emerald).
		BorderForeground(Emerald)
}

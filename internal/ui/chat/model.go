// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/fakegpt-tui/internal/config"
	"github.com/jeranaias/fakegpt-tui/internal/reveal"
	"github.com/jeranaias/fakegpt-tui/internal/store"
	"github.com/jeranaias/fakegpt-tui/internal/ui/components"
	"github.com/jeranaias/fakegpt-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// Focus is the pane receiving key input.
type Focus int

const (
	FocusComposer Focus = iota
	FocusSidebar
)

// Mode selects what the key handler and the view are showing.
type Mode int

const (
	ModeNormal  Mode = iota // Composer or sidebar navigation
	ModeAttach              // Typing an attachment path
	ModeConfirm             // Delete confirmation modal
)

// Layout constants.
const (
	minSidebarWidth = 18
	maxSidebarWidth = 32
	composerHeight  = 3
	footerHeight    = 2
)

// ConfigReloadedMsg carries a configuration re-read from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// Options configures a Model.
type Options struct {
	Store *store.Store
	Theme *styles.Theme

	// RevealInterval is the delay between revealed characters (default 15ms).
	RevealInterval time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Clipboard writes text to the system clipboard (default: atotto/clipboard).
	Clipboard func(string) error
}

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	store  *store.Store
	reveal *reveal.Scheduler
	theme  *styles.Theme
	logger *slog.Logger
	keys   KeyMap

	// Dimensions
	width        int
	height       int
	sidebarWidth int

	focus  Focus
	mode   Mode
	cursor int

	// UI Components
	input     textinput.Model
	pathInput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	toasts    *components.ToastManager

	spinning     bool
	toastTicking bool

	markdown  *markdownRenderer
	clipboard func(string) error
}

// New creates a chat model rendering opts.Store.
func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Theme == nil {
		opts.Theme = styles.NewTheme(styles.ModeAuto, nil)
	}
	if opts.RevealInterval <= 0 {
		opts.RevealInterval = reveal.DefaultInterval
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}

	strs := opts.Store.Strings()

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = strs.Placeholder
	ti.CharLimit = 4096
	ti.Focus()

	pi := textinput.New()
	pi.Prompt = strs.AttachPrompt + " "
	pi.CharLimit = 1024

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = opts.Theme.Typing

	return Model{
		store:     opts.Store,
		reveal:    reveal.New(opts.RevealInterval),
		theme:     opts.Theme,
		logger:    opts.Logger,
		keys:      DefaultKeyMap(),
		input:     ti,
		pathInput: pi,
		viewport:  viewport.New(0, 0),
		spinner:   sp,
		toasts:    components.NewToastManager(),
		markdown:  newMarkdownRenderer(),
		clipboard: opts.Clipboard,
	}
}

// Init loads the chat list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.store.Init(), textinput.Blink)
}

// Store returns the store the model renders.
func (m Model) Store() *store.Store { return m.store }

// Focus returns the focused pane.
func (m Model) Focus() Focus { return m.focus }

// Mode returns the current input mode.
func (m Model) Mode() Mode { return m.mode }

// Cursor returns the sidebar cursor.
func (m Model) Cursor() int { return m.cursor }

// Theme returns the active theme.
func (m Model) Theme() *styles.Theme { return m.theme }

// Reveal returns the reveal scheduler.
func (m Model) Reveal() *reveal.Scheduler { return m.reveal }

// Toasts returns the visible toasts.
func (m Model) Toasts() []components.Toast { return m.toasts.Toasts() }

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-mode chat REPL for fakegpt.
//
// The REPL drives the same conversation store as the TUI, running each
// store command to completion before reading the next line.

package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/i18n"
	"github.com/jeranaias/fakegpt-tui/internal/model"
	"github.com/jeranaias/fakegpt-tui/internal/reveal"
	"github.com/jeranaias/fakegpt-tui/internal/store"
)

// =============================================================================
// INPUT HISTORY
// =============================================================================

// ChatCLI provides line editing and in-memory history for the REPL. History is
// not written to disk.
type ChatCLI struct {
	line *liner.State
}

// NewChatCLI creates a new ChatCLI.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeSlash)
	return &ChatCLI{line: line}
}

// ReadInput reads a line of input with the given prompt.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close restores the terminal.
func (c *ChatCLI) Close() {
	c.line.Close()
}

var slashCommands = []string{"/new", "/list", "/open ", "/delete ", "/attach ", "/detach", "/lang ", "/help", "/quit"}

func completeSlash(line string) []string {
	if !strings.HasPrefix(line, "/") {
		return nil
	}
	var out []string
	for _, c := range slashCommands {
		if strings.HasPrefix(c, line) {
			out = append(out, c)
		}
	}
	return out
}

// =============================================================================
// SESSION
// =============================================================================

// ChatSession holds the state for an interactive chat session.
type ChatSession struct {
	Store *store.Store
	Out   io.Writer

	// Reveal types replies out rune by rune; nil prints them at once.
	Reveal *reveal.Scheduler

	// Confirm asks before deleting a chat.
	Confirm func(message string) (bool, error)
}

// drain runs cmd and prints any notices it produced.
func (s *ChatSession) drain(cmd tea.Cmd) {
	for _, msg := range store.Drain(s.Store, cmd) {
		if n, ok := msg.(store.NoticeMsg); ok {
			fmt.Fprintln(s.Out, ErrorStyle.Render("[!] "+n.Text))
		}
	}
}

// Handle processes one input line. It returns false when the session should
// end.
func (s *ChatSession) Handle(input string) (bool, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return true, nil
	}
	if strings.HasPrefix(input, "/") {
		return s.handleSlashCommand(input)
	}
	if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
		return false, nil
	}
	return true, s.send(input)
}

func (s *ChatSession) send(text string) error {
	s.Store.SetText(text)
	if !s.Store.CanSend() {
		return nil
	}
	before := len(s.Store.Messages())
	s.drain(s.Store.Send())

	msgs := s.Store.Messages()
	if len(msgs) <= before {
		// Chat creation failed; the draft stays in the store.
		return nil
	}
	last := model.Last(msgs)
	if !last.IsBot() {
		return nil
	}
	if last.Failed || s.Reveal == nil {
		printMessage(s.Out, last)
		return nil
	}
	fmt.Fprintln(s.Out, BotStyle.Render(last.Role.DisplayName()+":"))
	typeOut(s.Out, s.Reveal, last)
	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

func (s *ChatSession) handleSlashCommand(input string) (bool, error) {
	fields := strings.Fields(input)
	name := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(input, fields[0]))
	strs := s.Store.Strings()

	switch name {
	case "/quit", "/exit", "/q":
		return false, nil

	case "/help", "/?":
		printHelp(s.Out)

	case "/new":
		s.drain(s.Store.NewChat())
		if chat, ok := s.Store.ActiveChat(); ok {
			fmt.Fprintln(s.Out, SuccessStyle.Render(chat.DisplayTitle(strs.NewChat)+" ("+chat.ID+")"))
		}

	case "/list", "/ls":
		s.drain(s.Store.Refresh())
		if len(s.Store.Chats()) == 0 {
			fmt.Fprintln(s.Out, DimStyle.Render("no chats"))
			return true, nil
		}
		fmt.Fprintln(s.Out, renderChatTable(s.Store.Chats(), s.Store.ActiveChatID(), strs.NewChat))

	case "/open":
		chat, err := resolveChat(s.Store.Chats(), arg)
		if err != nil {
			return true, err
		}
		s.drain(s.Store.SelectChat(chat.ID))
		fmt.Fprintln(s.Out, TitleStyle.Render(chat.DisplayTitle(strs.NewChat)))
		for _, msg := range s.Store.Messages() {
			printMessage(s.Out, msg)
		}

	case "/delete", "/rm":
		chat, err := resolveChat(s.Store.Chats(), arg)
		if err != nil {
			return true, err
		}
		if !s.Store.RequestDelete(chat.ID) {
			return true, nil
		}
		ok, err := s.Confirm(strings.TrimSpace(strs.DeleteConfirm + " " + chat.DisplayTitle(strs.NewChat)))
		if err != nil || !ok {
			s.Store.CancelDelete()
			return true, err
		}
		s.drain(s.Store.ConfirmDelete())

	case "/attach":
		if arg == "" {
			return true, errors.New("usage: /attach <path>")
		}
		a, err := attachment.Load(arg)
		if err != nil {
			return true, err
		}
		s.Store.Attach(a)
		fmt.Fprintln(s.Out, DimStyle.Render(strs.Attachment+": "+a.String()))

	case "/detach":
		s.Store.RemoveAttachment()

	case "/lang":
		if arg == "" {
			fmt.Fprintln(s.Out, string(s.Store.Lang()))
			return true, nil
		}
		lang := i18n.Lang(strings.ToLower(arg))
		if !i18n.IsSupported(string(lang)) {
			lang = i18n.Match(arg)
		}
		s.Store.SetLang(lang)
		fmt.Fprintln(s.Out, DimStyle.Render(s.Store.Strings().Language+": "+string(lang)))

	default:
		return true, fmt.Errorf("unknown command %s (try /help)", name)
	}
	return true, nil
}

func printHelp(w io.Writer) {
	lines := []string{
		"/new              start a new chat",
		"/list             list chats",
		"/open <n|id>      open a chat",
		"/delete <n|id>    delete a chat",
		"/attach <path>    attach an image to the next message",
		"/detach           drop the attachment",
		"/lang <pl|en|uk>  switch language",
		"/quit             leave",
	}
	for _, l := range lines {
		fmt.Fprintln(w, DimStyle.Render(l))
	}
}

// =============================================================================
// COMMAND
// =============================================================================

func newChatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Line-mode chat (REPL)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st := a.newStore(cmd.Context(), a.client())
			defer st.Close()

			session := &ChatSession{
				Store:   st,
				Out:     cmd.OutOrStdout(),
				Confirm: func(msg string) (bool, error) { return RequireConfirmation(false, msg) },
			}
			if wantsReveal(cmd.OutOrStdout()) {
				session.Reveal = reveal.New(a.cfg.UI.RevealInterval)
			}
			return runREPL(session)
		},
	}
}

// runREPL reads lines until /quit, Ctrl+C or EOF.
func runREPL(session *ChatSession) error {
	session.drain(session.Store.Init())

	strs := session.Store.Strings()
	fmt.Fprintln(session.Out, TitleStyle.Render("FakeGPT"))
	fmt.Fprintln(session.Out, strs.Welcome)
	fmt.Fprintln(session.Out, DimStyle.Render("/help"))

	input := NewChatCLI()
	defer input.Close()

	for {
		// liner rejects prompts with escape sequences, so the prompt stays plain.
		line, err := input.ReadInput("fakegpt> ")
		if err != nil {
			// Ctrl+C (liner.ErrPromptAborted) and EOF both end the session.
			fmt.Fprintln(session.Out)
			return nil
		}

		cont, err := session.Handle(line)
		if err != nil {
			fmt.Fprintf(session.Out, "%s %v\n", ErrorStyle.Render("[Error]"), err)
		}
		if !cont {
			return nil
		}
	}
}

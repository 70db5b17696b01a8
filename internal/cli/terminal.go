// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Interactive or plain output for the fakegpt CLI.
//
// The full-screen client needs a terminal on stdin and stdout. The REPL types
// replies out only when its writer is a terminal, and colors follow termenv's
// reading of NO_COLOR and CLICOLOR_FORCE.

package cli

import (
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// fdHolder is satisfied by *os.File.
type fdHolder interface {
	Fd() uintptr
}

// isTerminal reports whether v is backed by a terminal file descriptor.
// Buffers and pipes are not.
func isTerminal(v any) bool {
	f, ok := v.(fdHolder)
	return ok && term.IsTerminal(int(f.Fd()))
}

// IsTTY reports whether stdin is a terminal, i.e. whether prompts can be
// answered.
func IsTTY() bool { return isTerminal(os.Stdin) }

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool { return isTerminal(os.Stdout) }

// wantsReveal reports whether replies written to w should be typed out.
func wantsReveal(w io.Writer) bool { return isTerminal(w) }

const (
	fallbackWidth = 80
	minWrapWidth  = 40
)

// wrapWidth is the column markdown replies wrap at, leaving glamour's margin.
func wrapWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	switch {
	case err != nil || width <= 0:
		width = fallbackWidth
	case width < minWrapWidth:
		width = minWrapWidth
	}
	return width - 4
}

var stdoutProfile = sync.OnceValue(func() termenv.Profile {
	return termenv.NewOutput(os.Stdout).EnvColorProfile()
})

// ColorsEnabled reports whether stdout gets styled output.
func ColorsEnabled() bool { return stdoutProfile() != termenv.Ascii }

// TTYRequiredError is returned when an operation needs a terminal on a
// redirected stream.
type TTYRequiredError struct {
	Operation string
	Stream    string
}

func (e *TTYRequiredError) Error() string {
	return e.Stream + " is not a terminal; cannot " + e.Operation
}

// RequiresTTY checks that stdin and stdout are both terminals.
func RequiresTTY(operation string) error {
	if !IsTTY() {
		return &TTYRequiredError{Operation: operation, Stream: "stdin"}
	}
	if !IsStdoutTTY() {
		return &TTYRequiredError{Operation: operation, Stream: "stdout"}
	}
	return nil
}

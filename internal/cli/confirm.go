// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrConfirmationRequired is returned when a destructive command runs without
// a terminal and without --yes.
var ErrConfirmationRequired = errors.New("confirmation required: re-run with --yes")

// askConfirm is swapped out in tests.
var askConfirm = func(message string) (bool, error) {
	var ok bool
	err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &ok)
	if errors.Is(err, terminal.InterruptErr) {
		return false, nil
	}
	return ok, err
}

// RequireConfirmation asks message unless assumeYes is set.
// Returns (true, nil) when the action may proceed and (false, nil) when the
// user declined.
func RequireConfirmation(assumeYes bool, message string) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if !IsTTY() {
		return false, ErrConfirmationRequired
	}
	return askConfirm(message)
}

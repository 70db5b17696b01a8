// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// Error variables for common backend failures.
var (
	// ErrTransport indicates the request never produced an HTTP response.
	ErrTransport = errors.New("backend unreachable")

	// ErrDecode indicates the response body could not be decoded.
	ErrDecode = errors.New("malformed backend response")

	// ErrTooLarge indicates the response body exceeded MaxResponseSize.
	ErrTooLarge = errors.New("backend response too large")

	// ErrEmptyChatID is returned when a chat-scoped call gets no id.
	ErrEmptyChatID = errors.New("chat id is empty")
)

// APIError is returned for non-2xx responses.
type APIError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Body)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

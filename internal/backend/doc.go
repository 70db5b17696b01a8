// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the fakegpt chat backend.
//
// The backend owns chat storage and model inference. The client only wraps
// its five endpoints in typed calls:
//
//	GET    /chats               list chats
//	POST   /chats/new           create a chat
//	GET    /chats/{id}          load a chat's history
//	DELETE /chats/{id}          delete a chat
//	POST   /chats/{id}/message  send a message (multipart: message, file)
//
// Every call takes a context, is bounded by a per-request timeout, waits on a
// shared token bucket, and reads at most MaxResponseSize bytes of body.
//
// # Errors
//
// Non-2xx responses return *APIError. Network failures wrap ErrTransport and
// malformed bodies wrap ErrDecode, so callers can branch with errors.Is and
// errors.As.
package backend

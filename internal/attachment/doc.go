// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package attachment holds staged file attachments and the preview handles
// shown next to optimistically inserted user messages.
//
// # Key Types
//
//   - Attachment: a file read into memory, ready to be posted as multipart
//   - Preview: a client-only handle on an attachment's image data
//   - Tracker: acquires previews and counts the ones still live
//
// A Preview must be released once the message that owns it stops being
// displayed. Release is idempotent. Tracker.Live reports how many handles are
// outstanding, which is how leaks are caught in tests.
package attachment

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrReleased is returned when a released preview is used.
var ErrReleased = errors.New("preview released")

// =============================================================================
// PREVIEW HANDLE
// =============================================================================

// Preview is a client-only reference to an attachment's image data. It is
// owned by exactly one message and must be released when that message is no
// longer displayed.
type Preview struct {
	id          string
	name        string
	contentType string
	data        []byte
	decoded     image.Image
	tracker     *Tracker
}

// ID returns the handle identity.
func (p *Preview) ID() string { return p.id }

// Name returns the original file name.
func (p *Preview) Name() string { return p.name }

// ContentType returns the sniffed MIME type.
func (p *Preview) ContentType() string { return p.contentType }

// Released reports whether Release has been called.
func (p *Preview) Released() bool { return p.data == nil }

// Image decodes the preview, caching the result. Non-image attachments and
// released handles return an error.
func (p *Preview) Image() (image.Image, error) {
	if p.Released() {
		return nil, ErrReleased
	}
	if p.decoded != nil {
		return p.decoded, nil
	}
	img, _, err := image.Decode(bytes.NewReader(p.data))
	if err != nil {
		return nil, err
	}
	p.decoded = img
	return img, nil
}

// Release drops the image data. Safe to call more than once and on nil.
func (p *Preview) Release() {
	if p == nil || p.Released() {
		return
	}
	p.data = nil
	p.decoded = nil
	if p.tracker != nil {
		p.tracker.release(p.id)
	}
}

// =============================================================================
// TRACKER
// =============================================================================

// Tracker hands out previews and keeps count of live ones. It is used from a
// single goroutine, like the store that owns it.
type Tracker struct {
	live map[string]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{live: make(map[string]struct{})}
}

// Acquire creates a preview for a. A nil attachment yields a nil preview.
func (t *Tracker) Acquire(a *Attachment) *Preview {
	if a == nil {
		return nil
	}
	data := make([]byte, len(a.Data))
	copy(data, a.Data)

	p := &Preview{
		id:          uuid.NewString(),
		name:        a.Name,
		contentType: a.ContentType,
		data:        data,
		tracker:     t,
	}
	t.live[p.id] = struct{}{}
	return p
}

// Live returns the number of previews not yet released.
func (t *Tracker) Live() int {
	return len(t.live)
}

func (t *Tracker) release(id string) {
	delete(t.live, id)
}

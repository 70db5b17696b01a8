// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package attachment

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// MaxSize is the largest file that can be staged.
const MaxSize = 20 * 1024 * 1024

var (
	// ErrTooLarge is returned when a file exceeds MaxSize.
	ErrTooLarge = errors.New("attachment too large")

	// ErrEmpty is returned for zero-length files.
	ErrEmpty = errors.New("attachment is empty")

	// ErrNotRegular is returned when the path is a directory or device.
	ErrNotRegular = errors.New("attachment is not a regular file")
)

// Attachment is a staged file.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Load reads the file at path into an Attachment.
func Load(path string) (*Attachment, error) {
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat attachment: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}
	if info.Size() > MaxSize {
		return nil, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrTooLarge)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open attachment: %w", err)
	}
	defer f.Close()

	// Read one byte past the limit so a file that grew after Stat is still caught.
	data, err := io.ReadAll(io.LimitReader(f, MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	return New(filepath.Base(path), data)
}

// New builds an Attachment from in-memory data, sniffing the content type.
func New(name string, data []byte) (*Attachment, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	if len(data) > MaxSize {
		return nil, ErrTooLarge
	}
	return &Attachment{
		Name:        name,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}, nil
}

// IsImage reports whether the sniffed content type is an image.
func (a *Attachment) IsImage() bool {
	return a != nil && strings.HasPrefix(a.ContentType, "image/")
}

// Size returns the attachment size in bytes.
func (a *Attachment) Size() int {
	if a == nil {
		return 0
	}
	return len(a.Data)
}

// String returns "name (size)" for status lines.
func (a *Attachment) String() string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s)", a.Name, FormatSize(a.Size()))
}

// FormatSize renders a byte count as B, KB or MB.
func FormatSize(n int) string {
	switch {
	case n >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	case n >= 1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

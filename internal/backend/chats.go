// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/model"
)

// ImagePlaceholder is sent as the message text when only a file is attached.
const ImagePlaceholder = "Analyze this image"

// ListChats fetches the current chat list in server order.
func (c *Client) ListChats(ctx context.Context) ([]model.Chat, error) {
	var chats []model.Chat
	if err := c.do(ctx, http.MethodGet, "/chats", nil, "", &chats); err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	return model.Dedupe(chats), nil
}

// CreateChat provisions a new chat.
func (c *Client) CreateChat(ctx context.Context) (model.Chat, error) {
	var created createResponse
	if err := c.do(ctx, http.MethodPost, "/chats/new", nil, "", &created); err != nil {
		return model.Chat{}, fmt.Errorf("create chat: %w", err)
	}
	if created.ChatID == "" {
		return model.Chat{}, fmt.Errorf("create chat: %w: missing chat_id", ErrDecode)
	}
	return model.Chat{ID: created.ChatID, Title: created.Title}, nil
}

// GetMessages loads the full history of a chat.
func (c *Client) GetMessages(ctx context.Context, chatID string) ([]*model.Message, error) {
	if chatID == "" {
		return nil, ErrEmptyChatID
	}
	var history []historyEntry
	if err := c.do(ctx, http.MethodGet, chatPath(chatID), nil, "", &history); err != nil {
		return nil, fmt.Errorf("load chat %s: %w", chatID, err)
	}
	msgs := make([]*model.Message, 0, len(history))
	for _, h := range history {
		msgs = append(msgs, h.toMessage())
	}
	return msgs, nil
}

// DeleteChat removes a chat server-side.
func (c *Client) DeleteChat(ctx context.Context, chatID string) error {
	if chatID == "" {
		return ErrEmptyChatID
	}
	if err := c.do(ctx, http.MethodDelete, chatPath(chatID), nil, "", nil); err != nil {
		return fmt.Errorf("delete chat %s: %w", chatID, err)
	}
	return nil
}

// SendMessage posts text and an optional attachment as multipart form data.
// Empty text with an attachment is replaced by ImagePlaceholder.
func (c *Client) SendMessage(ctx context.Context, chatID, text string, att *attachment.Attachment) (Reply, error) {
	if chatID == "" {
		return Reply{}, ErrEmptyChatID
	}

	body, contentType, err := encodeMessage(text, att)
	if err != nil {
		return Reply{}, fmt.Errorf("send message: %w", err)
	}

	var reply Reply
	if err := c.do(ctx, http.MethodPost, chatPath(chatID)+"/message", body, contentType, &reply); err != nil {
		return Reply{}, fmt.Errorf("send message: %w", err)
	}
	return reply, nil
}

func chatPath(id string) string {
	return "/chats/" + url.PathEscape(id)
}

// encodeMessage builds the multipart body for a send.
func encodeMessage(text string, att *attachment.Attachment) (*bytes.Buffer, string, error) {
	if strings.TrimSpace(text) == "" && att != nil {
		text = ImagePlaceholder
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("message", text); err != nil {
		return nil, "", fmt.Errorf("failed to write message field: %w", err)
	}

	if att != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, att.Name))
		ct := att.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create file part: %w", err)
		}
		if _, err := part.Write(att.Data); err != nil {
			return nil, "", fmt.Errorf("failed to write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

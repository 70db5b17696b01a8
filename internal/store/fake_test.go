// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/backend"
	"github.com/jeranaias/fakegpt-tui/internal/model"
)

// fakeAPI is an in-memory backend. It is only called from the test goroutine.
type fakeAPI struct {
	chats   []model.Chat
	history map[string][]string
	nextID  int

	listErr   error
	createErr error
	getErr    error
	deleteErr error
	sendErr   error

	// reply overrides the default echo reply when set.
	reply *backend.Reply

	calls map[string]int
	sent  []sentCall
}

type sentCall struct {
	chatID string
	text   string
	att    *attachment.Attachment
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		history: make(map[string][]string),
		calls:   make(map[string]int),
	}
}

// seed adds chats whose histories hold one user line each.
func (f *fakeAPI) seed(ids ...string) {
	for _, id := range ids {
		f.chats = append(f.chats, model.Chat{ID: id, Title: "title " + id})
		f.history[id] = []string{"hello from " + id}
	}
}

func (f *fakeAPI) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeAPI) ListChats(ctx context.Context) ([]model.Chat, error) {
	f.calls["list"]++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]model.Chat, len(f.chats))
	copy(out, f.chats)
	return out, nil
}

func (f *fakeAPI) CreateChat(ctx context.Context) (model.Chat, error) {
	f.calls["create"]++
	if f.createErr != nil {
		return model.Chat{}, f.createErr
	}
	f.nextID++
	c := model.Chat{ID: fmt.Sprintf("new-%d", f.nextID), Title: "Nowy czat"}
	f.chats = append(f.chats, c)
	return c, nil
}

func (f *fakeAPI) GetMessages(ctx context.Context, chatID string) ([]*model.Message, error) {
	f.calls["get"]++
	if f.getErr != nil {
		return nil, f.getErr
	}
	var msgs []*model.Message
	for _, text := range f.history[chatID] {
		msgs = append(msgs, model.NewUserMessage(text, nil))
	}
	return msgs, nil
}

func (f *fakeAPI) DeleteChat(ctx context.Context, chatID string) error {
	f.calls["delete"]++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.chats = model.RemoveChat(f.chats, chatID)
	delete(f.history, chatID)
	return nil
}

func (f *fakeAPI) SendMessage(ctx context.Context, chatID, text string, att *attachment.Attachment) (backend.Reply, error) {
	f.calls["send"]++
	f.sent = append(f.sent, sentCall{chatID: chatID, text: text, att: att})
	if f.sendErr != nil {
		return backend.Reply{}, f.sendErr
	}
	if f.reply != nil {
		return *f.reply, nil
	}
	return backend.Reply{Response: "echo: " + text}, nil
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported UI language code.
type Lang string

const (
	Polish    Lang = "pl"
	English   Lang = "en"
	Ukrainian Lang = "uk"
)

// Default is the language used when nothing else matches.
const Default = Polish

// Strings is the full set of labels rendered by the client.
type Strings struct {
	NewChat       string
	Placeholder   string
	Typing        string
	Error         string
	Welcome       string
	DeleteConfirm string
	Chats         string
	Theme         string

	// Terminal-only labels.
	Language     string
	AttachPrompt string
	Attachment   string
	Help         string
	Copied       string
	Yes          string
	No           string
}

// ErrorMarker is the prefix that visually distinguishes synthetic error replies.
const ErrorMarker = "⚠️ "

// ErrorReply returns the text of the synthetic bot message shown when a send fails.
func (s Strings) ErrorReply() string {
	return ErrorMarker + s.Error
}

var tables = map[Lang]Strings{
	Polish: {
		NewChat:       "Nowy czat",
		Placeholder:   "Wpisz wiadomość...",
		Typing:        "Pisanie...",
		Error:         "Błąd połączenia",
		Welcome:       "Cześć! W czym mogę pomóc?",
		DeleteConfirm: "Usunąć ten czat?",
		Chats:         "Twoje czaty",
		Theme:         "Motyw",
		Language:      "Język",
		AttachPrompt:  "Ścieżka do obrazu:",
		Attachment:    "Załącznik",
		Help:          "ctrl+n nowy • tab fokus • ctrl+o załącz • ctrl+d usuń • ctrl+l język • ctrl+t motyw • ctrl+c wyjście",
		Copied:        "Skopiowano odpowiedź",
		Yes:           "Tak",
		No:            "Nie",
	},
	English: {
		NewChat:       "New Chat",
		Placeholder:   "Type a message...",
		Typing:        "Thinking...",
		Error:         "Connection error",
		Welcome:       "Hello! How can I help you?",
		DeleteConfirm: "Delete this chat?",
		Chats:         "Your Chats",
		Theme:         "Theme",
		Language:      "Language",
		AttachPrompt:  "Path to image:",
		Attachment:    "Attachment",
		Help:          "ctrl+n new • tab focus • ctrl+o attach • ctrl+d delete • ctrl+l language • ctrl+t theme • ctrl+c quit",
		Copied:        "Reply copied",
		Yes:           "Yes",
		No:            "No",
	},
	Ukrainian: {
		NewChat:       "Новий чат",
		Placeholder:   "Введіть повідомлення...",
		Typing:        "Думаю...",
		Error:         "Помилка з'єднання",
		Welcome:       "Привіт! Чим можу допомогти?",
		DeleteConfirm: "Видалити цей чат?",
		Chats:         "Ваші чати",
		Theme:         "Тема",
		Language:      "Мова",
		AttachPrompt:  "Шлях до зображення:",
		Attachment:    "Вкладення",
		Help:          "ctrl+n новий • tab фокус • ctrl+o вкласти • ctrl+d видалити • ctrl+l мова • ctrl+t тема • ctrl+c вихід",
		Copied:        "Відповідь скопійовано",
		Yes:           "Так",
		No:            "Ні",
	},
}

// order is the cycle order used by Next.
var order = []Lang{Polish, English, Ukrainian}

// Supported returns the supported languages in display order.
func Supported() []Lang {
	out := make([]Lang, len(order))
	copy(out, order)
	return out
}

// IsSupported reports whether code names a table.
func IsSupported(code string) bool {
	_, ok := tables[Lang(code)]
	return ok
}

// Lookup returns the table for lang, falling back to Default.
func Lookup(lang Lang) Strings {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[Default]
}

// Next returns the language that follows lang in the cycle order.
func Next(lang Lang) Lang {
	for i, l := range order {
		if l == lang {
			return order[(i+1)%len(order)]
		}
	}
	return Default
}

var matcher = language.NewMatcher([]language.Tag{
	language.Polish,
	language.English,
	language.Ukrainian,
})

// Match maps a BCP 47 tag or a POSIX locale string (e.g. "uk_UA.UTF-8") onto a
// supported language. Empty or unparseable input yields Default.
func Match(locale string) Lang {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return Default
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return Default
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Default
	}
	return order[idx]
}

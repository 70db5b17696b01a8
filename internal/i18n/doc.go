// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n holds the static UI string tables for fakegpt.
//
// Lookup is pure: a language code maps to a fixed Strings value. There is no
// interpolation and no pluralization. Switching language only changes what the
// presentation layer renders; chat and message content is never translated.
//
// # Usage
//
//	t := i18n.Lookup(i18n.Match(os.Getenv("LANG")))
//	fmt.Println(t.Welcome)
package i18n

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/fakegpt-tui/internal/attachment"
	"github.com/jeranaias/fakegpt-tui/internal/model"
)

// ErrNothingToSend is returned when neither text nor a file was given.
var ErrNothingToSend = errors.New("nothing to send: give text or --file")

func newSendCmd(a *app) *cobra.Command {
	var opts struct {
		ChatID string
		File   string
	}

	cmd := &cobra.Command{
		Use:   "send [--chat id] [--file path] <text>",
		Short: "Send one message and print the reply",
		Long: "Send one message and print the reply. Without --chat a new chat is created; " +
			"its id is printed to stderr so further messages can follow.",
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args, " "))

			var att *attachment.Attachment
			if opts.File != "" {
				var err error
				if att, err = attachment.Load(opts.File); err != nil {
					return err
				}
			}
			if text == "" && att == nil {
				return ErrNothingToSend
			}

			ctx := cmd.Context()
			client := a.client()

			chatID := opts.ChatID
			if chatID == "" {
				chat, err := client.CreateChat(ctx)
				if err != nil {
					return fmt.Errorf("create chat: %w", err)
				}
				chatID = chat.ID
				fmt.Fprintln(cmd.ErrOrStderr(), DimStyle.Render("chat: "+chatID))
			}

			reply, err := client.SendMessage(ctx, chatID, text, att)
			if err != nil {
				return fmt.Errorf("send: %w", err)
			}
			if reply.NewTitle != "" {
				fmt.Fprintln(cmd.ErrOrStderr(), DimStyle.Render("title: "+reply.NewTitle))
			}
			printMessage(cmd.OutOrStdout(), model.NewBotMessage(reply.Response))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ChatID, "chat", "", "existing chat id")
	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "image to attach")
	return cmd
}

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jeranaias/fakegpt-tui/internal/i18n"
)

// newChatsCmd builds the one-shot chat management commands.
func newChatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chats",
		Short: "List, show and delete chats",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newChatsListCmd(a), newChatsShowCmd(a), newChatsDeleteCmd(a))
	return cmd
}

func newChatsListCmd(a *app) *cobra.Command {
	var opts struct {
		IDsOnly bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all chats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			chats, err := a.client().ListChats(cmd.Context())
			if err != nil {
				return fmt.Errorf("list chats: %w", err)
			}

			out := cmd.OutOrStdout()
			if opts.IDsOnly {
				for _, c := range chats {
					fmt.Fprintln(out, c.ID)
				}
				return nil
			}
			if len(chats) == 0 {
				fmt.Fprintln(out, DimStyle.Render("no chats"))
				return nil
			}
			fmt.Fprintln(out, renderChatTable(chats, "", i18n.Lookup(a.lang()).NewChat))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.IDsOnly, "quiet", "q", false, "print chat ids only")
	return cmd
}

func newChatsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <n|id>",
		Short: "Print the history of a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.client()
			chats, err := client.ListChats(cmd.Context())
			if err != nil {
				return fmt.Errorf("list chats: %w", err)
			}
			chat, err := resolveChat(chats, args[0])
			if err != nil {
				return err
			}

			msgs, err := client.GetMessages(cmd.Context(), chat.ID)
			if err != nil {
				return fmt.Errorf("load chat %s: %w", chat.ID, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, TitleStyle.Render(chat.DisplayTitle(i18n.Lookup(a.lang()).NewChat)))
			fmt.Fprintln(out, RenderSeparator())
			for _, msg := range msgs {
				printMessage(out, msg)
			}
			return nil
		},
	}
}

func newChatsDeleteCmd(a *app) *cobra.Command {
	var opts struct {
		Yes bool
	}

	cmd := &cobra.Command{
		Use:   "delete <n|id>",
		Short: "Delete a chat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.client()
			chats, err := client.ListChats(cmd.Context())
			if err != nil {
				return fmt.Errorf("list chats: %w", err)
			}
			chat, err := resolveChat(chats, args[0])
			if err != nil {
				return err
			}

			strs := i18n.Lookup(a.lang())
			question := strings.TrimSpace(strs.DeleteConfirm + " " + chat.DisplayTitle(strs.NewChat))
			ok, err := RequireConfirmation(opts.Yes, question)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, DimStyle.Render("cancelled"))
				return nil
			}

			if err := client.DeleteChat(cmd.Context(), chat.ID); err != nil {
				return fmt.Errorf("delete chat %s: %w", chat.ID, err)
			}
			fmt.Fprintln(out, SuccessStyle.Render("deleted "+chat.ID))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

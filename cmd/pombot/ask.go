package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/console"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
)

var showIntent bool

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Answer a single message and exit",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
		defer cancel()

		a, loadErr, err := newApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()
		if loadErr != nil {
			log.WithError(loadErr).Warn("catalog not loaded", nil)
		}

		res, err := a.resolver.Answer(ctx, resolver.Request{
			Message: strings.Join(args, " "),
			Context: map[string]any{"channel": "cli"},
		})
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		if showIntent {
			fmt.Fprintf(cmd.ErrOrStderr(), "[intent=%s tagalog=%t catalog_version=%d]\n", res.Intent, res.Tagalog, res.Version)
		}
		return err
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the bot in an interactive terminal console",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, loadErr, err := newApp(context.Background(), cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()
		if loadErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: catalog not loaded: %v\n", loadErr)
		}
		return console.Run(a.resolver, cfg.Server.RequestTimeout, showIntent)
	},
}

func init() {
	askCmd.Flags().BoolVar(&showIntent, "intent", false, "print the answering intent to stderr")
	chatCmd.Flags().BoolVar(&showIntent, "intent", false, "show the answering intent under each reply")
	rootCmd.AddCommand(askCmd, chatCmd)
}

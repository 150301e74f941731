package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/telegram"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Serve the bot over Telegram (needs TELEGRAM_BOT_TOKEN)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, loadErr, err := newApp(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()
		if loadErr != nil {
			log.WithError(loadErr).Warn("catalog not loaded", nil)
		}

		bot, err := telegram.New(cfg.Telegram.Token, a.resolver, cfg.Server.RequestTimeout, log.With(map[string]interface{}{"component": "telegram"}))
		if err != nil {
			return err
		}
		return bot.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(telegramCmd)
}

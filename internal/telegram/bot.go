// Package telegram serves the bot over Telegram. Every message is answered
// independently; there is no per-chat state.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	tele "gopkg.in/telebot.v3"

	"github.com/MJBeltran13/ai-chatbot-shop/internal/catalog"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/logger"
	"github.com/MJBeltran13/ai-chatbot-shop/internal/resolver"
)

// ErrNoToken is returned when no bot token is configured.
var ErrNoToken = errors.New("telegram: bot token is required")

// Telegram rejects messages over 4096 characters; leave a little room.
const maxMessageLen = 4000

// Answerer is the resolver as the bot sees it.
type Answerer interface {
	Answer(ctx context.Context, req resolver.Request) (resolver.Result, error)
}

// Bot runs the resolver as a Telegram bot.
type Bot struct {
	bot      *tele.Bot
	answerer Answerer
	timeout  time.Duration
	log      logger.Logger
}

// New creates the bot. It contacts Telegram to validate the token.
func New(token string, a Answerer, timeout time.Duration, log logger.Logger) (*Bot, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	b, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return newBot(b, a, timeout, log), nil
}

func newBot(b *tele.Bot, a Answerer, timeout time.Duration, log logger.Logger) *Bot {
	if log == nil {
		log = logger.NewNop()
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	bot := &Bot{bot: b, answerer: a, timeout: timeout, log: log}
	if b != nil {
		b.Handle("/start", bot.handleStart)
		b.Handle(tele.OnText, bot.handleMessage)
	}
	return bot
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.log.Info("telegram bot starting", map[string]interface{}{"username": b.bot.Me.Username})

	go func() {
		<-ctx.Done()
		b.log.Info("telegram bot stopping", nil)
		b.bot.Stop()
	}()

	b.bot.Start()
	return nil
}

func (b *Bot) handleStart(c tele.Context) error {
	return c.Send(fmt.Sprintf("👋 Welcome to %s Auto Parts! I'm %s. Ask me about parts, prices, services, or how to book. Tagalog is welcome too.",
		catalog.ShopName, catalog.BotName))
}

func (b *Bot) handleMessage(c tele.Context) error {
	_ = c.Notify(tele.Typing)

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	chatID := int64(0)
	if chat := c.Chat(); chat != nil {
		chatID = chat.ID
	}
	res, err := b.answerer.Answer(ctx, resolver.Request{
		Message: c.Text(),
		Context: map[string]any{"channel": "telegram", "chat_id": chatID},
	})
	if err != nil {
		// res.Text is the apology; the cause stays in the log.
		b.log.WithError(err).Error("telegram message failed", map[string]interface{}{"chat_id": chatID})
	}
	for _, part := range chunks(res.Text, maxMessageLen) {
		if err := c.Send(part); err != nil {
			return err
		}
	}
	return nil
}

// chunks splits text into pieces of at most max runes, preferring to break
// after a newline.
func chunks(text string, max int) []string {
	var out []string
	for utf8.RuneCountInString(text) > max {
		runes := []rune(text)
		cut := max
		for i := max - 1; i > max/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		out = append(out, string(runes[:cut]))
		text = string(runes[cut:])
	}
	if text != "" {
		out = append(out, text)
	}
	return out
}

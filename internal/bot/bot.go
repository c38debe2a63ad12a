// Package bot implements the Telegram front end: command dispatch,
// two-phase replies, and the notification send path.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"fgo_bot/internal/banners"
	"fgo_bot/internal/config"
	"fgo_bot/internal/matcher"
	"fgo_bot/internal/telemetry"
)

type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot is the Telegram bot that handles user commands and posts feed
// notifications.
type Bot struct {
	api      telegramAPI
	matcher  *matcher.Matcher
	resolver banners.Resolver
	cfg      *config.Config
	log      *slog.Logger
}

// New creates a Bot with the given Telegram token, matcher, and resolver.
func New(token string, m *matcher.Matcher, r banners.Resolver, cfg *config.Config, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	return &Bot{
		api:      api,
		matcher:  m,
		resolver: r,
		cfg:      cfg,
		log:      log,
	}, nil
}

// Run starts the bot's long-polling loop, blocking until ctx is cancelled.
// Each command is handled on its own goroutine: lookups make several
// outbound calls and must not block other commands or the update loop.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			if !b.cfg.IsUserAllowed(update.Message.From.ID) {
				b.reply(update.Message.Chat.ID, "Access denied.")
				continue
			}
			go b.handleCommand(ctx, update.Message)
		}
	}
}

// SendMessage sends a text message to the given chat.
func (b *Bot) SendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.DisableWebPagePreview = true
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.SendMessage(chatID, text)
}

// replyHandle points at an acknowledgement message that a later complete
// call replaces with the final report.
type replyHandle struct {
	chatID    int64
	messageID int
}

// acknowledge posts the immediate placeholder reply of the two-phase
// protocol. Commands that make multiple outbound calls must go through
// this instead of leaving the user without any response.
func (b *Bot) acknowledge(chatID int64, text string) replyHandle {
	msg := tgbotapi.NewMessage(chatID, text)
	sent, err := b.api.Send(msg)
	if err != nil {
		b.log.Error("send acknowledgement", "chat_id", chatID, "error", err)
		return replyHandle{chatID: chatID}
	}
	return replyHandle{chatID: chatID, messageID: sent.MessageID}
}

// complete edits the acknowledgement into the final report. When the
// acknowledgement never made it out, the report is sent as a fresh
// message so the user still gets a reply.
func (b *Bot) complete(h replyHandle, text string) {
	if h.messageID == 0 {
		b.SendMessage(h.chatID, text)
		return
	}
	edit := tgbotapi.NewEditMessageText(h.chatID, h.messageID, text)
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("edit reply", "chat_id", h.chatID, "message_id", h.messageID, "error", err)
		b.SendMessage(h.chatID, text)
	}
}

func (b *Bot) sendPhoto(chatID int64, url string) {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(url))
	if _, err := b.api.Send(photo); err != nil {
		b.log.Error("send photo", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	cmd := msg.Command()
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	defer func() {
		if r := recover(); r != nil {
			b.log.Error("command handler panic", "cmd", cmd, "panic", r)
			b.reply(chatID, "Something went wrong. Please try again later.")
		}
	}()

	b.log.Debug("command", "cmd", cmd, "args", args, "chat_id", chatID)
	telemetry.IncCommandsHandled()

	switch cmd {
	case "start":
		b.handleStart(chatID)
	case "help":
		b.handleHelp(chatID)
	case "ping":
		b.reply(chatID, "Pong! The bot is online and responsive.")
	case "servertime":
		b.handleServerTime(chatID)
	case "servantcheck":
		b.handleServantCheck(ctx, chatID, args)
	case "banners":
		b.handleBanners(ctx, chatID, args)
	default:
		b.reply(chatID, "Unknown command. Use /help for a list of commands.")
	}
}

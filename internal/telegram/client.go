// Package telegram sends an optional end-of-run summary via the Telegram Bot
// API: run ID, record counts and timing. Delivery is retried with linear
// backoff; the pipeline itself never depends on a successful send.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Summary describes one completed pipeline run.
type Summary struct {
	RunID            string
	Inserted         int
	EstimatedFriends int64
	NewFriends       int64
	Duration         time.Duration
}

// Client handles Telegram notifications.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendSummary sends the run summary, retrying on failure.
func (c *Client) SendSummary(s Summary) error {
	msg := tgbotapi.NewMessage(c.chatID, formatSummary(s))
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatSummary formats the run summary as a MarkdownV2 message.
func formatSummary(s Summary) string {
	message := "*Activity ingest complete*\n\n"
	message += fmt.Sprintf("Run: %s\n", escapeMarkdownV2(s.RunID))
	message += fmt.Sprintf("Records inserted: %d\n", s.Inserted)
	message += fmt.Sprintf("Estimated friendships: %d\n", s.EstimatedFriends)
	message += fmt.Sprintf("New friends: %d\n", s.NewFriends)
	message += fmt.Sprintf("Duration: %s\n", escapeMarkdownV2(s.Duration.Round(time.Millisecond).String()))
	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}

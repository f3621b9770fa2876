package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dvoretskiyy/UKZTrainMonitor/internal/domain/repository"
	"github.com/dvoretskiyy/UKZTrainMonitor/pkg/logger"
)

// BotSender delivers messages through the Telegram Bot API. It is the
// primary notification channel.
type BotSender struct {
	logger     logger.Logger
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewBotSender creates a new Telegram bot sender
func NewBotSender(token string, log logger.Logger) repository.MessageSender {
	return &BotSender{
		logger:     log,
		baseURL:    "https://api.telegram.org",
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type sendMessageRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends an HTML-formatted message to a chat
func (s *BotSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	body := sendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	defer resp.Body.Close()

	var response struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.OK {
		return fmt.Errorf("telegram API returned status %d: %s", resp.StatusCode, response.Description)
	}

	s.logger.Info("Sent message", "chatId", chatID)
	return nil
}

package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"sync"

	"signal_bot/internal/models"
	"signal_bot/internal/modules/config"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const (
	anthropicURL     = "https://api.anthropic.com/v1/messages"
	anthropicVersion = "2023-06-01"
	openaiURL        = "https://api.openai.com/v1/chat/completions"
)

// SignalContext exposes the active registry to the conversational tier,
// so replies can mention what is currently tracked.
type SignalContext interface {
	ActiveInstruments() []string
}

// Client talks to both AI providers and keeps per-user conversation history.
type Client struct {
	cfg     *config.Config
	http    *http.Client
	signals SignalContext

	mu      sync.Mutex
	history map[int64][]models.ChatMessage
}

func NewClient(cfg *config.Config, signals SignalContext) *Client {
	return &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.AI.Timeout},
		signals: signals,
		history: make(map[int64][]models.ChatMessage),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicComplete — один запрос к messages API, без стриминга и ретраев.
func (c *Client) anthropicComplete(
	ctx context.Context,
	system string,
	msgs []chatMessage,
	maxTokens int,
) (string, error) {
	body := map[string]any{
		"model":      c.cfg.AI.AnthropicModel,
		"max_tokens": maxTokens,
		"messages":   msgs,
	}
	if system != "" {
		body["system"] = system
	}

	payload, err := sonic.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "anthropic marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, anthropicURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "anthropic new request")
	}
	req.Header.Set("x-api-key", c.cfg.AI.AnthropicKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "anthropic do")
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return "", errors.Errorf("anthropic http %d: %s", resp.StatusCode, string(data))
	}

	var r struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := sonic.Unmarshal(data, &r); err != nil {
		return "", errors.Wrapf(err, "anthropic decode; body=%s", string(data))
	}
	if len(r.Content) == 0 {
		return "", errors.Errorf("anthropic: empty content RAW=%s", string(data))
	}

	return r.Content[0].Text, nil
}

// openaiComplete — chat completions, один запрос.
func (c *Client) openaiComplete(
	ctx context.Context,
	msgs []chatMessage,
	maxTokens int,
	temperature float64,
) (string, error) {
	body := map[string]any{
		"model":       c.cfg.AI.OpenAIModel,
		"messages":    msgs,
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}

	payload, err := sonic.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "openai marshal")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiURL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "openai new request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AI.OpenAIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "openai do")
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode/100 != 2 {
		return "", errors.Errorf("openai http %d: %s", resp.StatusCode, string(data))
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := sonic.Unmarshal(data, &r); err != nil {
		return "", errors.Wrapf(err, "openai decode; body=%s", string(data))
	}
	if len(r.Choices) == 0 {
		return "", errors.Errorf("openai: empty choices RAW=%s", string(data))
	}

	return r.Choices[0].Message.Content, nil
}

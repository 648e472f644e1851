package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/rbarros/fintrack/internal/llm"
)

const apiVersion = "2023-06-01"

// Config for the Anthropic client.
type Config struct {
	APIKey  string
	BaseURL string        // default https://api.anthropic.com
	Model   string        // e.g., "claude-3-sonnet-20240229"
	Timeout time.Duration // http client timeout
}

type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.anthropic.com"
	}
	if cfg.Model == "" {
		cfg.Model = "claude-3-sonnet-20240229"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Complete implements llm.ChatClient via the Messages API. The system
// instruction is a top-level field, not a message.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	start := time.Now()
	c.logger.Info("anthropic.complete.start", "model", c.cfg.Model, "user_chars", len(user))

	body := map[string]any{
		"model":       c.cfg.Model,
		"temperature": llm.Temperature,
		"max_tokens":  llm.MaxOutputTokens,
		"system":      system,
		"messages": []map[string]any{
			{"role": "user", "content": user},
		},
	}

	b, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", c.cfg.APIKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("anthropic.complete.http_error",
			"error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("anthropic http error: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("anthropic response body close error", "error", err)
		}
	}()

	buf := new(bytes.Buffer)
	_, _ = buf.ReadFrom(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("anthropic status %d: %s", resp.StatusCode, buf.String())
	}

	var mr struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(buf.Bytes(), &mr); err != nil {
		return "", fmt.Errorf("decode anthropic response: %w", err)
	}
	if len(mr.Content) == 0 {
		return "", fmt.Errorf("no content in anthropic response")
	}

	c.logger.Info("anthropic.complete.ok",
		"model", c.cfg.Model, "elapsed_ms", time.Since(start).Milliseconds())
	return strings.TrimSpace(mr.Content[0].Text), nil
}

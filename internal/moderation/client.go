package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/civicdev/civicboard/internal/config"
	"github.com/civicdev/civicboard/pkg/logger"
	"github.com/civicdev/civicboard/pkg/utils"
)

// DefaultTimeout bounds the classifier call when no timeout is configured.
const DefaultTimeout = 2 * time.Second

type chatRequest struct {
	Prompt string `json:"prompt"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// Client calls the SLM classifier endpoint. Every failure mode degrades to a
// not-flagged verdict: availability beats moderation strictness when the
// classifier is unreachable.
type Client struct {
	HTTP    *http.Client
	BaseURL string
	APIKey  string
	Enabled bool
	Timeout time.Duration
	Logger  *logger.Logger
}

func NewClient(cfg config.Moderation, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP:    &http.Client{},
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Enabled: cfg.Enabled,
		Timeout: timeout,
		Logger:  log,
	}
}

// Evaluate classifies the given comment content. It never returns an error:
// when moderation is disabled or the call fails in any way, the zero verdict
// (not flagged) comes back.
func (c *Client) Evaluate(ctx context.Context, content string) Verdict {
	if !c.Enabled {
		return Verdict{}
	}

	body, err := json.Marshal(chatRequest{Prompt: content})
	if err != nil {
		return Verdict{}
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		c.warn(ctx, "Failed to build classifier request", err)
		return Verdict{}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.warn(ctx, "Classifier unreachable, failing open", err)
		return Verdict{}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.Logger != nil {
			c.Logger.Warn(ctx).WithMeta(utils.Map{
				"status": resp.Status,
			}).Logs("Classifier returned non-success status, failing open")
		}
		return Verdict{}
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		c.warn(ctx, "Failed to decode classifier response, failing open", err)
		return Verdict{}
	}

	return Normalize(cr.Response)
}

func (c *Client) warn(ctx context.Context, msg string, err error) {
	if c.Logger != nil {
		c.Logger.Warn(ctx).WithMeta(utils.Map{"error": err.Error()}).Logs(msg)
	}
}

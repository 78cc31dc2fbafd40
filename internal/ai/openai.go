package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// OpenAICompatClient talks to any OpenAI-compatible chat completions API.
// Both hosted models (primary and fallback) are addressed through the same
// gateway; the model name on the request selects between them.
type OpenAICompatClient struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	MaxRetries int
	Cache      Cache
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatPayload struct {
	Model          string         `json:"model"`
	Temperature    float64        `json:"temperature"`
	MaxTokens      int            `json:"max_tokens,omitempty"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

func (c OpenAICompatClient) Complete(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", &ModelError{Model: req.Model, Err: fmt.Errorf("OPENAI_BASE_URL is not set")}
	}
	if strings.TrimSpace(req.Model) == "" {
		return "", &ModelError{Model: req.Model, Err: fmt.Errorf("model is not set")}
	}

	key := cacheKey(req)
	if req.JSONOutput && c.Cache != nil {
		if v, ok := c.Cache.Get(ctx, key); ok {
			return v, nil
		}
	}

	payload := chatPayload{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.System != "" {
		payload.Messages = append(payload.Messages, chatMessage{Role: "system", Content: req.System})
	}
	payload.Messages = append(payload.Messages, chatMessage{Role: "user", Content: req.Prompt})
	if req.JSONOutput {
		payload.ResponseFormat = map[string]any{"type": "json_object"}
	}
	b, _ := json.Marshal(payload)

	var answer string
	operation := func() error {
		text, err := c.doRequest(ctx, b)
		if err != nil {
			return err
		}
		answer = text
		return nil
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.MaxRetries)), ctx)
	if err := backoff.Retry(operation, bo); err != nil {
		var rle RateLimitError
		if errors.As(err, &rle) {
			return "", rle
		}
		return "", &ModelError{Model: req.Model, Err: err}
	}

	if req.JSONOutput && c.Cache != nil {
		c.Cache.Set(ctx, key, answer)
	}
	return answer, nil
}

func (c OpenAICompatClient) doRequest(ctx context.Context, body []byte) (string, error) {
	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.TrimSpace(c.APIKey) != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining > 0 && remaining < timeout {
			timeout = remaining
		}
	}
	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("model request timed out")
		}
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return "", fmt.Errorf("model request timed out")
		}
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errBody map[string]any
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		if resp.StatusCode == http.StatusTooManyRequests {
			// Surface immediately so the caller can honor RetryAfter;
			// the generic schedule would ignore the hint.
			return "", backoff.Permanent(RateLimitError{RetryAfter: extractRetryAfter(errBody)})
		}
		err := fmt.Errorf("model http error: %s: %v", resp.Status, errBody)
		if resp.StatusCode < 500 {
			return "", backoff.Permanent(err)
		}
		return "", err
	}

	var res struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return "", err
	}
	if len(res.Choices) == 0 {
		return "", backoff.Permanent(ErrEmptyResponse)
	}
	return res.Choices[0].Message.Content, nil
}

func extractRetryAfter(errBody map[string]any) time.Duration {
	errObj, ok := errBody["error"].(map[string]any)
	if !ok {
		return 0
	}
	details, ok := errObj["details"].([]any)
	if !ok {
		return 0
	}
	for _, d := range details {
		m, ok := d.(map[string]any)
		if !ok {
			continue
		}
		if t, ok := m["@type"].(string); ok && strings.Contains(t, "RetryInfo") {
			if s, ok := m["retryDelay"].(string); ok {
				if dur, err := time.ParseDuration(s); err == nil {
					return dur
				}
			}
		}
	}
	return 0
}

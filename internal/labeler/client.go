package labeler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"visual-scout/internal/logging"
)

const (
	defaultBaseURL     = "https://api.openai.com/v1/chat/completions"
	defaultModel       = "gpt-4o-mini"
	defaultHTTPTimeout = 60 * time.Second
	retryMaxAttempts   = 3
)

// Config captures the runtime settings required to talk to the labeling
// API. The endpoint speaks the OpenAI chat completions protocol.
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	TimeoutSeconds int
}

// Client labels grid images through a vision-capable chat model.
type Client struct {
	cfg        Config
	httpClient *http.Client

	maxAttempts int
	sleeper     func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMaxAttempts overrides the retry count (defaults to 3).
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient constructs a labeling client from configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: retryMaxAttempts,
		sleeper:     time.Sleep,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	return client
}

// Labels is the structured response for one grid image.
type Labels struct {
	Labels []string `json:"labels"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// LabelGrid sends one grid image for labeling, retrying transient
// failures with linear backoff. A model refusal is surfaced as a
// warning label rather than an error so one grid cannot sink a batch.
func (c *Client) LabelGrid(ctx context.Context, imagePath string) (Labels, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return Labels{}, fmt.Errorf("read grid image: %w", err)
	}

	payload, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{{
			Role: "user",
			Content: []contentPart{
				{Type: "text", Text: labelPrompt},
				{Type: "image_url", ImageURL: &imageURL{
					URL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(data),
				}},
			},
		}},
		MaxTokens:      4096,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return Labels{}, fmt.Errorf("encode request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		labels, retryable, err := c.attempt(ctx, payload)
		if err == nil {
			return labels, nil
		}
		lastErr = err
		if !retryable || attempt == c.maxAttempts {
			break
		}
		delay := time.Duration(2*attempt) * time.Second
		logging.Warn("labeling attempt %d failed: %v, retrying in %v", attempt, err, delay)
		c.sleeper(delay)
	}
	return Labels{}, fmt.Errorf("labeling failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) attempt(ctx context.Context, payload []byte) (Labels, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return Labels{}, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Labels{}, true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Labels{}, true, err
	}

	if resp.StatusCode != http.StatusOK {
		retryable := resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests
		return Labels{}, retryable, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Labels{}, false, fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return Labels{}, true, fmt.Errorf("api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return Labels{}, true, fmt.Errorf("empty choices in response")
	}

	msg := parsed.Choices[0].Message
	if msg.Refusal != "" {
		return Labels{Labels: []string{"Warning: labeling refused: " + msg.Refusal}}, false, nil
	}

	var labels Labels
	if err := json.Unmarshal([]byte(msg.Content), &labels); err != nil {
		return Labels{}, false, fmt.Errorf("decode labels payload: %w", err)
	}
	return labels, false, nil
}

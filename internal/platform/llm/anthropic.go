package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/docugraph/docugraph-backend/internal/pkg/httpx"
	"github.com/docugraph/docugraph-backend/internal/platform/envutil"
	"github.com/docugraph/docugraph-backend/internal/platform/logger"
)

const anthropicVersion = "2023-06-01"

type anthropicClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
	maxRetries int
}

func NewAnthropic(log *logger.Logger) (Client, error) {
	apiKey := envutil.String("ANTHROPIC_API_KEY", "")
	if apiKey == "" {
		return nil, fmt.Errorf("missing ANTHROPIC_API_KEY")
	}

	baseURL := strings.TrimRight(envutil.String("ANTHROPIC_BASE_URL", "https://api.anthropic.com"), "/")
	model := envutil.String("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest")
	maxTokens := envutil.Int("ANTHROPIC_MAX_TOKENS", 10240)
	timeout := time.Duration(envutil.Int("ANTHROPIC_TIMEOUT_SECONDS", 120)) * time.Second
	maxRetries := envutil.Int("ANTHROPIC_MAX_RETRIES", 3)

	return &anthropicClient{
		log:        log.With("client", "Anthropic", "model", model),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}, nil
}

func (c *anthropicClient) Close() error { return nil }

type anthropicRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"content"`
}

func (c *anthropicClient) Generate(ctx context.Context, prompt string) (string, error) {
	req := anthropicRequest{Model: c.model, MaxTokens: c.maxTokens}
	req.Messages = []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{{Role: "user", Content: prompt}}

	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	backoff := time.Second
	for attempt := 0; ; attempt++ {
		raw, resp, err := c.once(ctx, payload)
		if err == nil {
			var parsed anthropicResponse
			if err := json.Unmarshal(raw, &parsed); err != nil {
				return "", fmt.Errorf("anthropic generate: decode: %w", err)
			}
			var out strings.Builder
			for _, part := range parsed.Content {
				if part.Type == "text" {
					out.WriteString(part.Text)
				}
			}
			text := strings.TrimSpace(out.String())
			if text == "" {
				return "", fmt.Errorf("anthropic generate: empty output")
			}
			return text, nil
		}
		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			return "", fmt.Errorf("anthropic generate: %w", err)
		}
		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("Anthropic request retrying",
			"attempt", attempt+1,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(sleepFor):
		}
		backoff *= 2
	}
}

func (c *anthropicClient) once(ctx context.Context, payload []byte) ([]byte, *http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp, &httpx.StatusError{Status: resp.StatusCode, Body: truncate(string(raw), 512)}
	}
	return raw, resp, nil
}

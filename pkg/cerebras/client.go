package cerebras

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultAPIURL = "https://api.cerebras.ai/v1/chat/completions"

	classifyMaxTokens = 20
	maxErrorBody      = 500
)

// thinkRegex matches <think>...</think> content, including newlines.
// (?s) enables the dot (.) to match new lines.
var thinkRegex = regexp.MustCompile(`(?s)<think>.*?</think>`)

// ModelConfig defines the ID and context limits for the prioritized list.
type ModelConfig struct {
	ID     string
	MaxCtx int
}

// PrioritizedModels favours small fast models; classification replies are a
// single word.
var PrioritizedModels = []ModelConfig{
	{ID: "llama3.1-8b", MaxCtx: 8192},
	{ID: "llama-3.3-70b", MaxCtx: 65536},
	{ID: "qwen-3-32b", MaxCtx: 65536},
}

// KeyState tracks the health of an API key
type KeyState struct {
	Key          string
	FailureCount int
	LastUsed     time.Time
	LastSuccess  time.Time
}

type Client struct {
	keys        []*KeyState
	keyMu       sync.RWMutex
	client      *http.Client
	apiURL      string
	temperature float64
	topP        float64
	models      []ModelConfig
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string    `json:"model"`
	Stream      bool      `json:"stream"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	TopP        float64   `json:"top_p"`
	Messages    []Message `json:"messages"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type Choice struct {
	Message Message `json:"message"`
}

type Response struct {
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// APIError captures non-200 responses to allow inspection of the status code.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := e.Body
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody] + "... (truncated)"
	}
	return fmt.Sprintf("api status %d: %s", e.StatusCode, body)
}

// NewClient creates a client with support for multiple API keys (comma-separated)
// Keys are rotated based on failure count (least failures first)
func NewClient(apiKeys string, temperature, topP float64, models []ModelConfig) *Client {
	if len(models) == 0 {
		models = PrioritizedModels
	}

	keyStrings := strings.Split(apiKeys, ",")
	keys := make([]*KeyState, 0, len(keyStrings))
	for _, k := range keyStrings {
		k = strings.TrimSpace(k)
		if k != "" {
			keys = append(keys, &KeyState{Key: k})
		}
	}

	if len(keys) == 0 {
		zap.S().Warn("no Cerebras API keys provided")
	} else {
		zap.S().Infow("loaded Cerebras API keys", "count", len(keys))
	}

	return &Client{
		keys: keys,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiURL:      DefaultAPIURL,
		temperature: temperature,
		topP:        topP,
		models:      models,
	}
}

// SetAPIURL points the client at a different OpenAI-compatible endpoint.
func (c *Client) SetAPIURL(url string) {
	if url != "" {
		c.apiURL = url
	}
}

// getBestKey returns the API key with the least failures
func (c *Client) getBestKey() *KeyState {
	c.keyMu.RLock()
	defer c.keyMu.RUnlock()

	if len(c.keys) == 0 {
		return nil
	}

	best := c.keys[0]
	for _, k := range c.keys[1:] {
		if k.FailureCount < best.FailureCount {
			best = k
		}
	}
	return best
}

// recordSuccess marks a key as successful
func (c *Client) recordSuccess(key *KeyState) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	key.LastSuccess = time.Now()
	key.LastUsed = time.Now()
	// gradual recovery
	if key.FailureCount > 0 {
		key.FailureCount--
	}
}

// recordFailure marks a key as failed
func (c *Client) recordFailure(key *KeyState) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	key.FailureCount++
	key.LastUsed = time.Now()
}

// Complete sends a system and user message and returns the reply text.
// Uses key rotation (least failures first) and model fallback.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	messages := []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	}
	var lastErr error

	keyState := c.getBestKey()
	if keyState == nil {
		return "", fmt.Errorf("no API keys configured")
	}

	for _, modelConf := range c.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		zap.S().Debugw("attempting model", "model", modelConf.ID, "key_failures", keyState.FailureCount)
		reqBody := Request{
			Model:       modelConf.ID,
			Stream:      false,
			MaxTokens:   classifyMaxTokens,
			Temperature: c.temperature,
			TopP:        c.topP,
			Messages:    messages,
		}

		start := time.Now()
		content, usage, err := c.makeRequestWithKey(ctx, reqBody, keyState.Key)
		if err == nil {
			c.recordSuccess(keyState)
			zap.S().Infow("model success", "model", modelConf.ID, "took", time.Since(start),
				"input_tokens", usage.PromptTokens, "output_tokens", usage.CompletionTokens)
			return content, nil
		}

		var apiErr *APIError
		if errors.As(err, &apiErr) {
			if apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden {
				c.recordFailure(keyState)
				nextKey := c.getBestKey()
				if nextKey != nil && nextKey != keyState {
					zap.S().Warnw("key rate limited or rejected, trying another key", "status", apiErr.StatusCode)
					keyState = nextKey
					content, usage, err = c.makeRequestWithKey(ctx, reqBody, keyState.Key)
					if err == nil {
						c.recordSuccess(keyState)
						zap.S().Infow("model success with alternate key", "model", modelConf.ID, "took", time.Since(start),
							"input_tokens", usage.PromptTokens, "output_tokens", usage.CompletionTokens)
						return content, nil
					}
				}
			}
			lastErr = fmt.Errorf("model %s failed with status %d: %w", modelConf.ID, apiErr.StatusCode, apiErr)
		} else {
			lastErr = fmt.Errorf("model %s network error: %w", modelConf.ID, err)
		}
	}

	c.recordFailure(keyState)
	return "", fmt.Errorf("all models exhausted. Last error: %w", lastErr)
}

func (c *Client) makeRequestWithKey(ctx context.Context, reqBody Request, apiKey string) (string, Usage, error) {
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", Usage{}, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", Usage{}, &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
		}
	}

	var apiResp Response
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", Usage{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("no choices in response")
	}

	content := apiResp.Choices[0].Message.Content
	content = thinkRegex.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	if len(content) >= 2 && strings.HasPrefix(content, "\"") && strings.HasSuffix(content, "\"") {
		content = strings.TrimSpace(content[1 : len(content)-1])
	}

	return content, apiResp.Usage, nil
}

package nvidia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://integrate.api.nvidia.com/v1"
)

type ModelConfig struct {
	ID       string
	MaxCtx   int
	MaxToken int
}

var DefaultModels = []ModelConfig{
	{ID: "meta/llama-3.1-8b-instruct", MaxCtx: 131072, MaxToken: 32},
	{ID: "meta/llama-3.3-70b-instruct", MaxCtx: 131072, MaxToken: 32},
}

type KeyState struct {
	Key          string
	FailureCount int
	LastUsed     time.Time
	LastSuccess  time.Time
}

type Client struct {
	keys        []*KeyState
	keyMu       sync.RWMutex
	clients     map[string]openai.Client
	clientsMu   sync.RWMutex
	baseURL     string
	temperature float64
	topP        float64
	models      []ModelConfig
}

func NewClient(apiKeys, baseURL string, temperature, topP float64, models []ModelConfig) *Client {
	if len(models) == 0 {
		models = DefaultModels
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
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
		zap.S().Warn("no NVIDIA API keys provided")
	} else {
		zap.S().Infow("loaded NVIDIA API keys", "count", len(keys))
	}

	return &Client{
		keys:        keys,
		clients:     make(map[string]openai.Client),
		baseURL:     baseURL,
		temperature: temperature,
		topP:        topP,
		models:      models,
	}
}

func (c *Client) getClient(key string) openai.Client {
	c.clientsMu.RLock()
	if client, ok := c.clients[key]; ok {
		c.clientsMu.RUnlock()
		return client
	}
	c.clientsMu.RUnlock()

	c.clientsMu.Lock()
	defer c.clientsMu.Unlock()

	client := openai.NewClient(
		option.WithBaseURL(c.baseURL),
		option.WithAPIKey(key),
		option.WithMaxRetries(0),
	)
	c.clients[key] = client
	return client
}

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

func (c *Client) recordSuccess(key *KeyState) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	key.LastSuccess = time.Now()
	key.LastUsed = time.Now()
	if key.FailureCount > 0 {
		key.FailureCount--
	}
}

func (c *Client) recordFailure(key *KeyState) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	key.FailureCount++
	key.LastUsed = time.Now()
}

// Complete runs a single system+user exchange across the configured models,
// rotating keys on rate-limit and auth failures.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	keyState := c.getBestKey()
	if keyState == nil {
		return "", fmt.Errorf("no API keys configured")
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
		openai.UserMessage(user),
	}

	var lastErr error
	for _, modelConf := range c.models {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		params := openai.ChatCompletionNewParams{
			Model:       shared.ChatModel(modelConf.ID),
			Messages:    messages,
			Temperature: openai.Float(c.temperature),
			TopP:        openai.Float(c.topP),
		}
		if modelConf.MaxToken > 0 {
			params.MaxTokens = openai.Int(int64(modelConf.MaxToken))
		}

		start := time.Now()
		resp, err := c.getClient(keyState.Key).Chat.Completions.New(ctx, params)
		if err != nil && isRateLimitOrAuthError(err) {
			c.recordFailure(keyState)
			nextKey := c.getBestKey()
			if nextKey != nil && nextKey != keyState {
				zap.S().Warnw("NVIDIA key rate limited or rejected, trying another key", "model", modelConf.ID)
				keyState = nextKey
				resp, err = c.getClient(keyState.Key).Chat.Completions.New(ctx, params)
			}
		}
		if err != nil {
			zap.S().Warnw("NVIDIA model failed", "model", modelConf.ID, "error", err)
			lastErr = err
			continue
		}

		if resp == nil || len(resp.Choices) == 0 {
			lastErr = fmt.Errorf("empty response from model %s", modelConf.ID)
			continue
		}

		c.recordSuccess(keyState)
		zap.S().Infow("NVIDIA model success", "model", modelConf.ID, "took", time.Since(start),
			"input_tokens", resp.Usage.PromptTokens, "output_tokens", resp.Usage.CompletionTokens)
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}

	c.recordFailure(keyState)
	return "", fmt.Errorf("all NVIDIA models exhausted. Last error: %w", lastErr)
}

func isRateLimitOrAuthError(err error) bool {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusUnauthorized, http.StatusForbidden:
			return true
		}
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "unauthorized")
}

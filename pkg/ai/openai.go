package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openAIBaseURL     = "https://api.openai.com/v1"
	deepSeekBaseURL   = "https://api.deepseek.com"
	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// OpenAICompatibleClient implements ChatProvider for OpenAI-style
// chat-completion APIs. OpenAI, DeepSeek and OpenRouter differ only in base
// URL and model namespace, so one client covers all three.
type OpenAICompatibleClient struct {
	provider   ProviderType
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAICompatibleClient creates a client for one of the cloud providers.
// An empty baseURL selects the provider's public endpoint.
func NewOpenAICompatibleClient(provider ProviderType, apiKey, baseURL string) *OpenAICompatibleClient {
	if baseURL == "" {
		switch provider {
		case ProviderDeepSeek:
			baseURL = deepSeekBaseURL
		case ProviderOpenRouter:
			baseURL = openRouterBaseURL
		default:
			baseURL = openAIBaseURL
		}
	}
	return &OpenAICompatibleClient{
		provider: provider,
		apiKey:   apiKey,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CompleteChat implements ChatProvider
func (c *OpenAICompatibleClient) CompleteChat(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", &ProviderError{
			Kind:    ErrConfigMissing,
			Message: fmt.Sprintf("no API key configured for provider %s", c.provider),
		}
	}

	payload := chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{
			Kind:    classifyTransportError(err),
			Message: fmt.Sprintf("%s request failed", c.provider),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{
			Kind:    ErrConnection,
			Message: "failed to read response body",
			Err:     err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Kind:    classifyStatus(resp.StatusCode, string(respBody)),
			Message: fmt.Sprintf("%s API error (%d): %s", c.provider, resp.StatusCode, truncateBody(respBody)),
		}
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &ProviderError{
			Kind:    ErrUnknown,
			Message: "failed to decode provider response",
			Err:     err,
		}
	}

	if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
		return "", &ProviderError{
			Kind:    ErrEmptyResponse,
			Message: fmt.Sprintf("%s returned an empty completion", c.provider),
		}
	}

	return result.Choices[0].Message.Content, nil
}

func truncateBody(body []byte) string {
	const max = 500
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

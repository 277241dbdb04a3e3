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

// OllamaClient implements ChatProvider against a local Ollama server.
// Local inference is slow, so the timeout is longer than the cloud clients'.
type OllamaClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOllamaClient creates a new Ollama client
func NewOllamaClient(baseURL string) *OllamaClient {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ollamaChatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type ollamaChatResponse struct {
	Message struct {
		Content string `json:"content"`
	} `json:"message"`
}

// CompleteChat implements ChatProvider. Ollama needs no API key.
func (o *OllamaClient) CompleteChat(ctx context.Context, model, systemPrompt, userPrompt string) (string, error) {
	payload := ollamaChatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/api/chat", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{
			Kind:    classifyTransportError(err),
			Message: "ollama request failed",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{
			Kind:    ErrConnection,
			Message: "failed to read ollama response",
			Err:     err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{
			Kind:    classifyStatus(resp.StatusCode, string(respBody)),
			Message: fmt.Sprintf("ollama API error (%d): %s", resp.StatusCode, truncateBody(respBody)),
		}
	}

	var result ollamaChatResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", &ProviderError{
			Kind:    ErrUnknown,
			Message: "failed to decode ollama response",
			Err:     err,
		}
	}

	if result.Message.Content == "" {
		return "", &ProviderError{
			Kind:    ErrEmptyResponse,
			Message: "ollama returned an empty completion",
		}
	}

	return result.Message.Content, nil
}

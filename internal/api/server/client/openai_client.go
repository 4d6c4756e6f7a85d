package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bz888/nopickles/internal/logger"
)

// OpenAIClient represents a client for the OpenAI chat completions API
type OpenAIClient struct {
	Client
	apiKey string
	model  string
}

var DefaultOpenAIConfig = ClientConfig{
	Scheme:   "https",
	Host:     "api.openai.com",
	ChatPath: "/v1/chat/completions",
}

// NewOpenAIClient creates a new OpenAI API client. An empty apiKey is allowed;
// requests then fail upstream with 401.
func NewOpenAIClient(config ClientConfig, apiKey, model string) *OpenAIClient {
	return &OpenAIClient{
		Client: *NewClient(config),
		apiKey: apiKey,
		model:  model,
	}
}

type OpenAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []OpenAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
}

type OpenAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIChatResponse struct {
	ID      string             `json:"id"`
	Object  string             `json:"object"`
	Created int64              `json:"created"`
	Model   string             `json:"model"`
	Choices []OpenAIChatChoice `json:"choices"`
	Usage   *OpenAIUsage       `json:"usage,omitempty"`
}

type OpenAIChatChoice struct {
	Index        int               `json:"index"`
	Message      OpenAIChatMessage `json:"message"`
	FinishReason *string           `json:"finish_reason,omitempty"`
}

type OpenAIUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

func (c *OpenAIClient) Model() string { return c.model }

// Complete makes a non-streaming chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	localLogger := logger.NewLogger("openai chat")

	apiReq := OpenAIChatRequest{
		Model:       c.model,
		Messages:    make([]OpenAIChatMessage, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	for i, m := range req.Messages {
		apiReq.Messages[i] = OpenAIChatMessage{Role: string(m.Role), Content: m.Content}
	}

	bts, err := json.Marshal(apiReq)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GetChatURL(), bytes.NewReader(bts))
	if err != nil {
		localLogger.Error("Failed to build openai chat request:", err)
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+c.apiKey)

	response, err := c.http.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.NewDecoder(response.Body).Decode(&errResp); err != nil {
			localLogger.Error("Failed to decode error response:", err)
			return "", fmt.Errorf("received non-200 response: %d, failed to decode error message", response.StatusCode)
		}

		errorMessage := errResp.Error.Message
		if errorMessage == "" {
			errorMessage = "unknown error"
		}
		localLogger.Error("Received error response:", errorMessage)
		return "", fmt.Errorf("received non-200 response: %d, error: %s", response.StatusCode, errorMessage)
	}

	var apiResp OpenAIChatResponse
	if err := json.NewDecoder(response.Body).Decode(&apiResp); err != nil {
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(apiResp.Choices) == 0 {
		return "", errors.New("openai response has no choices")
	}
	if apiResp.Usage != nil {
		localLogger.Info("Tokens used: ", apiResp.Usage.TotalTokens)
	}
	return apiResp.Choices[0].Message.Content, nil
}

var _ ChatClient = (*OpenAIClient)(nil)

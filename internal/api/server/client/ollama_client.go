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

// OllamaClient represents a client for a local Ollama server
type OllamaClient struct {
	Client
	model string
}

// OllamaConfig returns the endpoints of an Ollama server listening on host.
func OllamaConfig(host string) ClientConfig {
	return ClientConfig{
		Scheme:   "http",
		Host:     host,
		ChatPath: "/api/chat",
	}
}

// NewOllamaClient creates a new Ollama API client
func NewOllamaClient(config ClientConfig, model string) *OllamaClient {
	return &OllamaClient{
		Client: *NewClient(config),
		model:  model,
	}
}

type OllamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []OllamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
	Options  *OllamaOptions  `json:"options,omitempty"`
}

type OllamaOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type OllamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OllamaAPIResponse struct {
	Model     string        `json:"model"`
	CreatedAt string        `json:"created_at"`
	Message   OllamaMessage `json:"message"`
	Done      bool          `json:"done"`
	EvalCount int           `json:"eval_count"`
}

func (c *OllamaClient) Model() string { return c.model }

// Available reports whether the Ollama root endpoint answers 200.
func (c *OllamaClient) Available(ctx context.Context) bool {
	localLogger := logger.NewLogger("ollama")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.GetBaseURL(), nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		localLogger.Error("Ollama server not available:", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Complete makes a single, non-streaming chat request.
func (c *OllamaClient) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	localLogger := logger.NewLogger("ollama chat")

	apiReq := OllamaChatRequest{
		Model:    c.model,
		Messages: make([]OllamaMessage, len(req.Messages)),
		Stream:   false,
		Options: &OllamaOptions{
			Temperature: req.Temperature,
			NumPredict:  req.MaxTokens,
		},
	}
	for i, m := range req.Messages {
		apiReq.Messages[i] = OllamaMessage{Role: string(m.Role), Content: m.Content}
	}

	bts, err := json.Marshal(apiReq)
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GetChatURL(), bytes.NewReader(bts))
	if err != nil {
		localLogger.Error("Failed to request on ollama chat:", err)
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return "", err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(response.Body).Decode(&errResp)
		if errResp.Error != "" {
			return "", fmt.Errorf("received non-200 response: %d, error: %s", response.StatusCode, errResp.Error)
		}
		return "", errors.New("failed to fetch data: " + response.Status)
	}

	var apiResp OllamaAPIResponse
	if err := json.NewDecoder(response.Body).Decode(&apiResp); err != nil {
		localLogger.Error("Failed to unmarshal response:", err)
		return "", err
	}
	localLogger.Info("Completed response, eval count ", apiResp.EvalCount)
	return apiResp.Message.Content, nil
}

var _ ChatClient = (*OllamaClient)(nil)

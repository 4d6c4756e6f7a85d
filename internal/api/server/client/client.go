package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/bz888/nopickles/internal/chat"
)

const upstreamTimeout = 60 * time.Second

// CompletionRequest is what the chat handler asks of an upstream model.
type CompletionRequest struct {
	Messages    []chat.Message
	Temperature float64
	MaxTokens   int
}

// ChatClient is an upstream LLM able to answer a conversation.
type ChatClient interface {
	Model() string
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
}

// Client represents a client for the API
type Client struct {
	base    *url.URL
	http    *http.Client
	chatUrl *url.URL
}

// ClientConfig holds the configuration for the client
type ClientConfig struct {
	Scheme   string
	Host     string
	ChatPath string
}

// NewClient creates a new API client with configurable base URL and endpoints
func NewClient(config ClientConfig) *Client {
	baseURL := &url.URL{Scheme: config.Scheme, Host: config.Host}
	return &Client{
		base:    baseURL,
		http:    &http.Client{Timeout: upstreamTimeout},
		chatUrl: baseURL.ResolveReference(&url.URL{Path: config.ChatPath}),
	}
}

func (c *Client) GetBaseURL() string {
	return c.base.String()
}

func (c *Client) GetChatURL() string {
	return c.chatUrl.String()
}

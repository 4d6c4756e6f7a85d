package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/bz888/nopickles/internal/chat"
	"github.com/bz888/nopickles/internal/logger"
	"github.com/bz888/nopickles/internal/menu"
)

const (
	menuPath   = "/api/menu"
	chatPath   = "/api/chat"
	healthPath = "/health"
)

// ErrUnexpectedStatus wraps every non-2xx answer from the chat server.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Client talks to the NoPickles chat server. It satisfies menu.Fetcher and
// chat.Sender.
type Client struct {
	base *url.URL
	http *http.Client
	log  *logger.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("server url %q needs a scheme and host", baseURL)
	}

	c := &Client{
		base: base,
		http: &http.Client{},
		log:  logger.NewLogger("api client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchMenu issues GET /api/menu.
func (c *Client) FetchMenu(ctx context.Context) (menu.Menu, error) {
	var m menu.Menu
	if err := c.do(ctx, http.MethodGet, menuPath, nil, &m); err != nil {
		return menu.Menu{}, err
	}
	if m.Prices == nil {
		return menu.Menu{}, errors.New("menu response has no prices")
	}
	return m, nil
}

// Chat posts the whole history to /api/chat and returns the assistant reply.
func (c *Client) Chat(ctx context.Context, messages []chat.Message) (string, error) {
	var resp struct {
		Message *string `json:"message"`
	}
	if err := c.do(ctx, http.MethodPost, chatPath, chat.Request{Messages: messages}, &resp); err != nil {
		return "", err
	}
	if resp.Message == nil {
		return "", errors.New("chat response has no message")
	}
	return *resp.Message, nil
}

// Health checks that the server answers GET /health.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, healthPath, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		bts, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(bts)
	}

	requestURL := c.base.ResolveReference(&url.URL{Path: c.base.Path + path})
	req, err := http.NewRequestWithContext(ctx, method, requestURL.String(), body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Error("Failed to close response body: ", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn(method, " ", path, " answered ", resp.Status)
		return fmt.Errorf("%s %s: %w: %s", method, path, ErrUnexpectedStatus, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

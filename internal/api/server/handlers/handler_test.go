package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bz888/nopickles/internal/api/server/client"
	"github.com/bz888/nopickles/internal/chat"
	"github.com/bz888/nopickles/internal/menu"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Model() string {
	return "mock-model"
}

func (m *MockChatClient) Complete(ctx context.Context, req *client.CompletionRequest) (string, error) {
	args := m.Called(req)
	return args.String(0), args.Error(1)
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/menu", h.MenuHandler)
	r.POST("/api/chat", h.ChatHandler)
	r.GET("/health", h.HealthHandler)
	return r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestChatHandlerFirstTurnAddsSystemPrompt(t *testing.T) {
	mockClient := new(MockChatClient)
	m := menu.Default()
	h := NewHandler(mockClient, m)

	mockClient.On("Complete", mock.MatchedBy(func(req *client.CompletionRequest) bool {
		return len(req.Messages) == 2 &&
			req.Messages[0].Role == chat.RoleSystem &&
			req.Messages[0].Content == menu.SystemPrompt(m) &&
			req.Messages[1] == chat.Message{Role: chat.RoleUser, Content: "Do you have a salad?"} &&
			req.Temperature == 0.7 &&
			req.MaxTokens == 500
	})).Return("Yes!", nil).Once()

	rr := serve(newTestRouter(h), http.MethodPost, "/api/chat",
		`{"messages":[{"role":"user","content":"Do you have a salad?"}]}`)

	mockClient.AssertExpectations(t)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Yes!","total":null}`, rr.Body.String())
}

func TestChatHandlerLaterTurnsPassHistoryThrough(t *testing.T) {
	mockClient := new(MockChatClient)
	h := NewHandler(mockClient, menu.Default())

	history := []chat.Message{
		{Role: chat.RoleUser, Content: "One coffee"},
		{Role: chat.RoleAssistant, Content: "One coffee, $1.50."},
		{Role: chat.RoleUser, Content: "That's all"},
	}
	mockClient.On("Complete", mock.MatchedBy(func(req *client.CompletionRequest) bool {
		if len(req.Messages) != len(history) {
			return false
		}
		for i := range history {
			if req.Messages[i] != history[i] {
				return false
			}
		}
		return true
	})).Return("Your total is $1.50.", nil).Once()

	rr := serve(newTestRouter(h), http.MethodPost, "/api/chat", `{"messages":[
		{"role":"user","content":"One coffee"},
		{"role":"assistant","content":"One coffee, $1.50."},
		{"role":"user","content":"That's all"}]}`)

	mockClient.AssertExpectations(t)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Your total is $1.50.","total":null}`, rr.Body.String())
}

func TestChatHandlerUpstreamFailure(t *testing.T) {
	mockClient := new(MockChatClient)
	h := NewHandler(mockClient, menu.Default())

	mockClient.On("Complete", mock.Anything).Return("", errors.New("invalid api key")).Once()

	rr := serve(newTestRouter(h), http.MethodPost, "/api/chat",
		`{"messages":[{"role":"user","content":"hi"}]}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"detail":"Error processing chat: invalid api key"}`, rr.Body.String())
}

func TestChatHandlerRejectsMalformedBody(t *testing.T) {
	mockClient := new(MockChatClient)
	h := NewHandler(mockClient, menu.Default())
	r := newTestRouter(h)

	for _, body := range []string{``, `{`, `{"text":"hi"}`, `{"messages":"hi"}`} {
		rr := serve(r, http.MethodPost, "/api/chat", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, body)
		assert.Contains(t, rr.Body.String(), `"detail"`, body)
	}
	mockClient.AssertNotCalled(t, "Complete", mock.Anything)
}

func TestMenuHandlerKeepsDeclaredOrder(t *testing.T) {
	m := menu.Menu{
		Prices:          menu.Prices{{Name: "tea", Price: 1.5}, {Name: "bagel", Price: 3}},
		PriceMultiplier: menu.Multipliers{{Size: "small", Factor: 1}},
	}
	h := NewHandler(new(MockChatClient), m)

	rr := serve(newTestRouter(h), http.MethodGet, "/api/menu", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"prices":{"tea":1.5,"bagel":3},"price_multiplier":{"small":1}}`, rr.Body.String())
}

func TestHealthHandler(t *testing.T) {
	h := NewHandler(new(MockChatClient), menu.Default())

	rr := serve(newTestRouter(h), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"healthy","service":"nopickles-mvp"}`, rr.Body.String())
}

// Package chat keeps the conversation history of one ordering session and
// synchronizes it with the chat server.
package chat

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is the body of POST /api/chat.
type Request struct {
	Messages []Message `json:"messages" binding:"required"`
}

// Response is the success body of POST /api/chat. Total is reserved for order
// tracking and is always null today.
type Response struct {
	Message string   `json:"message"`
	Total   *float64 `json:"total"`
}

package chat

import (
	"errors"
	"fmt"
)

// FallbackReply is shown as an assistant message when a chat request fails.
// It is never added to the history.
const FallbackReply = "❌ Sorry, I encountered an error. Please make sure you have set your OpenAI API key in the .env file."

// ErrSendInFlight is returned by SendMessage while an earlier send is pending.
var ErrSendInFlight = errors.New("chat: a message is already being sent")

// RequestError covers every way a chat request can fail: transport, non-2xx
// status, or an unreadable reply.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("chat request: %v", e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

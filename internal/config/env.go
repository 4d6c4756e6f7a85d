package config

import (
	"net"
	"strings"
)

// Upstream settings read from the environment (and .env).
const (
	OpenAIKeyEnv   = "OPENAI_API_KEY"
	OpenAIModelEnv = "OPENAI_MODEL"
	OllamaHostEnv  = "OLLAMA_HOST"
	OllamaModelEnv = "OLLAMA_MODEL"
)

const (
	DefaultOpenAIModel = "gpt-3.5-turbo"
	DefaultOllamaModel = "llama3:latest"
	DefaultOllamaHost  = "localhost:11434"
)

// LocalURL turns a listen address such as ":8000" or "0.0.0.0:8000" into a URL
// reachable from the same machine.
func LocalURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + strings.TrimPrefix(addr, "http://")
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

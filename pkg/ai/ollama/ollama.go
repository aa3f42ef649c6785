package ollama

import (
	"net/http"
	"net/url"

	"github.com/ollama/ollama/api"
	"golang.org/x/sync/semaphore"
)

// ChatOllamaClient implements ai.ChatClient against a locally hosted
// Ollama server. Requests are gated by a weighted semaphore so a small
// local model is not flooded by parallel interrogation calls.
type ChatOllamaClient struct {
	chatModel string
	reqLock   *semaphore.Weighted

	Client *api.Client
}

// NewChatOllamaClientParams configures a new Ollama chat client.
type NewChatOllamaClientParams struct {
	ChatModel             string
	BaseURL               string
	MaxConcurrentRequests int64
}

// NewChatOllamaClient creates an Ollama-backed chat client. An empty
// BaseURL uses the default local endpoint.
func NewChatOllamaClient(params NewChatOllamaClientParams) (*ChatOllamaClient, error) {
	var (
		u   *url.URL
		err error
	)
	if params.BaseURL != "" {
		u, err = url.Parse(params.BaseURL)
		if err != nil {
			return nil, err
		}
	} else {
		u, err = url.Parse("http://127.0.0.1:11434")
		if err != nil {
			return nil, err
		}
	}

	maxConcurrent := params.MaxConcurrentRequests
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &ChatOllamaClient{
		chatModel: params.ChatModel,
		reqLock:   semaphore.NewWeighted(maxConcurrent),
		Client:    api.NewClient(u, http.DefaultClient),
	}, nil
}

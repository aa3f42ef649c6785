package openai

import (
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ChatOpenAIClient implements ai.ChatClient against an OpenAI-compatible
// chat completion endpoint.
type ChatOpenAIClient struct {
	chatModel string
	chatURL   string

	Client *openai.Client
}

// NewChatOpenAIClientParams configures a new OpenAI chat client. An empty
// BaseURL targets the public OpenAI API.
type NewChatOpenAIClientParams struct {
	ChatModel string
	BaseURL   string
	APIKey    string
}

// NewChatOpenAIClient creates an OpenAI-backed chat client.
func NewChatOpenAIClient(params NewChatOpenAIClientParams) *ChatOpenAIClient {
	opts := []option.RequestOption{}
	if params.APIKey != "" {
		opts = append(opts, option.WithAPIKey(params.APIKey))
	}
	if params.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(params.BaseURL))
	}
	client := openai.NewClient(opts...)

	return &ChatOpenAIClient{
		chatModel: params.ChatModel,
		chatURL:   params.BaseURL,
		Client:    &client,
	}
}

package ollama

import (
	"context"
	"fmt"

	"github.com/ollama/ollama/api"

	"github.com/parallax-vis/parallax/pkg/ai"
)

func (c *ChatOllamaClient) chat(
	ctx context.Context,
	msgs []api.Message,
	options ai.GenerateOptions,
) (string, error) {
	if err := c.reqLock.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer c.reqLock.Release(1)

	stream := false
	req := &api.ChatRequest{
		Model:    options.Model,
		Messages: msgs,
		Stream:   &stream,
		Options:  map[string]any{"temperature": options.Temperature},
	}

	var content string
	if err := c.Client.Chat(ctx, req, func(cr api.ChatResponse) error {
		content += cr.Message.Content
		return nil
	}); err != nil {
		return "", err
	}
	return content, nil
}

// GenerateCompletion sends a single-turn prompt and returns the reply.
func (c *ChatOllamaClient) GenerateCompletion(
	ctx context.Context,
	prompt string,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.GenerateOptions{
		Model:       c.chatModel,
		Temperature: 0.3,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := []api.Message{}
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sp})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: prompt})

	return c.chat(ctx, msgs, options)
}

// GenerateChat sends a multi-turn conversation and returns the
// assistant's reply.
func (c *ChatOllamaClient) GenerateChat(
	ctx context.Context,
	messages []ai.ChatMessage,
	opts ...ai.GenerateOption,
) (string, error) {
	options := ai.GenerateOptions{
		Model:       c.chatModel,
		Temperature: 0.3,
	}
	for _, o := range opts {
		o(&options)
	}

	msgs := []api.Message{}
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sp})
	}
	for _, m := range messages {
		role := "user"
		if m.Role == "assistant" {
			role = "assistant"
		}
		msgs = append(msgs, api.Message{Role: role, Content: m.Message})
	}

	return c.chat(ctx, msgs, options)
}

// GenerateCompletionWithFormat requests JSON output and parses it into
// out. Ollama has no strict schema mode, so the schema rides along in the
// prompt and the reply goes through the flexible unmarshal path.
func (c *ChatOllamaClient) GenerateCompletionWithFormat(
	ctx context.Context,
	name string,
	description string,
	prompt string,
	out any,
	opts ...ai.GenerateOption,
) error {
	options := ai.GenerateOptions{
		Model:       c.chatModel,
		Temperature: 0.1,
	}
	for _, o := range opts {
		o(&options)
	}

	schema := ai.GenerateSchema(out)
	framed := fmt.Sprintf(
		"%s\n\nRespond with JSON only, matching this schema (%s: %s):\n%v",
		prompt, name, description, schema,
	)

	msgs := []api.Message{}
	for _, sp := range options.SystemPrompts {
		msgs = append(msgs, api.Message{Role: "system", Content: sp})
	}
	msgs = append(msgs, api.Message{Role: "user", Content: framed})

	reply, err := c.chat(ctx, msgs, options)
	if err != nil {
		return err
	}
	return ai.UnmarshalFlexible(reply, out)
}

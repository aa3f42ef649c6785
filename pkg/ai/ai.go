package ai

import "context"

// ChatMessage is a single turn of an interrogation conversation.
//
// Role must be one of:
//   - "user"      → a user-provided message
//   - "assistant" → a prior reply from the model
type ChatMessage struct {
	Message string `json:"message"`
	Role    string `json:"role"`
}

// GenerateOptions holds per-request generation settings.
type GenerateOptions struct {
	Model         string
	SystemPrompts []string
	Temperature   float64
}

// GenerateOption is a functional option for generation requests.
type GenerateOption func(*GenerateOptions)

// WithModel overrides the model for one request.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithSystemPrompts sets the system prompts prepended to the request.
func WithSystemPrompts(prompts ...string) GenerateOption {
	return func(o *GenerateOptions) {
		o.SystemPrompts = prompts
	}
}

// WithTemperature sets the sampling temperature. Lower values make the
// output more deterministic.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// ChatClient is the external language-model collaborator. The engine only
// ever hands it plain prompt strings and receives free text back; failures
// are expected at runtime and contained by the caller.
type ChatClient interface {
	// GenerateCompletion sends a single-turn prompt and returns the reply
	// as plain text.
	GenerateCompletion(ctx context.Context, prompt string, opts ...GenerateOption) (string, error)

	// GenerateChat sends a multi-turn conversation and returns the
	// assistant's reply.
	GenerateChat(ctx context.Context, msgs []ChatMessage, opts ...GenerateOption) (string, error)

	// GenerateCompletionWithFormat constrains the reply to the JSON shape
	// of out and unmarshals into it. name and description label the schema
	// for the model.
	GenerateCompletionWithFormat(ctx context.Context, name string, description string, prompt string, out any, opts ...GenerateOption) error
}

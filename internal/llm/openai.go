package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/mkarpov/rolefinder/internal/model"
)

// OpenAIProvider talks to the OpenAI Chat Completions API, or any
// compatible endpoint via a custom base URL (e.g. a local Ollama).
type OpenAIProvider struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// NewOpenAIProvider creates the provider. A base URL without an API key
// is allowed for local endpoints.
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("openai: API key or base URL required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Summarize implements Provider.
func (p *OpenAIProvider) Summarize(ctx context.Context, resp model.SearchResponse) (*model.LLMSummary, error) {
	mdl := p.cfg.Model
	if mdl == "" {
		mdl = openai.GPT4oMini
	}
	maxTokens := p.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 500
	}
	timeout := time.Duration(p.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	completion, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     mdl,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize people-search outcomes in careful, probabilistic language.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(resp),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty completion")
	}

	return &model.LLMSummary{
		Provider:  p.Name(),
		Model:     mdl,
		SummaryMD: completion.Choices[0].Message.Content,
	}, nil
}

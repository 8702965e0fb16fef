package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"gorm.io/datatypes"

	"github.com/mortan11/app-prompts/config"
	"github.com/mortan11/app-prompts/internal/utils"
)

// CompletionResult is a completion API answer: the generated text plus the
// provider's token usage, kept as raw JSON for the interaction record.
type CompletionResult struct {
	Text  string
	Usage datatypes.JSON
}

// CompletionGateway generates text for a filled prompt. It is the only
// external call in the execute flow; a failure here must leave no trace in
// the store.
type CompletionGateway interface {
	Complete(ctx context.Context, model, prompt string) (*CompletionResult, error)
}

// Gateway is the process-wide completion gateway, set up by the router and
// replaced by a fake in tests.
var Gateway CompletionGateway

var ErrGatewayNotConfigured = errors.New("completion gateway is not configured")

// OpenAIGateway implements CompletionGateway on the OpenAI chat API.
type OpenAIGateway struct {
	client openai.Client
	model  string
}

func NewOpenAIGateway(cfg *config.Config) *OpenAIGateway {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithHTTPClient(utils.NewHTTPClient(120 * time.Second)),
	}
	if cfg.OpenAIBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAIBaseURL))
	}

	return &OpenAIGateway{
		client: openai.NewClient(opts...),
		model:  cfg.OpenAIModel,
	}
}

func (g *OpenAIGateway) Complete(ctx context.Context, model, prompt string) (*CompletionResult, error) {
	if model == "" {
		model = g.model
	}

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("completion API returned no choices")
	}

	usage, err := json.Marshal(resp.Usage)
	if err != nil {
		usage = nil
	}

	return &CompletionResult{
		Text:  resp.Choices[0].Message.Content,
		Usage: usage,
	}, nil
}

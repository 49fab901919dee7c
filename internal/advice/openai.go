package advice

import (
	"context"
	"errors"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/models"
)

// OpenAIClient wraps go-openai with the fixed model and token cap. The proxy
// uses it for its upstream call too.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient builds a client for apiKey. An empty baseURL targets the
// public API; a nil httpClient uses go-openai's default.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *OpenAIClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}
}

// Complete sends msgs with the system prompt prepended. Structured API errors
// come back as KindUpstream carrying the upstream message; anything else is
// KindTransport.
func (c *OpenAIClient) Complete(ctx context.Context, msgs []Message) (string, error) {
	full := WithSystemPrompt(msgs)
	req := openai.ChatCompletionRequest{
		Model:     constants.OpenAIModel,
		MaxTokens: constants.OpenAIMaxTokens,
		Messages:  make([]openai.ChatCompletionMessage, 0, len(full)),
	}
	for _, m := range full {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", upstreamError(apiErr.Message, "AI response failed")
		}
		return "", transportError(err)
	}
	if len(resp.Choices) == 0 {
		return constants.FallbackReply, nil
	}
	return orFallback(resp.Choices[0].Message.Content), nil
}

// OpenAI calls the chat completions API directly with the user's key.
type OpenAI struct {
	client *OpenAIClient
}

func (o *OpenAI) Name() models.Provider { return models.ProviderOpenAI }

func (o *OpenAI) SendChat(ctx context.Context, _ models.Post, messages []Message) (string, error) {
	return o.client.Complete(ctx, messages)
}

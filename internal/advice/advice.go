// Package advice sends a post's conversation to one of the supported chat
// backends and returns the assistant's reply.
package advice

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/models"
)

// Message is a role-tagged chat message as every backend expects it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider obtains one assistant reply for a post's conversation.
type Provider interface {
	Name() models.Provider
	SendChat(ctx context.Context, post models.Post, messages []Message) (string, error)
}

// Config carries the endpoints the providers talk to. Zero values fall back
// to the public defaults.
type Config struct {
	ProxyURL      string
	OpenAIBaseURL string
	OllamaBaseURL string
	OllamaModel   string
	HTTPClient    *http.Client
}

func (c Config) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// New returns the provider selected by settings. It does not check whether the
// provider's credentials are present; callers gate on AISettings first.
func New(settings models.AISettings, cfg Config) (Provider, error) {
	switch settings.Provider {
	case models.ProviderHosted:
		if strings.TrimSpace(cfg.ProxyURL) == "" {
			return nil, ErrNoProxy
		}
		return &Hosted{
			baseURL:    strings.TrimRight(cfg.ProxyURL, "/"),
			accessCode: strings.TrimSpace(settings.AccessCode),
			client:     cfg.httpClient(),
		}, nil
	case models.ProviderOpenAI:
		return &OpenAI{
			client: NewOpenAIClient(strings.TrimSpace(settings.APIKey), cfg.OpenAIBaseURL, cfg.HTTPClient),
		}, nil
	case models.ProviderOllama:
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.httpClient()), nil
	}
	return nil, fmt.Errorf("unknown provider %q", settings.Provider)
}

// TopicTurn is the synthetic opening user message summarizing a post.
func TopicTurn(title, content string) Message {
	return Message{
		Role:    string(models.RoleUser),
		Content: fmt.Sprintf("%s\nTitle: %s\nContent: %s", constants.TopicPrefix, title, content),
	}
}

// BuildMessages returns the outbound conversation for post: the topic turn
// followed by every stored chat turn in order.
func BuildMessages(post models.Post) []Message {
	msgs := make([]Message, 0, len(post.AIChat)+1)
	msgs = append(msgs, TopicTurn(post.Title, post.Content))
	for _, turn := range post.AIChat {
		msgs = append(msgs, Message{Role: string(turn.Role), Content: turn.Content})
	}
	return msgs
}

// WithSystemPrompt prepends the fixed system prompt.
func WithSystemPrompt(msgs []Message) []Message {
	out := make([]Message, 0, len(msgs)+1)
	out = append(out, Message{Role: "system", Content: constants.SystemPrompt})
	return append(out, msgs...)
}

// orFallback substitutes the fallback reply for an empty answer.
func orFallback(s string) string {
	if s == "" {
		return constants.FallbackReply
	}
	return s
}

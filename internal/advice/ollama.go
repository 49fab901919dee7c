package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/models"
)

type ollamaRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type ollamaResponse struct {
	Message *Message `json:"message"`
}

// Ollama talks to a local inference server. No authorization is sent.
type Ollama struct {
	baseURL string
	model   string
	client  *http.Client
}

func NewOllama(baseURL, model string, client *http.Client) *Ollama {
	if baseURL == "" {
		baseURL = constants.OllamaBaseURL
	}
	if model == "" {
		model = constants.OllamaModel
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &Ollama{baseURL: strings.TrimRight(baseURL, "/"), model: model, client: client}
}

func (o *Ollama) Name() models.Provider { return models.ProviderOllama }

func (o *Ollama) SendChat(ctx context.Context, _ models.Post, messages []Message) (string, error) {
	body, err := json.Marshal(ollamaRequest{
		Model:    o.model,
		Messages: WithSystemPrompt(messages),
		Stream:   false,
	})
	if err != nil {
		return "", transportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", &Error{Kind: KindTransport, Message: "cannot connect to Ollama", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{
			Kind:    KindUpstream,
			Message: "cannot connect to Ollama",
			Cause:   fmt.Errorf("ollama returned %s", resp.Status),
		}
	}

	var out ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", transportError(fmt.Errorf("decode ollama response: %w", err))
	}
	if out.Message == nil {
		return constants.FallbackReply, nil
	}
	return orFallback(out.Message.Content), nil
}

// Ping checks that the server answers on its base URL.
func (o *Ollama) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status from Ollama: %s", resp.Status)
	}
	return nil
}

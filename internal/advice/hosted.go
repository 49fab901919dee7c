package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/models"
)

// Request is the Advice Proxy request body.
type Request struct {
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	AccessCode string    `json:"accessCode"`
	Messages   []Message `json:"messages,omitempty"`
}

// Response is the Advice Proxy response body. Exactly one field is set.
type Response struct {
	Content string `json:"content,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Hosted forwards the conversation to an Advice Proxy, which holds the
// upstream key.
type Hosted struct {
	baseURL    string
	accessCode string
	client     *http.Client
}

func (h *Hosted) Name() models.Provider { return models.ProviderHosted }

func (h *Hosted) SendChat(ctx context.Context, post models.Post, messages []Message) (string, error) {
	body, err := json.Marshal(Request{
		Title:      post.Title,
		Content:    post.Content,
		AccessCode: h.accessCode,
		Messages:   messages,
	})
	if err != nil {
		return "", transportError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+constants.AdvicePath, bytes.NewReader(body))
	if err != nil {
		return "", transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", transportError(fmt.Errorf("decode proxy response (%s): %w", resp.Status, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{
			Kind:    KindUpstream,
			Message: nonEmpty(out.Error, "connection failed"),
			Cause:   fmt.Errorf("proxy returned %s", resp.Status),
		}
	}
	return orFallback(out.Content), nil
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

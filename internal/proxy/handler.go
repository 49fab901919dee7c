// Package proxy serves the Advice Proxy: a stateless endpoint that checks a
// shared access code and forwards the conversation upstream with a key the
// caller never sees.
package proxy

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/omayami/internal/advice"
	"github.com/julianstephens/omayami/internal/logger"
)

// Config holds the server-side secrets. Neither value is ever logged.
type Config struct {
	AccessCode    string
	OpenAIKey     string
	OpenAIBaseURL string
}

// Completer performs the upstream chat completion.
type Completer interface {
	Complete(ctx context.Context, msgs []advice.Message) (string, error)
}

type Handler struct {
	cfg       Config
	newClient func(cfg Config) Completer
}

func NewHandler(cfg Config) *Handler {
	return &Handler{
		cfg: cfg,
		newClient: func(cfg Config) Completer {
			return advice.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIBaseURL, nil)
		},
	}
}

// adviceBody is advice.Request with messages left undecoded, so a malformed
// messages field does not invalidate the rest of the body.
type adviceBody struct {
	Title      string          `json:"title"`
	Content    string          `json:"content"`
	AccessCode string          `json:"accessCode"`
	Messages   json.RawMessage `json:"messages"`
}

// messages returns the supplied conversation, or nil when it is absent,
// empty or not a list of role/content messages.
func (b adviceBody) messages() []advice.Message {
	if len(b.Messages) == 0 {
		return nil
	}
	var msgs []advice.Message
	if err := json.Unmarshal(b.Messages, &msgs); err != nil {
		logger.Debug("Ignoring malformed messages", "error", err)
		return nil
	}
	return msgs
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, advice.Response{Error: msg})
}

// Advice handles POST /api/advice. Checks run in a fixed order: method, body,
// server configuration, access code, then the upstream call.
func (h *Handler) Advice(c *gin.Context) {
	if c.Request.Method != http.MethodPost {
		errorJSON(c, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req adviceBody
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Debug("Ignoring unreadable advice body", "error", err)
		req = adviceBody{}
	}
	if req.Title == "" || req.Content == "" {
		errorJSON(c, http.StatusBadRequest, "title and content are required")
		return
	}

	if h.cfg.AccessCode == "" || h.cfg.OpenAIKey == "" {
		logger.Error("Advice proxy is missing ACCESS_CODE or OPENAI_API_KEY")
		errorJSON(c, http.StatusInternalServerError, "server configuration is incomplete")
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.AccessCode), []byte(h.cfg.AccessCode)) != 1 {
		errorJSON(c, http.StatusForbidden, "invalid access code")
		return
	}

	msgs := req.messages()
	if len(msgs) == 0 {
		msgs = []advice.Message{advice.TopicTurn(req.Title, req.Content)}
	}

	text, err := h.newClient(h.cfg).Complete(c.Request.Context(), msgs)
	if err != nil {
		if errors.Is(err, advice.ErrUpstream) {
			logger.Warn("Upstream rejected advice request", "error", err)
			errorJSON(c, http.StatusBadGateway, nonEmpty(err.Error(), "AI response failed"))
			return
		}
		logger.Error("Upstream request failed", "error", err)
		errorJSON(c, http.StatusInternalServerError, "connection error")
		return
	}

	c.JSON(http.StatusOK, advice.Response{Content: text})
}

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Package journal orchestrates the journal operations over the post and
// settings repositories, independent of any rendering surface.
package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/julianstephens/omayami/internal/advice"
	"github.com/julianstephens/omayami/internal/logger"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/storage"
)

var (
	ErrPostNotFound       = errors.New("post not found")
	ErrAccessCodeRequired = errors.New("enter the access code to use hosted advice")
	ErrAPIKeyRequired     = errors.New("set your OpenAI API key in settings")
)

// ProviderFactory builds the advice backend for the given settings.
type ProviderFactory func(models.AISettings) (advice.Provider, error)

type Controller struct {
	posts       *storage.PostRepository
	settings    *storage.SettingsRepository
	newProvider ProviderFactory
	now         func() time.Time
}

func NewController(posts *storage.PostRepository, settings *storage.SettingsRepository, factory ProviderFactory) *Controller {
	return &Controller{
		posts:       posts,
		settings:    settings,
		newProvider: factory,
		now:         time.Now,
	}
}

// SetClock replaces the time source used for new timestamps.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// Now returns the controller's current time.
func (c *Controller) Now() time.Time {
	return c.now()
}

// ListPosts returns posts newest first, restricted to filter when set.
func (c *Controller) ListPosts(filter models.Category) []models.Post {
	posts := c.posts.Load()
	models.SortNewestFirst(posts)
	return models.FilterByCategory(posts, filter)
}

func (c *Controller) GetPost(id string) (models.Post, bool) {
	return c.posts.Get(id)
}

// CreatePost stores a new post. Category, title and content are all
// required after trimming; otherwise nothing is written.
func (c *Controller) CreatePost(category models.Category, title, content string) (models.Post, bool) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if !category.Valid() || title == "" || content == "" {
		return models.Post{}, false
	}

	p := models.NewPost(category, title, content, c.now())
	c.posts.Prepend(p)
	logger.Debug("Created post", "id", p.ID, "category", p.Category)
	return p, true
}

// AddReply appends a self-note to a post. Empty content is ignored.
func (c *Controller) AddReply(postID, content string) (models.Post, bool) {
	content = strings.TrimSpace(content)
	if postID == "" || content == "" {
		return models.Post{}, false
	}
	return c.posts.Update(postID, func(p *models.Post) {
		p.AddReply(content, c.now())
	})
}

func (c *Controller) ToggleFeeling(postID string) (models.Post, bool) {
	return c.posts.Update(postID, func(p *models.Post) {
		p.ToggleFeeling()
	})
}

func (c *Controller) Settings() models.AISettings {
	return c.settings.Load()
}

// SaveSettings overwrites the settings with trimmed values.
func (c *Controller) SaveSettings(s models.AISettings) {
	c.settings.Save(s.Trimmed())
}

// SetAccessCode records the hosted access code and switches to hosted mode.
// An empty code changes nothing.
func (c *Controller) SetAccessCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	s := c.settings.Load()
	s.Provider = models.ProviderHosted
	s.AccessCode = code
	c.settings.Save(s)
	return true
}

// HostedAvailable reports whether the hosted provider can be selected.
func (c *Controller) HostedAvailable() bool {
	return c.settings.HostedAvailable()
}

// NeedsAccessCode reports whether the access-code prompt should be shown.
func (c *Controller) NeedsAccessCode() bool {
	return c.settings.HostedAvailable() && c.settings.Load().NeedsAccessCode()
}

// RequestAdvice continues the conversation on a post. A non-empty
// userMessage is appended and saved before any network call, so it survives
// a failed request. On success the assistant reply is appended and saved.
// The returned post reflects what is stored, including on error.
func (c *Controller) RequestAdvice(ctx context.Context, postID, userMessage string) (models.Post, error) {
	post, ok := c.posts.Get(postID)
	if !ok {
		return models.Post{}, ErrPostNotFound
	}

	s := c.settings.Load()
	if s.NeedsAccessCode() {
		return post, ErrAccessCodeRequired
	}
	if s.NeedsAPIKey() {
		return post, ErrAPIKeyRequired
	}

	if msg := strings.TrimSpace(userMessage); msg != "" {
		post, ok = c.posts.Update(postID, func(p *models.Post) {
			p.AppendTurn(models.RoleUser, msg, c.now())
		})
		if !ok {
			return models.Post{}, ErrPostNotFound
		}
	}

	provider, err := c.newProvider(s)
	if err != nil {
		return post, err
	}

	reply, err := provider.SendChat(ctx, post, advice.BuildMessages(post))
	if err != nil {
		logger.Warn("Advice request failed", "provider", provider.Name(), "post", postID, "error", err)
		var advErr *advice.Error
		if errors.As(err, &advErr) && advErr.Cause != nil {
			logger.Debug("Advice failure detail", "cause", advErr.Cause)
		}
		return post, err
	}

	updated, ok := c.posts.Update(postID, func(p *models.Post) {
		p.AppendTurn(models.RoleAssistant, reply, c.now())
	})
	if !ok {
		return post, ErrPostNotFound
	}
	return updated, nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/omayami/internal/advice"
	"github.com/julianstephens/omayami/internal/backup"
	"github.com/julianstephens/omayami/internal/journal"
	"github.com/julianstephens/omayami/internal/logger"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/storage"
	"github.com/julianstephens/omayami/internal/storage/sqlite"
)

type Context struct {
	Store     storage.KV
	ProxyURL  string
	OllamaURL string

	journal *journal.Controller
}

// Journal returns the controller over the loaded store, building it on first use.
func (c *Context) Journal() *journal.Controller {
	if c.journal == nil {
		c.journal = journal.NewController(
			storage.NewPostRepository(c.Store),
			storage.NewSettingsRepository(c.Store, c.HostedAvailable()),
			c.NewProvider,
		)
	}
	return c.journal
}

// HostedAvailable reports whether an advice proxy is configured.
func (c *Context) HostedAvailable() bool {
	return strings.TrimSpace(c.ProxyURL) != ""
}

// NewProvider builds the advice backend for settings against the configured endpoints.
func (c *Context) NewProvider(s models.AISettings) (advice.Provider, error) {
	return advice.New(s, advice.Config{
		ProxyURL:      c.ProxyURL,
		OllamaBaseURL: c.OllamaURL,
	})
}

// PerformAutomaticBackup snapshots a sqlite journal and only logs failures.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// FindPost resolves a full post ID, or a unique prefix or suffix of one.
func (c *Context) FindPost(ref string) (models.Post, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Post{}, fmt.Errorf("post ID is required")
	}
	if p, ok := c.Journal().GetPost(ref); ok {
		return p, nil
	}

	var matches []models.Post
	for _, p := range c.Journal().ListPosts("") {
		if strings.HasPrefix(p.ID, ref) || strings.HasSuffix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return models.Post{}, fmt.Errorf("%w: %s", journal.ErrPostNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return models.Post{}, fmt.Errorf("post ID %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// ShortID is the tail of the ID shown in listings. Time-ordered IDs share
// their leading characters, so the random tail is used.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

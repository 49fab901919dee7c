package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/storage"
	"github.com/julianstephens/omayami/internal/storage/jsonfile"
	"github.com/julianstephens/omayami/internal/storage/postgres"
	"github.com/julianstephens/omayami/internal/storage/sqlite"
)

func TestOpenStore(t *testing.T) {
	tests := []struct {
		config string
		want   string
	}{
		{"postgres://user@localhost:5432/omayami", "postgres"},
		{"postgresql://localhost/omayami", "postgres"},
		{"host=localhost dbname=omayami", "postgres"},
		{"/tmp/journal.json", "json"},
		{"/tmp/JOURNAL.JSON", "json"},
		{"/tmp/omayami.db", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.config, func(t *testing.T) {
			var got string
			switch OpenStore(tt.config).(type) {
			case *postgres.Store:
				got = "postgres"
			case *jsonfile.Store:
				got = "json"
			case *sqlite.Store:
				got = "sqlite"
			}
			if got != tt.want {
				t.Errorf("OpenStore(%q) = %s, want %s", tt.config, got, tt.want)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.config/omayami/omayami.db"); got != filepath.Join(home, ".config/omayami/omayami.db") {
		t.Errorf("unexpected expansion %s", got)
	}
	if got := ExpandHome("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("absolute path changed: %s", got)
	}
	if got := ExpandHome("~user/x"); got != "~user/x" {
		t.Errorf("~user form should be untouched: %s", got)
	}
}

func newContext(t *testing.T) *Context {
	t.Helper()
	return &Context{Store: storage.NewMemoryKV()}
}

func TestFindPost(t *testing.T) {
	ctx := newContext(t)
	a, _ := ctx.Journal().CreatePost(models.CategoryWork, "first", "content")
	b, _ := ctx.Journal().CreatePost(models.CategoryLove, "second", "content")

	got, err := ctx.FindPost(a.ID)
	if err != nil || got.ID != a.ID {
		t.Fatalf("full ID lookup failed: %v", err)
	}

	got, err = ctx.FindPost(ShortID(b.ID))
	if err != nil || got.ID != b.ID {
		t.Fatalf("short ID lookup failed: %v", err)
	}

	if _, err := ctx.FindPost("zzzzzzzz"); err == nil {
		t.Error("expected error for unknown ID")
	}
	if _, err := ctx.FindPost(" "); err == nil {
		t.Error("expected error for empty ID")
	}
}

func TestFindPostAmbiguous(t *testing.T) {
	ctx := newContext(t)
	ctx.Journal().CreatePost(models.CategoryWork, "one", "content")
	ctx.Journal().CreatePost(models.CategoryWork, "two", "content")

	// time-ordered IDs created back to back share a prefix
	posts := ctx.Journal().ListPosts("")
	common := commonPrefix(posts[0].ID, posts[1].ID)
	if common == "" {
		t.Skip("IDs share no prefix")
	}
	if _, err := ctx.FindPost(common); err == nil {
		t.Error("expected ambiguity error")
	}
}

func commonPrefix(a, b string) string {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return a[:n]
}

func TestHostedAvailable(t *testing.T) {
	if (&Context{}).HostedAvailable() {
		t.Error("no proxy configured")
	}
	if !(&Context{ProxyURL: "https://x.example"}).HostedAvailable() {
		t.Error("proxy configured")
	}
}

func TestNewProvider(t *testing.T) {
	ctx := &Context{}
	if _, err := ctx.NewProvider(models.AISettings{Provider: models.ProviderHosted, AccessCode: "c"}); err == nil {
		t.Error("hosted without a proxy must fail")
	}
	p, err := ctx.NewProvider(models.AISettings{Provider: models.ProviderOllama})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != models.ProviderOllama {
		t.Errorf("unexpected provider %s", p.Name())
	}
}

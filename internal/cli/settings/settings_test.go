package settings

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, proxyURL string) (*cli.Context, func()) {
	tempDir := t.TempDir()
	dbPath := filepath.Join(tempDir, "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	ctx := &cli.Context{
		Store:    store,
		ProxyURL: proxyURL,
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}

	return ctx, cleanup
}

func strPtr(s string) *string { return &s }

func TestSettingsCmd_List(t *testing.T) {
	ctx, cleanup := setupTestDB(t, "")
	defer cleanup()

	cmd := &SettingsCmd{List: true}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("settings list failed: %v", err)
	}
}

func TestSettingsCmd_DefaultProvider(t *testing.T) {
	tests := []struct {
		name     string
		proxyURL string
		want     models.Provider
	}{
		{"without proxy", "", models.ProviderOpenAI},
		{"with proxy", "https://omayami.example", models.ProviderHosted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cleanup := setupTestDB(t, tt.proxyURL)
			defer cleanup()

			if got := ctx.Journal().Settings().Provider; got != tt.want {
				t.Errorf("expected provider %s, got %s", tt.want, got)
			}
		})
	}
}

func TestSettingsCmd_UpdateTrimsValues(t *testing.T) {
	ctx, cleanup := setupTestDB(t, "")
	defer cleanup()

	cmd := &SettingsCmd{
		Provider: strPtr("openai"),
		APIKey:   strPtr("  sk-test  "),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	s := ctx.Journal().Settings()
	if s.Provider != models.ProviderOpenAI {
		t.Errorf("expected provider openai, got %s", s.Provider)
	}
	if s.APIKey != "sk-test" {
		t.Errorf("expected trimmed api key, got %q", s.APIKey)
	}
}

func TestSettingsCmd_InvalidProvider(t *testing.T) {
	ctx, cleanup := setupTestDB(t, "")
	defer cleanup()

	cmd := &SettingsCmd{Provider: strPtr("anthropic")}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestSettingsCmd_HostedNeedsProxy(t *testing.T) {
	ctx, cleanup := setupTestDB(t, "")
	defer cleanup()

	cmd := &SettingsCmd{Provider: strPtr("hosted")}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error selecting hosted without a proxy")
	}
	if got := ctx.Journal().Settings().Provider; got != models.ProviderOpenAI {
		t.Errorf("provider changed to %s", got)
	}
}

func TestSettingsCmd_Persists(t *testing.T) {
	ctx, cleanup := setupTestDB(t, "")
	defer cleanup()

	cmd := &SettingsCmd{Provider: strPtr("ollama")}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	fresh := &cli.Context{Store: ctx.Store}
	if got := fresh.Journal().Settings().Provider; got != models.ProviderOllama {
		t.Errorf("expected persisted provider ollama, got %s", got)
	}
}

func TestAccessCodeCmd(t *testing.T) {
	t.Run("sets code and switches to hosted", func(t *testing.T) {
		ctx, cleanup := setupTestDB(t, "https://omayami.example")
		defer cleanup()

		ctx.Journal().SaveSettings(models.AISettings{Provider: models.ProviderOllama})
		cmd := &AccessCodeCmd{Code: " secret "}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("access-code failed: %v", err)
		}

		s := ctx.Journal().Settings()
		if s.Provider != models.ProviderHosted || s.AccessCode != "secret" {
			t.Errorf("unexpected settings %+v", s)
		}
		if ctx.Journal().NeedsAccessCode() {
			t.Error("access code should no longer be needed")
		}
	})

	t.Run("empty code is rejected", func(t *testing.T) {
		ctx, cleanup := setupTestDB(t, "https://omayami.example")
		defer cleanup()

		cmd := &AccessCodeCmd{Code: "   "}
		if err := cmd.Run(ctx); err == nil {
			t.Error("expected error for empty code")
		}
		if !ctx.Journal().NeedsAccessCode() {
			t.Error("access code should still be needed")
		}
	})

	t.Run("requires a proxy", func(t *testing.T) {
		ctx, cleanup := setupTestDB(t, "")
		defer cleanup()

		cmd := &AccessCodeCmd{Code: "secret"}
		if err := cmd.Run(ctx); err == nil {
			t.Error("expected error without a proxy")
		}
	})
}

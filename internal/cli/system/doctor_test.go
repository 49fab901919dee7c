package system

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/storage/sqlite"
)

type fakeProcess struct {
	pid  int
	name string
}

func (p fakeProcess) Pid() int           { return p.pid }
func (p fakeProcess) PPid() int          { return 1 }
func (p fakeProcess) Executable() string { return p.name }

func stubProcesses(t *testing.T, procs []ps.Process, err error) {
	t.Helper()
	old := processesFunc
	processesFunc = func() ([]ps.Process, error) { return procs, err }
	t.Cleanup(func() { processesFunc = old })
}

func setupDoctorDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{Store: store}
}

func TestOllamaRunning(t *testing.T) {
	tests := []struct {
		name  string
		procs []ps.Process
		err   error
		want  bool
	}{
		{"found", []ps.Process{fakeProcess{10, "bash"}, fakeProcess{11, "ollama"}}, nil, true},
		{"found with extension", []ps.Process{fakeProcess{11, "Ollama.exe"}}, nil, true},
		{"absent", []ps.Process{fakeProcess{10, "bash"}}, nil, false},
		{"error", nil, errors.New("no /proc"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProcesses(t, tt.procs, tt.err)
			got, err := ollamaRunning()
			if (err != nil) != (tt.err != nil) {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tt.want {
				t.Errorf("ollamaRunning() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCheckStorage(t *testing.T) {
	ctx := setupDoctorDB(t)
	if err := checkStorage(ctx); err != nil {
		t.Errorf("checkStorage failed: %v", err)
	}

	missing := &cli.Context{Store: sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))}
	if err := checkStorage(missing); err == nil {
		t.Error("expected error for uninitialized storage")
	}
}

func TestCheckSettings(t *testing.T) {
	ctx := setupDoctorDB(t)
	if err := checkSettings(ctx); err == nil {
		t.Error("default openai settings without a key should fail")
	}

	ctx.Journal().SaveSettings(models.AISettings{Provider: models.ProviderOpenAI, APIKey: "sk-x"})
	if err := checkSettings(ctx); err != nil {
		t.Errorf("configured settings failed: %v", err)
	}

	ctx.Journal().SaveSettings(models.AISettings{Provider: models.ProviderHosted, AccessCode: "c"})
	if err := checkSettings(ctx); err == nil {
		t.Error("hosted without a proxy should fail")
	}
}

func TestCheckProvider(t *testing.T) {
	t.Run("hosted proxy healthy", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/healthz" {
				http.NotFound(w, r)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		ctx := setupDoctorDB(t)
		ctx.ProxyURL = srv.URL
		ctx.Journal().SaveSettings(models.AISettings{Provider: models.ProviderHosted, AccessCode: "c"})
		if err := checkProvider(ctx); err != nil {
			t.Errorf("checkProvider failed: %v", err)
		}
	})

	t.Run("ollama not running", func(t *testing.T) {
		stubProcesses(t, []ps.Process{fakeProcess{1, "init"}}, nil)
		ctx := setupDoctorDB(t)
		ctx.Journal().SaveSettings(models.AISettings{Provider: models.ProviderOllama})
		if err := checkProvider(ctx); err == nil {
			t.Error("expected error when ollama is not running")
		}
	})

	t.Run("ollama answering", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		stubProcesses(t, []ps.Process{fakeProcess{7, "ollama"}}, nil)
		ctx := setupDoctorDB(t)
		ctx.OllamaURL = srv.URL
		ctx.Journal().SaveSettings(models.AISettings{Provider: models.ProviderOllama})
		if err := checkProvider(ctx); err != nil {
			t.Errorf("checkProvider failed: %v", err)
		}
	})
}

func TestDoctorFailsWithoutStorage(t *testing.T) {
	stubProcesses(t, nil, nil)
	ctx := &cli.Context{Store: sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))}
	if err := (&DoctorCmd{}).Run(ctx); err == nil {
		t.Error("expected doctor to fail without storage")
	}
}

package system

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/omayami/internal/advice"
	"github.com/julianstephens/omayami/internal/backup"
	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/keyring"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/storage/sqlite"
)

var (
	processesFunc = ps.Processes
	httpClient    = &http.Client{Timeout: 5 * time.Second}
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func() error
	// warn marks checks whose failure does not fail the command.
	warn bool
	// needsStore marks checks skipped when storage is unreachable.
	needsStore bool
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	checks := []check{
		{name: "Storage reachable", run: func() error { return checkStorage(ctx) }},
		{name: "Advice settings", run: func() error { return checkSettings(ctx) }, needsStore: true},
		{name: "Advice provider reachable", run: func() error { return checkProvider(ctx) }, needsStore: true, warn: true},
		{name: "Backups present", run: func() error { return checkBackups(ctx) }, warn: true},
		{name: "OS keyring", run: checkKeyring, warn: true},
		{name: "Clock/timezone", run: checkClock},
	}

	hasError := false
	storeOK := true
	for i, c := range checks {
		if c.needsStore && !storeOK {
			fmt.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run()
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
			if i == 0 {
				storeOK = false
			}
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

// checkStorage loads the store, which also validates the schema version, and
// reads the posts key.
func checkStorage(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if _, _, err := ctx.Store.Get(constants.PostsKey); err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}
	return nil
}

func checkSettings(ctx *cli.Context) error {
	s := ctx.Journal().Settings()
	switch {
	case s.Provider == models.ProviderHosted && !ctx.HostedAvailable():
		return fmt.Errorf("provider is hosted but no proxy URL is configured")
	case s.NeedsAccessCode():
		return fmt.Errorf("hosted provider selected without an access code (run 'omayami access-code <code>')")
	case s.NeedsAPIKey():
		return fmt.Errorf("openai provider selected without an API key (run 'omayami settings --api-key <key>')")
	}
	return nil
}

func checkProvider(ctx *cli.Context) error {
	reqCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	switch ctx.Journal().Settings().Provider {
	case models.ProviderHosted:
		if !ctx.HostedAvailable() {
			return fmt.Errorf("no proxy URL configured")
		}
		return checkProxy(reqCtx, ctx.ProxyURL)
	case models.ProviderOllama:
		if running, err := ollamaRunning(); err == nil && !running {
			return fmt.Errorf("no ollama process found (start it with 'ollama serve')")
		}
		return advice.NewOllama(ctx.OllamaURL, "", httpClient).Ping(reqCtx)
	}
	return nil
}

func checkProxy(ctx context.Context, proxyURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(proxyURL, "/")+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("invalid proxy URL: %w", err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("proxy unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("proxy health check returned %s", resp.Status)
	}
	return nil
}

// ollamaRunning looks for an ollama executable in the process table.
func ollamaRunning() (bool, error) {
	procs, err := processesFunc()
	if err != nil {
		return false, err
	}
	for _, p := range procs {
		name := strings.ToLower(filepath.Base(p.Executable()))
		if strings.HasPrefix(name, "ollama") {
			return true, nil
		}
	}
	return false, nil
}

func checkBackups(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s (run 'omayami backup')", mgr.Dir())
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return fmt.Errorf("OS keyring is not available; secrets must come from flags or environment")
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2024 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset%(15*60) != 0 {
		return fmt.Errorf("unusual timezone offset %ds", offset)
	}
	return nil
}

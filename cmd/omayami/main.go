package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/cli/backups"
	"github.com/julianstephens/omayami/internal/cli/posts"
	"github.com/julianstephens/omayami/internal/cli/settings"
	"github.com/julianstephens/omayami/internal/cli/system"
	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/errors"
	"github.com/julianstephens/omayami/internal/keyring"
	"github.com/julianstephens/omayami/internal/logger"
	"github.com/julianstephens/omayami/internal/storage/postgres"
)

var CLI struct {
	Version   kong.VersionFlag
	Config    string `help:"Journal file path (sqlite or *.json) or PostgreSQL connection string. Defaults to the keyring connection string, then ~/.config/omayami/omayami.db." type:"string"`
	ProxyURL  string `name:"proxy-url" help:"Base URL of the advice proxy. Enables hosted advice." env:"OMAYAMI_PROXY_URL"`
	OllamaURL string `name:"ollama-url" help:"Base URL of the local ollama server." env:"OMAYAMI_OLLAMA_URL"`
	Debug     bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize omayami storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Post    struct {
		Add   posts.PostAddCmd   `cmd:"" help:"Write a new post."`
		List  posts.PostListCmd  `cmd:"" help:"List posts, newest first."`
		Show  posts.PostShowCmd  `cmd:"" help:"Show a post with its conversation and memos."`
		Feel  posts.PostFeelCmd  `cmd:"" help:"Toggle the feeling-better mark on a post."`
		Reply posts.PostReplyCmd `cmd:"" help:"Add a memo to a post."`
	} `cmd:"" help:"Manage posts."`
	Chat       posts.ChatCmd          `cmd:"" help:"Ask for advice on a post or continue its conversation."`
	Export     posts.ExportCmd        `cmd:"" help:"Export posts as a standalone HTML page."`
	Settings   settings.SettingsCmd   `cmd:"" help:"Show or change advice settings."`
	AccessCode settings.AccessCodeCmd `cmd:"" name:"access-code" help:"Store the hosted advice access code."`
	Backup     struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage journal backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Show which secrets are stored."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
	Serve system.ServeCmd `cmd:"" help:"Run the advice proxy server."`
}

// selfLoading commands open the store themselves or do not need it.
var selfLoading = []string{"init", "migrate", "doctor", "serve", "keyring"}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A quiet place to write down worries and talk them through"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	config := resolveConfig(CLI.Config)
	// Credentials are only allowed in the keyring copy of the connection string.
	if CLI.Config != "" && cli.IsPostgres(config) {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if stderrors.Is(err, postgres.ErrEmbeddedCredentials) {
				fmt.Fprintln(os.Stderr, "❌ Error: PostgreSQL connection strings with embedded credentials are NOT allowed.")
				fmt.Fprintln(os.Stderr, "       Use one of these secure alternatives:")
				fmt.Fprintln(os.Stderr, "       1. OS keyring:    omayami keyring set database-connection")
				fmt.Fprintln(os.Stderr, "       2. Environment:   export PGPASSWORD=...")
				fmt.Fprintln(os.Stderr, "       3. .pgpass file:  Use connection string without password: \"postgresql://user@host:5432/omayami\"")
				os.Exit(1)
			}
			errors.Fatal(err)
		}
	}

	logCfg := logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: cli.ConfigDir(config),
	}
	if commandName(ctx.Command()) == "serve" {
		logCfg.Stderr = true
		logCfg.Prefix = constants.AppName + "-proxy"
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintln(os.Stderr, errors.Formatf("failed to initialize logger: %v", err))
	}

	appCtx := &cli.Context{
		Store:     cli.OpenStore(config),
		ProxyURL:  strings.TrimSpace(CLI.ProxyURL),
		OllamaURL: strings.TrimSpace(CLI.OllamaURL),
	}

	if needsStore(ctx.Command()) {
		if err := appCtx.Store.Load(); err != nil {
			errors.Fatal(err)
		}
		defer appCtx.Store.Close()
	}

	if err := ctx.Run(appCtx); err != nil {
		appCtx.Store.Close()
		errors.Fatal(err)
	}
}

// resolveConfig applies the fallback order for the journal location: the
// flag, the keyring connection string, then the default file.
func resolveConfig(flag string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	if connStr, err := keyring.GetConnectionString(); err == nil && connStr != "" {
		return connStr
	}
	return constants.DefaultConfigPath
}

func commandName(command string) string {
	name, _, _ := strings.Cut(command, " ")
	return name
}

func needsStore(command string) bool {
	name := commandName(command)
	for _, n := range selfLoading {
		if name == n {
			return false
		}
	}
	return true
}

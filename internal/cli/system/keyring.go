package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/keyring"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/storage/postgres"
)

// KeyringSetCmd stores a secret in the OS keyring.
type KeyringSetCmd struct {
	Name  string `arg:"" enum:"database-connection,proxy-access-code,proxy-openai-api-key" help:"Secret to store (${enum})."`
	Value string `arg:"" optional:"" help:"Secret value. Prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	value := strings.TrimSpace(cmd.Value)
	if value == "" {
		if err := huh.NewInput().
			Title(cmd.Name).
			EchoMode(huh.EchoModePassword).
			Value(&value).
			Run(); err != nil {
			return err
		}
		value = strings.TrimSpace(value)
	}

	if cmd.Name == constants.DefaultKeyringUser {
		if !cli.IsPostgres(value) {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if _, err := postgres.ValidateConnString(value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			fmt.Println("⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Println("   It will be stored as-is in the encrypted OS keyring.")
		}
	}

	if err := keyring.Set(cmd.Name, value); err != nil {
		return err
	}
	fmt.Printf("✓ %s stored in OS keyring\n", cmd.Name)
	return nil
}

// KeyringGetCmd shows a stored secret with the sensitive part masked.
type KeyringGetCmd struct {
	Name string `arg:"" enum:"database-connection,proxy-access-code,proxy-openai-api-key" help:"Secret to show (${enum})."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	value, err := keyring.Get(cmd.Name)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'omayami keyring set %s' to store one", cmd.Name, cmd.Name)
		}
		return err
	}

	if cmd.Name == constants.DefaultKeyringUser {
		fmt.Println(maskPassword(value))
	} else {
		fmt.Println(models.MaskedKey(value))
	}
	return nil
}

// KeyringDeleteCmd removes a stored secret.
type KeyringDeleteCmd struct {
	Name string `arg:"" enum:"database-connection,proxy-access-code,proxy-openai-api-key" help:"Secret to delete (${enum})."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.Delete(cmd.Name); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", cmd.Name)
		}
		return err
	}
	fmt.Printf("✓ %s deleted from OS keyring\n", cmd.Name)
	return nil
}

// KeyringStatusCmd reports keyring availability and which secrets are stored.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")
	for _, name := range keyring.Secrets {
		if _, err := keyring.Get(name); err == nil {
			fmt.Printf("✓ %s is stored\n", name)
		} else {
			fmt.Printf("ℹ %s is not stored\n", name)
		}
	}
	return nil
}

// maskPassword hides the password of a URI or key=value connection string.
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), "****")
			return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
		}
		return connStr
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}

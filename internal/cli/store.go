package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/storage"
	"github.com/julianstephens/omayami/internal/storage/jsonfile"
	"github.com/julianstephens/omayami/internal/storage/postgres"
	"github.com/julianstephens/omayami/internal/storage/sqlite"
)

// IsPostgres reports whether config names a PostgreSQL database rather than a file.
func IsPostgres(config string) bool {
	return postgres.IsConnString(config) || strings.Contains(config, "host=")
}

// OpenStore picks the backend for config: a PostgreSQL URI or DSN, a *.json
// file, or a sqlite database file. Connection strings are not validated here.
func OpenStore(config string) storage.KV {
	switch {
	case IsPostgres(config):
		return postgres.New(config)
	case strings.EqualFold(filepath.Ext(config), ".json"):
		return jsonfile.NewStore(ExpandHome(config))
	default:
		return sqlite.NewStore(ExpandHome(config))
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ConfigDir is the directory holding the journal file, or the default config
// directory for database backends.
func ConfigDir(config string) string {
	if IsPostgres(config) {
		return filepath.Dir(ExpandHome(constants.DefaultConfigPath))
	}
	return filepath.Dir(ExpandHome(config))
}

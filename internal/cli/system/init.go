package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Delete the existing journal file before initialization."`
	Source string `help:"Journal to import posts and settings from (sqlite file, *.json file or PostgreSQL connection string)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized omayami storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Importing from: %s\n", c.Source)
		if err := c.importFrom(ctx); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		fmt.Println("Import completed successfully!")
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*postgres.Store); ok {
		return fmt.Errorf("--force is only supported for file backends")
	}

	path := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absPath, _ := filepath.Abs(path)
		absSource, err := filepath.Abs(cli.ExpandHome(c.Source))
		if err == nil && absSource == absPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", path)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing journal at: %s\n", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// importFrom copies the posts and settings values verbatim. Legacy records
// are normalized the next time the posts are read.
func (c *InitCmd) importFrom(ctx *cli.Context) error {
	src := cli.OpenStore(c.Source)
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source journal: %w", err)
	}
	defer src.Close()

	for _, key := range []string{constants.PostsKey, constants.AISettingsKey} {
		value, ok, err := src.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if !ok {
			fmt.Printf("  %s: nothing to import\n", key)
			continue
		}
		if err := ctx.Store.Set(key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
		fmt.Printf("  %s: imported\n", key)
	}

	fmt.Printf("    %d posts in journal\n", len(ctx.Journal().ListPosts("")))
	return nil
}

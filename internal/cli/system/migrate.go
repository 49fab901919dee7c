package system

import (
	"fmt"

	"github.com/julianstephens/omayami/internal/cli"
)

type migrator interface {
	Migrate(logFn func(string)) error
}

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		fmt.Println("This storage backend has no schema. Nothing to migrate.")
		return nil
	}
	defer ctx.Store.Close()

	if err := m.Migrate(func(msg string) { fmt.Println(msg) }); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

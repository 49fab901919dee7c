package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Journal()), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

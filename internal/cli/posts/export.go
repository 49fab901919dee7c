package posts

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/render"
)

type ExportCmd struct {
	HTML     string `help:"Write the journal as a static HTML page to this file ('-' for stdout)." required:"" name:"html"`
	Category string `help:"Only export posts in this category." short:"c"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	filter, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}

	j := ctx.Journal()
	now := j.Now()
	list := render.BuildList(j.ListPosts(""), filter, now)

	details := make([]render.DetailView, 0, len(list.Cards))
	for _, card := range list.Cards {
		if p, ok := j.GetPost(card.ID); ok {
			details = append(details, render.BuildDetail(p, now))
		}
	}

	var w io.Writer = os.Stdout
	if c.HTML != "-" {
		f, err := os.OpenFile(c.HTML, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := render.WriteHTML(w, list, details, now); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if c.HTML != "-" {
		fmt.Printf("✓ Exported %d posts to %s\n", len(details), c.HTML)
	}
	return nil
}

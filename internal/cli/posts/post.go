package posts

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/models"
	"github.com/julianstephens/omayami/internal/render"
)

type PostAddCmd struct {
	Category string `help:"Category: work, relationship, love, family, health, money, future, other." short:"c"`
	Title    string `help:"Post title." short:"t"`
	Content  string `help:"What is on your mind." short:"m"`
}

func (c *PostAddCmd) Run(ctx *cli.Context) error {
	if c.Category == "" || c.Title == "" || c.Content == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}

	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}
	if category == "" {
		return errors.New("category is required")
	}

	post, ok := ctx.Journal().CreatePost(category, c.Title, c.Content)
	if !ok {
		return errors.New("title and content are required")
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Posted %q (%s)\n", post.Title, cli.ShortID(post.ID))
	return nil
}

func (c *PostAddCmd) prompt() error {
	category := models.Category(c.Category)
	options := make([]huh.Option[models.Category], 0, len(models.Categories))
	for _, cat := range models.Categories {
		options = append(options, huh.NewOption(cat.Label(), cat))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(options...).
				Value(&category),
			huh.NewInput().
				Title("Title").
				Value(&c.Title).
				Validate(required("title")),
			huh.NewText().
				Title("What is on your mind?").
				Value(&c.Content).
				Validate(required("content")),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	c.Category = string(category)
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

type PostListCmd struct {
	Category string `help:"Only show posts in this category." short:"c"`
}

func (c *PostListCmd) Run(ctx *cli.Context) error {
	filter, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}

	j := ctx.Journal()
	view := render.BuildList(j.ListPosts(""), filter, j.Now())
	if view.Empty {
		fmt.Println("No posts yet.")
		return nil
	}

	for _, card := range view.Cards {
		fmt.Printf("%s  [%s]  %s\n", cli.ShortID(card.ID), card.CategoryLabel, card.Date)
		fmt.Printf("  %s\n", render.SanitizeTerminal(card.Title))
		fmt.Printf("  %s\n", render.SanitizeTerminal(card.Preview))
		fmt.Printf("  %s\n\n", cardMeta(card))
	}
	return nil
}

func cardMeta(card render.PostCard) string {
	parts := []string{fmt.Sprintf("%d memos", card.ReplyCount)}
	if card.HasChat {
		parts = append(parts, render.ChatBadge)
	}
	if card.FeelingBetter {
		parts = append(parts, render.FeelingBetterLabel)
	} else {
		parts = append(parts, "—")
	}
	return strings.Join(parts, " · ")
}

type PostShowCmd struct {
	ID string `arg:"" help:"Post ID, or a unique part of it."`
}

func (c *PostShowCmd) Run(ctx *cli.Context) error {
	post, err := ctx.FindPost(c.ID)
	if err != nil {
		return err
	}
	printDetail(render.BuildDetail(post, ctx.Journal().Now()))
	return nil
}

func printDetail(d render.DetailView) {
	fmt.Printf("[%s]  %s  (%s)\n", d.CategoryLabel, d.Date, d.ID)
	fmt.Printf("%s\n\n", render.SanitizeTerminal(d.Title))
	fmt.Printf("%s\n\n", render.SanitizeTerminal(d.Content))
	fmt.Println(d.FeelingLabel)

	fmt.Println()
	if !d.HasChat {
		fmt.Printf("No chat yet. Start one with: omayami chat %s\n", cli.ShortID(d.ID))
	} else {
		fmt.Println("Chat:")
		for _, t := range d.Turns {
			who := "you"
			if t.Role == models.RoleAssistant {
				who = "ai"
			}
			fmt.Printf("  %s> %s\n", who, render.SanitizeTerminal(t.Content))
		}
	}

	if len(d.Replies) > 0 {
		fmt.Println()
		fmt.Println("Memos:")
		for _, r := range d.Replies {
			fmt.Printf("  %s  %s\n", r.Date, render.SanitizeTerminal(r.Content))
		}
	}
}

type PostFeelCmd struct {
	ID string `arg:"" help:"Post ID, or a unique part of it."`
}

func (c *PostFeelCmd) Run(ctx *cli.Context) error {
	post, err := ctx.FindPost(c.ID)
	if err != nil {
		return err
	}
	updated, ok := ctx.Journal().ToggleFeeling(post.ID)
	if !ok {
		return fmt.Errorf("post not found: %s", c.ID)
	}
	if updated.FeelingBetter {
		fmt.Println(render.FeelingBetterLabel)
	} else {
		fmt.Println("Unmarked.", render.FeelingPromptLabel)
	}
	return nil
}

type PostReplyCmd struct {
	ID      string `arg:"" help:"Post ID, or a unique part of it."`
	Content string `arg:"" help:"Memo to add to the post."`
}

func (c *PostReplyCmd) Run(ctx *cli.Context) error {
	post, err := ctx.FindPost(c.ID)
	if err != nil {
		return err
	}
	updated, ok := ctx.Journal().AddReply(post.ID, c.Content)
	if !ok {
		return errors.New("memo cannot be empty")
	}
	fmt.Printf("✓ Memo added (%d total)\n", len(updated.Replies))
	return nil
}

package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/omayami/internal/models"
)

type PostFormModel struct {
	Category models.Category
	Title    string
	Content  string
}

type ReplyFormModel struct {
	Content string
}

type SettingsFormModel struct {
	Provider   models.Provider
	APIKey     string
	AccessCode string
}

type AccessCodeFormModel struct {
	Code string
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

func NewPostForm(fm *PostFormModel) *huh.Form {
	options := make([]huh.Option[models.Category], 0, len(models.Categories))
	for _, c := range models.Categories {
		options = append(options, huh.NewOption(c.Label(), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Category]().
				Title("Category").
				Options(options...).
				Value(&fm.Category),
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(required("title")),
			huh.NewText().
				Title("What is on your mind?").
				Value(&fm.Content).
				Validate(required("content")),
		),
	).WithShowHelp(true)
}

func NewReplyForm(fm *ReplyFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Add a memo").
				Description("A note to yourself about this post.").
				Value(&fm.Content).
				Validate(required("memo")),
		),
	).WithShowHelp(true)
}

// NewSettingsForm shows only the field the selected provider needs. Hosted is
// offered only when a proxy is configured.
func NewSettingsForm(fm *SettingsFormModel, hostedAvailable bool) *huh.Form {
	var options []huh.Option[models.Provider]
	for _, p := range models.Providers {
		if p == models.ProviderHosted && !hostedAvailable {
			continue
		}
		options = append(options, huh.NewOption(p.Label(), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Provider]().
				Title("AI provider").
				Options(options...).
				Value(&fm.Provider),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API key").
				EchoMode(huh.EchoModePassword).
				Value(&fm.APIKey),
		).WithHideFunc(func() bool { return fm.Provider != models.ProviderOpenAI }),
		huh.NewGroup(
			huh.NewInput().
				Title("Access code").
				EchoMode(huh.EchoModePassword).
				Value(&fm.AccessCode),
		).WithHideFunc(func() bool { return fm.Provider != models.ProviderHosted }),
	).WithShowHelp(true)
}

func NewAccessCodeForm(fm *AccessCodeFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Access code").
				Description("Enter the access code for AI advice. Press esc to decide later.").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Code),
		),
	).WithShowHelp(true)
}

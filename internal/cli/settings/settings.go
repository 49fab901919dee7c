package settings

import (
	"errors"
	"fmt"

	"github.com/julianstephens/omayami/internal/cli"
	"github.com/julianstephens/omayami/internal/models"
)

type SettingsCmd struct {
	List       bool    `help:"List current settings." short:"l"`
	Provider   *string `help:"Advice provider: hosted, openai or ollama."`
	APIKey     *string `help:"OpenAI API key used by the openai provider." name:"api-key"`
	AccessCode *string `help:"Access code used by the hosted provider." name:"access-code"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	j := ctx.Journal()
	if c.List || (c.Provider == nil && c.APIKey == nil && c.AccessCode == nil) {
		printSettings(ctx, j.Settings())
		return nil
	}

	s := j.Settings()
	if c.Provider != nil {
		p := models.Provider(*c.Provider)
		if !p.Valid() {
			return fmt.Errorf("unknown provider %q (choose hosted, openai or ollama)", *c.Provider)
		}
		if p == models.ProviderHosted && !ctx.HostedAvailable() {
			return errors.New("hosted provider needs --proxy-url or OMAYAMI_PROXY_URL")
		}
		s.Provider = p
	}
	if c.APIKey != nil {
		s.APIKey = *c.APIKey
	}
	if c.AccessCode != nil {
		s.AccessCode = *c.AccessCode
	}

	j.SaveSettings(s)
	fmt.Println("✓ Settings saved")
	return nil
}

func printSettings(ctx *cli.Context, s models.AISettings) {
	fmt.Println("Current settings:")
	fmt.Printf("  provider:    %s\n", s.Provider.Label())
	fmt.Printf("  api key:     %s\n", models.MaskedKey(s.APIKey))
	fmt.Printf("  access code: %s\n", models.MaskedKey(s.AccessCode))
	if ctx.HostedAvailable() {
		fmt.Printf("  proxy:       %s\n", ctx.ProxyURL)
	}

	if !ctx.HostedAvailable() && s.NeedsAPIKey() {
		fmt.Println()
		fmt.Println("To use AI: omayami settings --provider openai --api-key <key>, or --provider ollama")
	}
}

type AccessCodeCmd struct {
	Code string `arg:"" help:"Access code for the hosted advice proxy."`
}

func (c *AccessCodeCmd) Run(ctx *cli.Context) error {
	if !ctx.HostedAvailable() {
		return errors.New("no advice proxy configured (set --proxy-url or OMAYAMI_PROXY_URL)")
	}
	if !ctx.Journal().SetAccessCode(c.Code) {
		return errors.New("access code cannot be empty")
	}
	fmt.Println("✓ Access code saved")
	return nil
}

package models

import (
	"strings"

	"github.com/julianstephens/omayami/internal/constants"
)

// Provider selects which backend answers advice requests.
type Provider string

const (
	ProviderHosted Provider = constants.ProviderHosted
	ProviderOpenAI Provider = constants.ProviderOpenAI
	ProviderOllama Provider = constants.ProviderOllama
)

// Providers lists the selectable providers in display order.
var Providers = []Provider{ProviderHosted, ProviderOpenAI, ProviderOllama}

func (p Provider) Valid() bool {
	switch p {
	case ProviderHosted, ProviderOpenAI, ProviderOllama:
		return true
	}
	return false
}

func (p Provider) Label() string {
	switch p {
	case ProviderHosted:
		return "Hosted (access code)"
	case ProviderOpenAI:
		return "OpenAI (your API key)"
	case ProviderOllama:
		return "Ollama (local)"
	}
	return string(p)
}

// AISettings is the device-wide advice configuration.
type AISettings struct {
	Provider   Provider `json:"provider"`
	APIKey     string   `json:"apiKey"`
	AccessCode string   `json:"accessCode"`
}

// DefaultSettings returns the settings created on first read. Hosted is the
// default only when a proxy is reachable.
func DefaultSettings(hostedAvailable bool) AISettings {
	p := ProviderOpenAI
	if hostedAvailable {
		p = ProviderHosted
	}
	return AISettings{Provider: p}
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (s AISettings) Trimmed() AISettings {
	return AISettings{
		Provider:   Provider(strings.TrimSpace(string(s.Provider))),
		APIKey:     strings.TrimSpace(s.APIKey),
		AccessCode: strings.TrimSpace(s.AccessCode),
	}
}

// NeedsAccessCode reports whether hosted mode is selected without a code.
func (s AISettings) NeedsAccessCode() bool {
	return s.Provider == ProviderHosted && strings.TrimSpace(s.AccessCode) == ""
}

// NeedsAPIKey reports whether openai mode is selected without a key.
func (s AISettings) NeedsAPIKey() bool {
	return s.Provider == ProviderOpenAI && strings.TrimSpace(s.APIKey) == ""
}

// Configured reports whether the selected provider has what it needs.
func (s AISettings) Configured() bool {
	switch s.Provider {
	case ProviderHosted:
		return !s.NeedsAccessCode()
	case ProviderOpenAI:
		return !s.NeedsAPIKey()
	case ProviderOllama:
		return true
	}
	return false
}

// MaskedKey renders a secret for display, keeping only the last four characters.
func MaskedKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

package storage

import (
	"encoding/json"

	"github.com/julianstephens/omayami/internal/constants"
	"github.com/julianstephens/omayami/internal/logger"
	"github.com/julianstephens/omayami/internal/models"
)

// SettingsRepository persists the AI settings object. Like PostRepository it
// never surfaces storage errors.
type SettingsRepository struct {
	kv              KV
	hostedAvailable bool
}

// NewSettingsRepository returns a repository whose default provider is hosted
// when hostedAvailable is set.
func NewSettingsRepository(kv KV, hostedAvailable bool) *SettingsRepository {
	return &SettingsRepository{kv: kv, hostedAvailable: hostedAvailable}
}

// Load returns the stored settings, creating the defaults on first read.
func (r *SettingsRepository) Load() models.AISettings {
	defaults := models.DefaultSettings(r.hostedAvailable)

	raw, ok, err := r.kv.Get(constants.AISettingsKey)
	if err != nil {
		logger.Error("Failed to read AI settings", "error", err)
		return defaults
	}
	if !ok || raw == "" {
		r.Save(defaults)
		return defaults
	}

	var s models.AISettings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		logger.Error("Failed to parse AI settings", "error", err)
		return defaults
	}
	if s.Provider == "" {
		s.Provider = defaults.Provider
	}
	return s
}

// Save overwrites the stored settings wholesale.
func (r *SettingsRepository) Save(s models.AISettings) {
	data, err := json.Marshal(s)
	if err != nil {
		logger.Error("Failed to encode AI settings", "error", err)
		return
	}
	if err := r.kv.Set(constants.AISettingsKey, string(data)); err != nil {
		logger.Error("Failed to save AI settings", "error", err)
	}
}

// HostedAvailable reports whether a proxy endpoint is configured.
func (r *SettingsRepository) HostedAvailable() bool {
	return r.hostedAvailable
}

package models

import (
	"encoding/json"
	"time"
)

// UserSetting is one row of the user_settings table: an opaque JSON value
// keyed per company.
type UserSetting struct {
	ID        string          `json:"id,omitempty"`
	CompanyID string          `json:"company_id"`
	Key       string          `json:"settings_key"`
	Value     json.RawMessage `json:"settings_value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// GeneratorConfigKey is the settings key the content generator config is
// stored under.
const GeneratorConfigKey = "ollama_config"

// GeneratorConfig points the portal's content generator at a local
// Ollama-style endpoint.
type GeneratorConfig struct {
	URL   string `json:"url" validate:"required,url"`
	Model string `json:"model" validate:"required"`
}

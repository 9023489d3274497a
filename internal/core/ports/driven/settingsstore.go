package driven

import "github.com/journalkit/journalkit/internal/core/domain"

// SettingsStore persists application settings.
// Backed by a TOML file in the journalkit config directory.
type SettingsStore interface {
	// Load reads settings from storage. A missing file yields defaults.
	Load() (domain.Settings, error)

	// Save persists settings to storage.
	Save(settings domain.Settings) error

	// Path returns the settings file path, for display.
	Path() string
}

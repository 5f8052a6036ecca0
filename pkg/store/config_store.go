package store

import (
	"encoding/json"

	"fyne.io/fyne/v2"
	"github.com/borgmon/colette/pkg/models"
)

// ConfigStore handles configuration persistence using Fyne preferences.
type ConfigStore struct {
	app fyne.App
}

// NewConfigStore creates a new ConfigStore instance.
func NewConfigStore(app fyne.App) *ConfigStore {
	return &ConfigStore{app: app}
}

// Load loads configuration from preferences.
func (cs *ConfigStore) Load() *models.Config {
	prefs := cs.app.Preferences()

	config := &models.Config{
		MedicationTime:       prefs.StringWithFallback("medication_time", "14:45"),
		RotationMinutes:      prefs.IntWithFallback("rotation_minutes", 60),
		NotificationsEnabled: prefs.BoolWithFallback("notifications_enabled", false),
		AutoStart:            prefs.BoolWithFallback("auto_start", true),
	}

	// Load photo list from JSON string
	photosJSON := prefs.String("photos")
	if photosJSON != "" {
		if err := json.Unmarshal([]byte(photosJSON), &config.Photos); err != nil {
			config.Photos = models.DefaultPhotos
		}
	} else {
		config.Photos = models.DefaultPhotos
	}

	return config
}

// Save saves configuration to preferences.
func (cs *ConfigStore) Save(config *models.Config) {
	prefs := cs.app.Preferences()

	prefs.SetString("medication_time", config.MedicationTime)
	prefs.SetInt("rotation_minutes", config.RotationMinutes)
	prefs.SetBool("notifications_enabled", config.NotificationsEnabled)
	prefs.SetBool("auto_start", config.AutoStart)

	// Save photo list as JSON string
	if photosJSON, err := json.Marshal(config.Photos); err == nil {
		prefs.SetString("photos", string(photosJSON))
	}
}

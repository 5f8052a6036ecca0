package models

import (
	"fmt"
	"time"
)

// Config holds the kiosk configuration. It is loaded once at startup and
// never mutated while the application runs; a manual refresh reloads it
// from scratch.
type Config struct {
	MedicationTime       string   `json:"medication_time"`       // "HH:MM", 24h
	RotationMinutes      int      `json:"rotation_minutes"`      // photo rotation interval
	Photos               []string `json:"photos"`                // background photo URLs
	NotificationsEnabled bool     `json:"notifications_enabled"` // desktop notification sound allowed
	AutoStart            bool     `json:"auto_start"`            // launch on boot
}

// DefaultPhotos is the built-in slideshow used until a photo source is
// configured.
var DefaultPhotos = []string{
	"https://images.pexels.com/photos/417074/pexels-photo-417074.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop",
	"https://images.pexels.com/photos/346529/pexels-photo-346529.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop",
	"https://images.pexels.com/photos/189349/pexels-photo-189349.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop",
	"https://images.pexels.com/photos/269264/pexels-photo-269264.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop",
	"https://images.pexels.com/photos/158828/beautiful-beautiful-mountains-breathtaking-calm-158828.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop",
	"https://images.pexels.com/photos/167699/pexels-photo-167699.jpeg?auto=compress&cs=tinysrgb&w=1920&h=1080&fit=crop",
}

// RotationInterval returns the slideshow interval as a duration.
func (c *Config) RotationInterval() time.Duration {
	return time.Duration(c.RotationMinutes) * time.Minute
}

// Validate checks the fields that would otherwise fail silently at an
// awkward moment (an unparseable target time would simply never match).
func (c *Config) Validate() error {
	if _, err := time.Parse("15:04", c.MedicationTime); err != nil {
		return fmt.Errorf("invalid medication time %q: %w", c.MedicationTime, err)
	}
	if c.RotationMinutes <= 0 {
		return fmt.Errorf("rotation interval must be positive, got %d minutes", c.RotationMinutes)
	}
	return nil
}

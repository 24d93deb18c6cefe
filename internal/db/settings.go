package db

import (
	"encoding/json"
	"log"

	"craftboard/internal/config"
)

const (
	settingsConfigKey = "config"
	settingsThemeKey  = "theme"
)

// LoadConfig reads the persisted config. Missing or unreadable settings
// fall back to defaults field by field.
func (d *DB) LoadConfig() *config.Config {
	cfg := config.Default()

	var raw string
	err := d.sql.QueryRow("SELECT value FROM settings WHERE key=?", settingsConfigKey).Scan(&raw)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal([]byte(raw), cfg); err != nil {
		log.Printf("[DB] LoadConfig: unmarshal: %v", err)
		return config.Default()
	}
	return cfg
}

// SaveConfig persists the config as a JSON blob in the settings table.
func (d *DB) SaveConfig(cfg *config.Config) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = d.sql.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?,?)",
		settingsConfigKey, string(raw),
	)
	return err
}

// Theme returns the persisted theme preference, defaulting to dark.
func (d *DB) Theme() string {
	var theme string
	err := d.sql.QueryRow("SELECT value FROM settings WHERE key=?", settingsThemeKey).Scan(&theme)
	if err != nil || theme == "" {
		return "dark"
	}
	return theme
}

// SetTheme persists the theme preference.
func (d *DB) SetTheme(theme string) error {
	_, err := d.sql.Exec(
		"INSERT OR REPLACE INTO settings (key, value) VALUES (?,?)",
		settingsThemeKey, theme,
	)
	return err
}

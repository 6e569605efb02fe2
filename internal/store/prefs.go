package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Preference keys.
const (
	KeyTheme     = "theme"
	KeyFeedQuery = "feed_query"
)

// Themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Pref returns the value stored under key, or fallback when unset.
func (d *DB) Pref(key, fallback string) (string, error) {
	var value string
	err := d.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fallback, nil
	}
	if err != nil {
		return fallback, fmt.Errorf("reading pref %s: %w", key, err)
	}
	return value, nil
}

// SetPref stores value under key.
func (d *DB) SetPref(key, value string) error {
	_, err := d.Exec(`INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing pref %s: %w", key, err)
	}
	return nil
}

// Theme returns the stored theme, dark by default.
func (d *DB) Theme() string {
	theme, err := d.Pref(KeyTheme, ThemeDark)
	if err != nil || (theme != ThemeDark && theme != ThemeLight) {
		return ThemeDark
	}
	return theme
}

// ToggleTheme flips between dark and light and returns the new theme.
func (d *DB) ToggleTheme() (string, error) {
	next := ThemeLight
	if d.Theme() == ThemeLight {
		next = ThemeDark
	}
	if err := d.SetPref(KeyTheme, next); err != nil {
		return d.Theme(), err
	}
	return next, nil
}

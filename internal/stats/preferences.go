package stats

import (
	"context"
	"fmt"
)

// Theme is the colour scheme a player picked. Engines never read it.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Preferences are per-profile settings. Only SoundEnabled reaches the engines.
type Preferences struct {
	Theme        Theme  `json:"theme"`
	SoundEnabled bool   `json:"soundEnabled"`
	Language     string `json:"language"`
}

// DefaultPreferences is what a profile gets before it saves anything.
func DefaultPreferences() Preferences {
	return Preferences{Theme: ThemeSystem, SoundEnabled: true, Language: "en"}
}

// PreferenceSource loads the preferences of one profile.
type PreferenceSource interface {
	GetPreferences(ctx context.Context) (Preferences, error)
}

// Validate rejects unknown themes and an empty language tag.
func (p Preferences) Validate() error {
	switch p.Theme {
	case ThemeLight, ThemeDark, ThemeSystem:
	default:
		return fmt.Errorf("unknown theme %q", p.Theme)
	}
	if p.Language == "" {
		return fmt.Errorf("language is required")
	}
	return nil
}

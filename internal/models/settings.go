package models

import "fmt"

// AmbientVariant names one of the synthesized background noise textures.
type AmbientVariant string

const (
	// AmbientWhite is flat-spectrum noise.
	AmbientWhite AmbientVariant = "white"
	// AmbientPink falls off at 3 dB per octave.
	AmbientPink AmbientVariant = "pink"
	// AmbientBrown falls off at 6 dB per octave.
	AmbientBrown AmbientVariant = "brown"
)

// AmbientVariants lists the selectable variants in display order.
func AmbientVariants() []AmbientVariant {
	return []AmbientVariant{AmbientWhite, AmbientPink, AmbientBrown}
}

// Valid reports whether v is a known variant.
func (v AmbientVariant) Valid() bool {
	switch v {
	case AmbientWhite, AmbientPink, AmbientBrown:
		return true
	}
	return false
}

// Next cycles to the following variant.
func (v AmbientVariant) Next() AmbientVariant {
	all := AmbientVariants()
	for i, candidate := range all {
		if candidate == v {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// AppSettings is the persisted user preference record.
type AppSettings struct {
	SoundType     AmbientVariant `json:"soundType" yaml:"soundType" validate:"oneof=white pink brown"`
	Volume        float64        `json:"volume" yaml:"volume" validate:"gte=0,lte=1"`
	FocusDuration int            `json:"focusDuration" yaml:"focusDuration" validate:"gte=1,lte=180"`
	BreakDuration int            `json:"breakDuration" yaml:"breakDuration" validate:"gte=1,lte=60"`
	DarkMode      bool           `json:"darkMode" yaml:"darkMode"`
	SoundEnabled  bool           `json:"soundEnabled" yaml:"soundEnabled"`
}

// DefaultSettings returns the settings of a fresh installation.
func DefaultSettings() AppSettings {
	return AppSettings{
		DarkMode:      true,
		SoundEnabled:  false,
		SoundType:     AmbientBrown,
		Volume:        0.5,
		FocusDuration: 25,
		BreakDuration: 5,
	}
}

// VolumePercent formats the volume for display.
func (s AppSettings) VolumePercent() string {
	return fmt.Sprintf("%.0f%%", s.Volume*100)
}

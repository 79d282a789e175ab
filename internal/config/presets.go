package config

import "sort"

var Presets = map[string]*Config{
	"sun": {
		Params: Parameters{Photons: 5, BackgroundStars: 40, Mass: 1.0, Radius: 1.0, Opacity: 1.0},
	},
	"red_dwarf": {
		Params: Parameters{Photons: 8, BackgroundStars: 60, Mass: 0.3, Radius: 0.4, Opacity: 2.0},
	},
	"giant_dense": {
		Params: Parameters{Photons: 3, BackgroundStars: 20, Mass: 20.0, Radius: 2.0, Opacity: 5.0},
	},
	"opaque_sun": {
		Params: Parameters{Photons: 5, BackgroundStars: 40, Mass: 1.0, Radius: 1.0, Opacity: 10.0},
	},
	"compact_heavy": {
		Params:   Parameters{Photons: 1, BackgroundStars: 0, Mass: 25.0, Radius: 0.2, Opacity: 1.0},
		MaxTicks: 200000,
	},
}

// GetPreset returns a copy of the named preset filled with defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Params = p.Params
	if p.MaxTicks > 0 {
		cfg.MaxTicks = p.MaxTicks
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

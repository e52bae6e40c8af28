package config

import "sort"

// Presets are named count-up speeds.
var Presets = map[string]*AnimationConfig{
	"calm":    {DurationMs: 2500},
	"default": {DurationMs: DefaultDurationMs},
	"snappy":  {DurationMs: 600},
	"instant": {DurationMs: 0},
}

func GetPreset(name string) *AnimationConfig {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

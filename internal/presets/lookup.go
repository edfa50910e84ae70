package presets

import "strings"

// Find returns the preset with the given name, ignoring case.
func Find(ps []Preset, name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range ps {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// Default returns the preset flagged as default, or the first one.
func Default(ps []Preset) (Preset, bool) {
	for _, p := range ps {
		if p.Default {
			return p, true
		}
	}
	if len(ps) == 0 {
		return Preset{}, false
	}
	return ps[0], true
}

// Package presets provides named front/back panel sizes offered by the
// cover designer.
package presets

type Preset struct {
	Name        string `json:"name"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Default     bool   `json:"default"`
	Description string `json:"description,omitempty"`
}

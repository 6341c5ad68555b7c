package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// UIConfig stores editor interaction preferences.
type UIConfig struct {
	HitRadiusPx       float64 `json:"hitRadiusPx,omitempty"`
	DragThresholdPx   float64 `json:"dragThresholdPx,omitempty"`
	RectSelectUnion   bool    `json:"rectSelectUnion,omitempty"` // shift-rect unions instead of replaces
	Palette           string  `json:"palette,omitempty"`         // path to a .gpl file
	LastFile          string  `json:"lastFile,omitempty"`
	LastSmoothPercent int     `json:"lastSmoothPercent,omitempty"`
}

// ControllerConfig maps a MIDI control surface onto editor actions.
type ControllerConfig struct {
	PortName    string `json:"portName"`
	AutoConnect bool   `json:"autoConnect"`
	JogCC       int    `json:"jogCC,omitempty"`       // scrub wheel
	IntensityCC int    `json:"intensityCC,omitempty"` // smoothing intensity knob
	PlayNote    int    `json:"playNote,omitempty"`
	UndoNote    int    `json:"undoNote,omitempty"`
	RedoNote    int    `json:"redoNote,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	Controllers []ControllerConfig `json:"controllers,omitempty"`
	UI          UIConfig           `json:"ui,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		UI: UIConfig{
			HitRadiusPx:       8,
			DragThresholdPx:   5,
			RectSelectUnion:   true,
			LastSmoothPercent: 50,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "curvelab"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()

	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// fillDefaults repairs zero values a hand-edited file may have dropped.
func (c *Config) fillDefaults() {
	if c.UI.HitRadiusPx <= 0 {
		c.UI.HitRadiusPx = 8
	}
	if c.UI.DragThresholdPx <= 0 {
		c.UI.DragThresholdPx = 5
	}
}

// AutoConnectControllers returns controllers with autoConnect enabled;
// this is the set the device manager watches ports for
func (c *Config) AutoConnectControllers() []ControllerConfig {
	var result []ControllerConfig
	for _, ctrl := range c.Controllers {
		if ctrl.AutoConnect {
			result = append(result, ctrl)
		}
	}
	return result
}

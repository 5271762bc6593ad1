package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings holds host-environment configuration: the window the
// effect renders into and where host signals come from. The effect
// itself (cell size, pulse curve, clock step, sprite size) is not
// configurable; those are compiled into the core package and the
// shader sources.
type Settings struct {
	Window WindowSettings `json:"window"`
	Motion MotionSettings `json:"motion"`
	Log    LogSettings    `json:"log"`
}

type WindowSettings struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
}

type MotionSettings struct {
	// MarkerFile overrides the reduced-motion marker location.
	// Empty means the default under the user config directory.
	MarkerFile string `json:"markerFile"`
}

type LogSettings struct {
	Level string `json:"level"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Window: WindowSettings{
			Width:  1280,
			Height: 720,
			Title:  "dotfield",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load reads settings from a JSON file, falling back to defaults when
// the file does not exist. Fields absent from the file keep their
// default values.
func Load(path string) (Settings, error) {
	settings := Default()

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No %s found, using defaults\n", path)
			return settings, nil
		}
		return settings, err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&settings); err != nil {
		return Default(), fmt.Errorf("error parsing %s: %v", path, err)
	}

	if settings.Window.Width <= 0 || settings.Window.Height <= 0 {
		return Default(), fmt.Errorf("invalid window size %dx%d in %s",
			settings.Window.Width, settings.Window.Height, path)
	}

	return settings, nil
}

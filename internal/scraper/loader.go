package scraper

import (
	"embed"
	"log/slog"
	"os"
)

//go:embed selectors.json
var embeddedSelectors embed.FS

// LoadConfig tries to load selectors in the following order:
// 1. Embedded selectors.json
// 2. External file defined by RFD_RADAR_SELECTORS_PATH
// 3. Hardcoded defaults
func LoadConfig() SelectorConfig {
	data, err := embeddedSelectors.ReadFile("selectors.json")
	if err == nil {
		sel, parseErr := LoadSelectorsFromBytes(data)
		if parseErr == nil {
			return sel
		}
		slog.Warn("Embedded selectors failed to parse. Trying file fallback.", "error", parseErr)
	}

	if configPath := os.Getenv("RFD_RADAR_SELECTORS_PATH"); configPath != "" {
		if fileSel, err := LoadSelectors(configPath); err == nil {
			slog.Info("Loaded selectors from external file", "path", configPath)
			return fileSel
		} else {
			slog.Warn("Failed to load external selectors, falling back to defaults", "path", configPath, "error", err)
		}
	}

	return DefaultSelectors()
}

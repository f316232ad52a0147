package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/profile-agent/internal/extract"
)

// LoadSelectors returns the default extraction selectors with any entries from
// the JSON file at path laid over them. An empty path yields the defaults.
func LoadSelectors(path string) (extract.Selectors, error) {
	sel := extract.DefaultSelectors()
	if path == "" {
		return sel, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("failed to read selectors file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &sel); err != nil {
		return extract.DefaultSelectors(), fmt.Errorf("failed to parse selectors JSON: %w", err)
	}
	return sel, nil
}

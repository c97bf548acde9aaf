package batch

import (
	"encoding/json"
	"os"
)

// ManifestEntry represents one rendered frame in the output manifest.
type ManifestEntry struct {
	Index      int        `json:"index"`
	Image      string     `json:"image"`
	Position   [3]float64 `json:"position"`
	Brightness float64    `json:"brightness"`
	Width      int        `json:"width"`
	Height     int        `json:"height"`
}

// WriteManifest writes the successful results as a JSON array to path.
func WriteManifest(path string, cfg Config, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Index:      r.Index,
			Image:      r.Image,
			Position:   r.Position,
			Brightness: cfg.Brightness,
			Width:      cfg.Width,
			Height:     cfg.Height,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

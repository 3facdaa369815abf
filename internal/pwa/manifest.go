package pwa

import (
	"encoding/json"
	"fmt"

	"github.com/jakoblorz/go-pwaforge/internal/models"
)

// manifestDocument is the W3C web app manifest with its keys in the order
// installers expect to see them. Fields are never omitted, so an empty
// config still yields the full fixed-key shape.
type manifestDocument struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Scope           string         `json:"scope"`
	Display         string         `json:"display"`
	Orientation     string         `json:"orientation"`
	ThemeColor      string         `json:"theme_color"`
	BackgroundColor string         `json:"background_color"`
	Icons           []manifestIcon `json:"icons"`
	Categories      []string       `json:"categories"`
}

type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

// BuildManifest renders manifest.json from the configuration. Values are
// not validated here; whatever the config carries is emitted verbatim.
func BuildManifest(cfg models.Config) ([]byte, error) {
	doc := manifestDocument{
		ID:              cfg.AppID,
		Name:            cfg.Name,
		ShortName:       cfg.ShortName,
		Description:     cfg.Description,
		StartURL:        cfg.StartURL,
		Scope:           cfg.Scope,
		Display:         cfg.Display,
		Orientation:     cfg.Orientation,
		ThemeColor:      cfg.ThemeColor,
		BackgroundColor: cfg.BackgroundColor,
		Categories:      []string{"productivity"},
	}

	for _, size := range models.IconSizes() {
		purpose := "any"
		if size >= models.MaskableMinSize {
			purpose = "any maskable"
		}
		doc.Icons = append(doc.Icons, manifestIcon{
			Src:     models.IconFileName(size),
			Sizes:   fmt.Sprintf("%dx%d", size, size),
			Type:    "image/png",
			Purpose: purpose,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}

	return append(data, '\n'), nil
}

package models

// Default presentation values used when neither the folder's metadata nor
// the user supplies one.
const (
	DefaultThemeColor      = "#317efb"
	DefaultBackgroundColor = "#ffffff"
	DefaultDisplay         = "standalone"
	DefaultOrientation     = "any"
)

// DisplayModes lists the display values the configuration form offers.
func DisplayModes() []string {
	return []string{"standalone", "fullscreen", "minimal-ui", "browser"}
}

// OrientationModes lists the orientation values the configuration form offers.
func OrientationModes() []string {
	return []string{"any", "portrait", "landscape"}
}

// Config is the edited PWA configuration. It is populated exactly once per
// generation run (from flags, a preset, or the interactive form) and never
// partially updated afterwards.
//
// No field is validated beyond the cache strategy: malformed colors, an empty
// name or conflicting manual URL edits propagate into the generated artifacts
// as-is.
type Config struct {
	// Identity
	Name        string
	ShortName   string
	AppID       string
	Description string

	// Presentation
	ThemeColor      string
	BackgroundColor string
	Display         string
	Orientation     string

	// Routing. Both derive from the sanitized folder name unless the user
	// overrides them.
	StartURL string
	Scope    string

	// Behavior
	CacheStrategy       CacheStrategy
	EnableOffline       bool
	EnableNotifications bool
}

// DefaultConfig returns the configuration a generation run starts from for a
// site with the given sanitized name. AppID defaults to the start URL, which
// is what installers fall back to when the manifest carries no id.
func DefaultConfig(sanitizedName string) Config {
	route := "/" + sanitizedName + "/"
	return Config{
		AppID:           route,
		ThemeColor:      DefaultThemeColor,
		BackgroundColor: DefaultBackgroundColor,
		Display:         DefaultDisplay,
		Orientation:     DefaultOrientation,
		StartURL:        route,
		Scope:           route,
		CacheStrategy:   CacheFirst,
		EnableOffline:   true,
	}
}

// CacheName derives the versioned cache identity for the site. The fixed
// -v1 suffix is the upgrade mechanism: bumping it is how a redeploy
// invalidates caches left by an earlier version of the same app.
func (c Config) CacheName(sanitizedName string) string {
	return sanitizedName + "-v1"
}

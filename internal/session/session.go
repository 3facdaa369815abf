// Package session threads the state of one generation run through its
// user-gated steps: ingest, configure, generate, package. Nothing here is
// shared or ambient; Reset replaces the run state wholesale.
package session

import (
	"fmt"

	"github.com/jakoblorz/go-pwaforge/internal/bundler"
	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/icons"
	"github.com/jakoblorz/go-pwaforge/internal/models"
	"github.com/jakoblorz/go-pwaforge/internal/pwa"
	"github.com/jakoblorz/go-pwaforge/internal/site"
)

// Session owns one run. Steps run strictly in order; each checks that its
// predecessor completed and fails without touching prior state otherwise.
type Session struct {
	fs       filesystem.FileSystem
	ingester *site.Ingester

	Site       *models.Site
	Config     models.Config
	IconSource []byte
	Artifacts  *models.Artifacts
}

// Option configures a Session.
type Option func(*Session)

// WithIngester overrides the folder ingester, mainly to silence warnings and
// pauses in tests.
func WithIngester(ing *site.Ingester) Option {
	return func(s *Session) {
		s.ingester = ing
	}
}

// New creates a Session on the given filesystem.
func New(fs filesystem.FileSystem, options ...Option) *Session {
	s := &Session{
		fs:       fs,
		ingester: site.NewIngester(fs),
	}

	for _, option := range options {
		option(s)
	}

	return s
}

// Ingest scans the folder, then seeds the configuration from defaults and
// whatever metadata the root document reveals. The seeded configuration is a
// starting point; Configure replaces it with the user's final answers.
func (s *Session) Ingest(rootPath string) error {
	ingested, err := s.ingester.Scan(rootPath)
	if err != nil {
		return err
	}

	s.Site = ingested
	s.Config = s.seedConfig(ingested)
	return nil
}

func (s *Session) seedConfig(ingested *models.Site) models.Config {
	cfg := models.DefaultConfig(ingested.SanitizedName)

	root, ok := ingested.RootDocument()
	if !ok {
		return cfg
	}

	meta := site.ExtractMetadata(root.Content)
	if meta.Title != "" {
		cfg.Name = meta.Title
		cfg.ShortName = meta.Title
	}
	if meta.Description != "" {
		cfg.Description = meta.Description
	}
	if meta.ThemeColor != "" {
		cfg.ThemeColor = meta.ThemeColor
	}

	return cfg
}

// SetIconSource supplies the optional source image for icon resampling.
// Without one, generation paints placeholder icons.
func (s *Session) SetIconSource(data []byte) {
	s.IconSource = data
}

// Configure replaces the configuration wholesale with the user's answers.
func (s *Session) Configure(cfg models.Config) {
	s.Config = cfg
}

// Generate renders every artifact of the bundle. On failure the session
// keeps its previous artifacts state.
func (s *Session) Generate() error {
	if s.Site == nil {
		return fmt.Errorf("no folder ingested yet")
	}

	cfg := s.Config

	buildID, err := GenerateBuildID()
	if err != nil {
		return err
	}

	root, ok := s.Site.RootDocument()
	if !ok {
		return fmt.Errorf("no index.html found at the top of the folder")
	}

	built := models.Artifacts{BuildID: buildID}

	built.InjectedHTML = pwa.InjectHTML(root.Content, cfg)

	if primary, ok := s.Site.PrimaryJS(); ok {
		built.EnhancedJS = pwa.EnhanceScript(primary.Content)
	}

	if built.ManifestJSON, err = pwa.BuildManifest(cfg); err != nil {
		return err
	}
	if built.ServiceWorkerJS, err = pwa.BuildServiceWorker(s.Site, cfg); err != nil {
		return err
	}
	if cfg.EnableOffline {
		if built.OfflineHTML, err = pwa.BuildOfflinePage(cfg); err != nil {
			return err
		}
	}
	if built.Icons, err = icons.Generate(s.IconSource, cfg); err != nil {
		return err
	}
	if built.ReadmeMD, err = pwa.BuildReadme(s.Site, cfg, buildID); err != nil {
		return err
	}

	s.Artifacts = &built
	return nil
}

// Package writes the archive under outDir and returns the written path.
func (s *Session) Package(outDir string) (string, error) {
	if s.Site == nil {
		return "", fmt.Errorf("no folder ingested yet")
	}
	if s.Artifacts == nil {
		return "", fmt.Errorf("nothing generated yet")
	}

	return bundler.NewPackager(s.fs).Write(s.Site, *s.Artifacts, outDir)
}

// Reset discards all run state. The next run starts from Ingest again.
func (s *Session) Reset() {
	s.Site = nil
	s.Config = models.Config{}
	s.IconSource = nil
	s.Artifacts = nil
}

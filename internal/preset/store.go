// Package preset persists PWA configurations as frontmatter markdown files
// so a folder can be regenerated later without retyping the form.
package preset

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/models"
	"gopkg.in/yaml.v3"
)

// DirName is the directory presets live in, next to the scanned folder.
const DirName = ".pwaforge"

// Preset is one saved configuration. Name doubles as the file name; Notes is
// the free-form markdown body under the frontmatter.
type Preset struct {
	Name     string
	Config   models.Config
	Notes    string
	FilePath string
}

// configMatter is the frontmatter shape of a preset file.
type configMatter struct {
	Name                string `yaml:"name"`
	ShortName           string `yaml:"short_name"`
	AppID               string `yaml:"app_id"`
	Description         string `yaml:"description"`
	ThemeColor          string `yaml:"theme_color"`
	BackgroundColor     string `yaml:"background_color"`
	Display             string `yaml:"display"`
	Orientation         string `yaml:"orientation"`
	StartURL            string `yaml:"start_url"`
	Scope               string `yaml:"scope"`
	CacheStrategy       string `yaml:"cache_strategy"`
	EnableOffline       bool   `yaml:"enable_offline"`
	EnableNotifications bool   `yaml:"enable_notifications"`
}

// Store handles preset operations
type Store struct {
	fs        filesystem.FileSystem
	presetDir string
}

// NewStore creates a new preset store rooted at presetDir.
func NewStore(fs filesystem.FileSystem, presetDir string) *Store {
	return &Store{
		fs:        fs,
		presetDir: presetDir,
	}
}

// Dir returns the preset directory.
func (s *Store) Dir() string {
	return s.presetDir
}

// List reads every preset file in the store. Files that fail to parse are
// skipped with a warning so one broken preset does not hide the rest.
func (s *Store) List() ([]*Preset, error) {
	if !s.fs.Exists(s.presetDir) {
		return []*Preset{}, nil
	}

	entries, err := s.fs.ReadDir(s.presetDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset directory: %w", err)
	}

	var presets []*Preset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		filePath := filepath.Join(s.presetDir, entry.Name())
		p, err := s.Read(filePath)
		if err != nil {
			fmt.Printf("Warning: failed to read preset %s: %v\n", entry.Name(), err)
			continue
		}

		presets = append(presets, p)
	}

	return presets, nil
}

// Load reads a preset by name.
func (s *Store) Load(name string) (*Preset, error) {
	filePath := filepath.Join(s.presetDir, name+".md")
	if !s.fs.Exists(filePath) {
		return nil, fmt.Errorf("preset %s not found", name)
	}
	return s.Read(filePath)
}

// Read reads a single preset file.
func (s *Store) Read(filePath string) (*Preset, error) {
	data, err := s.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return s.Parse(filePath, data)
}

// Parse parses preset data from bytes.
func (s *Store) Parse(filePath string, data []byte) (*Preset, error) {
	var matter configMatter

	rest, err := frontmatter.Parse(bytes.NewReader(data), &matter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	strategy, err := models.ParseCacheStrategy(matter.CacheStrategy)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSuffix(filepath.Base(filePath), ".md")

	return &Preset{
		Name: name,
		Config: models.Config{
			Name:                matter.Name,
			ShortName:           matter.ShortName,
			AppID:               matter.AppID,
			Description:         matter.Description,
			ThemeColor:          matter.ThemeColor,
			BackgroundColor:     matter.BackgroundColor,
			Display:             matter.Display,
			Orientation:         matter.Orientation,
			StartURL:            matter.StartURL,
			Scope:               matter.Scope,
			CacheStrategy:       strategy,
			EnableOffline:       matter.EnableOffline,
			EnableNotifications: matter.EnableNotifications,
		},
		Notes:    strings.TrimSpace(string(rest)),
		FilePath: filePath,
	}, nil
}

// Save writes a preset file, creating the preset directory if needed.
func (s *Store) Save(p *Preset) error {
	if !s.fs.Exists(s.presetDir) {
		if err := s.fs.MkdirAll(s.presetDir, 0755); err != nil {
			return fmt.Errorf("failed to create preset directory: %w", err)
		}
	}

	matter := configMatter{
		Name:                p.Config.Name,
		ShortName:           p.Config.ShortName,
		AppID:               p.Config.AppID,
		Description:         p.Config.Description,
		ThemeColor:          p.Config.ThemeColor,
		BackgroundColor:     p.Config.BackgroundColor,
		Display:             p.Config.Display,
		Orientation:         p.Config.Orientation,
		StartURL:            p.Config.StartURL,
		Scope:               p.Config.Scope,
		CacheStrategy:       p.Config.CacheStrategy.String(),
		EnableOffline:       p.Config.EnableOffline,
		EnableNotifications: p.Config.EnableNotifications,
	}

	encoded, err := yaml.Marshal(&matter)
	if err != nil {
		return fmt.Errorf("failed to encode preset frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(encoded)
	buf.WriteString("---\n")
	if p.Notes != "" {
		buf.WriteString("\n")
		buf.WriteString(p.Notes)
		buf.WriteString("\n")
	}

	filePath := filepath.Join(s.presetDir, p.Name+".md")
	if err := s.fs.WriteFile(filePath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write preset file: %w", err)
	}

	p.FilePath = filePath
	return nil
}

// Delete removes a preset by name.
func (s *Store) Delete(name string) error {
	filePath := filepath.Join(s.presetDir, name+".md")
	if !s.fs.Exists(filePath) {
		return fmt.Errorf("preset %s not found", name)
	}

	if err := s.fs.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}

	return nil
}

// Package bundler packs the site and its generated artifacts into the final
// zip archive.
package bundler

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/models"
)

// ArchiveName returns the bundle file name for a site.
func ArchiveName(s *models.Site) string {
	return s.SanitizedName + "-pwa.zip"
}

// Build assembles the archive in memory. Original files keep their relative
// paths and ingest order, with the injected root document and the enhanced
// primary script substituted in place; the generated artifacts follow in a
// fixed order. Nothing is re-validated here.
func Build(s *models.Site, a models.Artifacts) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, f := range s.Files {
		content := f.Content
		switch {
		case f.IsRootDocument && len(a.InjectedHTML) > 0:
			content = a.InjectedHTML
		case f.IsPrimaryJS && len(a.EnhancedJS) > 0:
			content = a.EnhancedJS
		}
		if err := writeEntry(zw, f.Path, content); err != nil {
			return nil, err
		}
	}

	if err := writeEntry(zw, "manifest.json", a.ManifestJSON); err != nil {
		return nil, err
	}
	if err := writeEntry(zw, "sw.js", a.ServiceWorkerJS); err != nil {
		return nil, err
	}
	if len(a.OfflineHTML) > 0 {
		if err := writeEntry(zw, "offline.html", a.OfflineHTML); err != nil {
			return nil, err
		}
	}

	for _, size := range models.IconSizes() {
		name := models.IconFileName(size)
		icon, ok := a.Icons[name]
		if !ok {
			return nil, fmt.Errorf("icon %s missing from artifacts", name)
		}
		if err := writeEntry(zw, name, icon); err != nil {
			return nil, err
		}
	}

	if err := writeEntry(zw, "README.md", a.ReadmeMD); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	header := &zip.FileHeader{Name: name, Method: zip.Deflate}
	header.SetMode(0o644)

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to add %s to archive: %w", name, err)
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write %s to archive: %w", name, err)
	}
	return nil
}

// Packager writes built archives to disk.
type Packager struct {
	fs filesystem.FileSystem
}

// NewPackager creates a new Packager.
func NewPackager(fs filesystem.FileSystem) *Packager {
	return &Packager{fs: fs}
}

// Write builds the archive and stores it under outDir, returning the
// written path.
func (p *Packager) Write(s *models.Site, a models.Artifacts, outDir string) (string, error) {
	data, err := Build(s, a)
	if err != nil {
		return "", err
	}

	if err := p.fs.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outPath := filepath.Join(outDir, ArchiveName(s))
	if err := p.fs.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive: %w", err)
	}

	return outPath, nil
}

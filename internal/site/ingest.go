package site

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/dustin/go-humanize"
	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/models"
)

// Size thresholds for an ingested folder, in bytes.
const (
	MaxTotalSize  = 100 * 1024 * 1024
	WarnTotalSize = 50 * 1024 * 1024
)

// DefaultWarnPause is how long ingestion lingers after printing the
// large-folder warning so the message registers before output scrolls on.
const DefaultWarnPause = 1500 * time.Millisecond

// IgnoreFileName is read from the folder root to exclude paths from the
// bundle, using gitignore pattern syntax.
const IgnoreFileName = ".pwaignore"

// Entry is one file as delivered by a folder walk: its path still carries
// the folder name as the first segment, the way directory pickers report
// relative paths. MimeType may be empty, in which case ingestion classifies
// by extension.
type Entry struct {
	Path     string
	Content  []byte
	MimeType string
}

// Ingester reads a static site folder into a models.Site.
type Ingester struct {
	fs        filesystem.FileSystem
	out       io.Writer
	warnPause time.Duration
}

// Option configures ingestion behavior.
type Option func(*Ingester)

// WithWarnPause overrides the pause after the large-folder warning.
func WithWarnPause(d time.Duration) Option {
	return func(ing *Ingester) {
		ing.warnPause = d
	}
}

// WithOutput redirects warning output.
func WithOutput(w io.Writer) Option {
	return func(ing *Ingester) {
		ing.out = w
	}
}

// NewIngester creates a new Ingester.
func NewIngester(fs filesystem.FileSystem, options ...Option) *Ingester {
	ing := &Ingester{
		fs:        fs,
		out:       os.Stdout,
		warnPause: DefaultWarnPause,
	}

	for _, option := range options {
		option(ing)
	}

	return ing
}

// Scan walks rootPath and ingests every regular file beneath it. Dot-prefixed
// files and directories are skipped, as is anything matched by a .pwaignore
// file at the folder root.
func (ing *Ingester) Scan(rootPath string) (*models.Site, error) {
	info, err := ing.fs.Stat(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", rootPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", rootPath)
	}

	rootName := filepath.Base(filepath.Clean(rootPath))

	ignore, err := ing.loadIgnoreFile(rootPath)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	if err := ing.fs.WalkDir(rootPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == rootPath {
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(rootPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if ignore != nil {
			if match := ignore.Relative(rel, entry.IsDir()); match != nil && match.Ignore() {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if entry.IsDir() {
			return nil
		}

		content, readErr := ing.fs.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("failed to read %s: %w", path, readErr)
		}

		entries = append(entries, Entry{Path: rootName + "/" + rel, Content: content})
		return nil
	}); err != nil {
		return nil, err
	}

	return ing.Ingest(entries)
}

// Ingest turns walked entries into a validated Site. The first path segment
// of every entry (the folder name) is stripped; classification follows entry
// order, so the first .css and the first .js outside node_modules/dist win
// their primary flags.
func (ing *Ingester) Ingest(entries []Entry) (*models.Site, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("folder contains no files")
	}

	var total int64
	for _, e := range entries {
		total += int64(len(e.Content))
	}
	if total > MaxTotalSize {
		return nil, fmt.Errorf("folder too large: %s exceeds the %s limit",
			humanize.IBytes(uint64(total)), humanize.IBytes(uint64(MaxTotalSize)))
	}
	if total > WarnTotalSize {
		fmt.Fprintf(ing.out, "⚠️  Large folder: %s (limit %s). Generation may take a while.\n",
			humanize.IBytes(uint64(total)), humanize.IBytes(uint64(MaxTotalSize)))
		time.Sleep(ing.warnPause)
	}

	rootName := firstSegment(entries[0].Path)

	files := make([]models.FileRecord, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))

	var (
		rootContent []byte
		hasRoot     bool
		cssTaken    bool
		jsTaken     bool
	)

	for _, e := range entries {
		rel := stripFirstSegment(e.Path)
		if rel == "" {
			continue
		}
		if _, dup := seen[rel]; dup {
			continue
		}
		seen[rel] = struct{}{}

		record := models.FileRecord{
			Path:     rel,
			Content:  e.Content,
			MimeType: e.MimeType,
			Size:     int64(len(e.Content)),
		}
		if record.MimeType == "" {
			record.MimeType = MimeByExtension(rel)
		}

		switch {
		case rel == "index.html":
			record.IsRootDocument = true
			hasRoot = true
			rootContent = e.Content
		case !cssTaken && strings.HasSuffix(rel, ".css"):
			record.IsPrimaryCSS = true
			cssTaken = true
		case !jsTaken && strings.HasSuffix(rel, ".js") && !isVendorPath(rel):
			record.IsPrimaryJS = true
			jsTaken = true
		}

		files = append(files, record)
	}

	if !hasRoot {
		return nil, fmt.Errorf("no index.html found at the top of the folder")
	}
	if !looksLikeHTML(rootContent) {
		return nil, fmt.Errorf("index.html does not look like an HTML document")
	}

	return &models.Site{
		RootName:      rootName,
		SanitizedName: models.SanitizeName(rootName),
		Files:         files,
		TotalSize:     total,
	}, nil
}

func (ing *Ingester) loadIgnoreFile(rootPath string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(rootPath, IgnoreFileName)
	if !ing.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := ing.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFileName, err)
	}

	return gitignore.New(bytes.NewReader(data), rootPath, nil), nil
}

func firstSegment(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

func stripFirstSegment(p string) string {
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[i+1:]
	}
	return ""
}

// isVendorPath reports whether a path contains node_modules or dist and is
// therefore never picked as the primary script.
func isVendorPath(p string) bool {
	return strings.Contains(p, "node_modules") || strings.Contains(p, "dist")
}

func looksLikeHTML(content []byte) bool {
	lower := strings.ToLower(string(content))
	return strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html")
}

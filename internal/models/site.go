package models

import (
	"strings"
)

// FileRecord is a single file read from the chosen folder. Records are
// immutable once ingested; identity is the case-sensitive relative path.
type FileRecord struct {
	// Path is the posix-style path relative to the folder root, with the
	// root segment itself already stripped (e.g. "css/site.css").
	Path string

	// Content holds the raw file bytes.
	Content []byte

	// MimeType is the declared or extension-derived MIME type.
	MimeType string

	// Size is len(Content) in bytes.
	Size int64

	// IsRootDocument marks the entry document (path == "index.html").
	IsRootDocument bool

	// IsPrimaryCSS marks the first stylesheet in input order.
	IsPrimaryCSS bool

	// IsPrimaryJS marks the first script in input order that is not under
	// node_modules or dist.
	IsPrimaryJS bool
}

// Site is the ingested folder as a whole.
type Site struct {
	// RootName is the name of the folder the user picked.
	RootName string

	// SanitizedName is RootName reduced to [a-z0-9-]. It seeds the start
	// URL, scope, cache name and archive name.
	SanitizedName string

	// Files holds every ingested record in input order. Paths are unique.
	Files []FileRecord

	// TotalSize is the byte sum over Files.
	TotalSize int64
}

// RootDocument returns the record flagged as the entry document.
func (s *Site) RootDocument() (*FileRecord, bool) {
	return s.findFlagged(func(f *FileRecord) bool { return f.IsRootDocument })
}

// PrimaryCSS returns the record flagged as the primary stylesheet.
func (s *Site) PrimaryCSS() (*FileRecord, bool) {
	return s.findFlagged(func(f *FileRecord) bool { return f.IsPrimaryCSS })
}

// PrimaryJS returns the record flagged as the primary script.
func (s *Site) PrimaryJS() (*FileRecord, bool) {
	return s.findFlagged(func(f *FileRecord) bool { return f.IsPrimaryJS })
}

func (s *Site) findFlagged(match func(*FileRecord) bool) (*FileRecord, bool) {
	for i := range s.Files {
		if match(&s.Files[i]) {
			return &s.Files[i], true
		}
	}
	return nil, false
}

// FileCount returns the number of ingested files.
func (s *Site) FileCount() int {
	return len(s.Files)
}

// SanitizeName lowers a folder name and collapses every run of characters
// outside [a-z0-9] into a single dash. An all-junk name becomes "app" so the
// derived routes and cache name are never empty.
func SanitizeName(name string) string {
	var b strings.Builder
	lastDash := true // swallow leading dashes
	for _, r := range strings.ToLower(name) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	sanitized := strings.TrimSuffix(b.String(), "-")
	if sanitized == "" {
		return "app"
	}
	return sanitized
}

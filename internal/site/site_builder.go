package site

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
)

// SiteBuilder helps create test site folders
type SiteBuilder struct {
	fs   *filesystem.MockFileSystem
	root string
}

// NewSiteBuilder creates a new SiteBuilder rooted at the given folder path
func NewSiteBuilder(root string) *SiteBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)
	fs.SetCurrentDir(filepath.Dir(root))

	return &SiteBuilder{
		fs:   fs,
		root: root,
	}
}

// AddFile adds a file to the site folder
func (sb *SiteBuilder) AddFile(path, content string) *SiteBuilder {
	sb.fs.AddFile(filepath.Join(sb.root, path), []byte(content))
	return sb
}

// AddIndexHTML adds a minimal valid root document with the given title
func (sb *SiteBuilder) AddIndexHTML(title string) *SiteBuilder {
	content := fmt.Sprintf(
		"<!doctype html>\n<html>\n<head><title>%s</title></head>\n<body></body>\n</html>\n", title)
	return sb.AddFile("index.html", content)
}

// AddIgnoreFile adds a .pwaignore with the given patterns
func (sb *SiteBuilder) AddIgnoreFile(patterns ...string) *SiteBuilder {
	return sb.AddFile(IgnoreFileName, strings.Join(patterns, "\n")+"\n")
}

// Root returns the site folder path
func (sb *SiteBuilder) Root() string {
	return sb.root
}

// FileSystem returns the mock filesystem
func (sb *SiteBuilder) FileSystem() *filesystem.MockFileSystem {
	return sb.fs
}

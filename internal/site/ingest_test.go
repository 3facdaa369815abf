package site

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
)

const minimalIndex = "<!doctype html><html><head><title>Demo</title></head><body></body></html>"

func newTestIngester(fs filesystem.FileSystem) *Ingester {
	return NewIngester(fs, WithWarnPause(0), WithOutput(&bytes.Buffer{}))
}

func TestIngest_StripsRootAndClassifies(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	site, err := ing.Ingest([]Entry{
		{Path: "my-app/index.html", Content: []byte(minimalIndex)},
		{Path: "my-app/css/styles.css", Content: []byte("body{}")},
		{Path: "my-app/js/app.js", Content: []byte("console.log(1)")},
		{Path: "my-app/img/logo.png", Content: []byte{0x89, 0x50}},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if site.RootName != "my-app" {
		t.Errorf("RootName = %q, want my-app", site.RootName)
	}
	if site.SanitizedName != "my-app" {
		t.Errorf("SanitizedName = %q, want my-app", site.SanitizedName)
	}
	if site.FileCount() != 4 {
		t.Fatalf("FileCount() = %d, want 4", site.FileCount())
	}

	root, ok := site.RootDocument()
	if !ok || root.Path != "index.html" {
		t.Errorf("RootDocument() = %v, %v", root, ok)
	}
	if root.MimeType != "text/html" {
		t.Errorf("root MimeType = %q, want text/html", root.MimeType)
	}

	css, ok := site.PrimaryCSS()
	if !ok || css.Path != "css/styles.css" {
		t.Errorf("PrimaryCSS() = %v, %v", css, ok)
	}

	js, ok := site.PrimaryJS()
	if !ok || js.Path != "js/app.js" {
		t.Errorf("PrimaryJS() = %v, %v", js, ok)
	}

	if site.TotalSize != int64(len(minimalIndex)+6+14+2) {
		t.Errorf("TotalSize = %d", site.TotalSize)
	}
}

func TestIngest_NestedIndexIsNotRoot(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	site, err := ing.Ingest([]Entry{
		{Path: "app/docs/index.html", Content: []byte(minimalIndex)},
	})
	if err == nil {
		t.Fatalf("Ingest() expected error, got site %+v", site)
	}
	if site != nil {
		t.Error("Ingest() returned a partially populated site on error")
	}
	if !strings.Contains(err.Error(), "no index.html") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIngest_RootDocumentFailsSniff(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	site, err := ing.Ingest([]Entry{
		{Path: "app/index.html", Content: []byte("just some text")},
	})
	if err == nil {
		t.Fatal("Ingest() expected error")
	}
	if site != nil {
		t.Error("Ingest() returned a site on sniff failure")
	}
}

func TestIngest_SniffIsCaseInsensitive(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"uppercase doctype", "<!DOCTYPE HTML><body></body>"},
		{"bare html tag", "<HTML><body></body></HTML>"},
		{"mixed case", "<!DocType html>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ing := newTestIngester(filesystem.NewMockFileSystem())
			if _, err := ing.Ingest([]Entry{
				{Path: "app/index.html", Content: []byte(tt.content)},
			}); err != nil {
				t.Errorf("Ingest() error = %v", err)
			}
		})
	}
}

func TestIngest_FirstMatchWins(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	site, err := ing.Ingest([]Entry{
		{Path: "app/index.html", Content: []byte(minimalIndex)},
		{Path: "app/z-first.css", Content: []byte("a{}")},
		{Path: "app/a-second.css", Content: []byte("b{}")},
		{Path: "app/node_modules/lib.js", Content: []byte("x")},
		{Path: "app/dist/bundle.js", Content: []byte("y")},
		{Path: "app/main.js", Content: []byte("z")},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	css, ok := site.PrimaryCSS()
	if !ok || css.Path != "z-first.css" {
		t.Errorf("PrimaryCSS() = %v, want z-first.css (entry order wins)", css)
	}

	js, ok := site.PrimaryJS()
	if !ok || js.Path != "main.js" {
		t.Errorf("PrimaryJS() = %v, want main.js (vendor paths excluded)", js)
	}
}

func TestIngest_OnlyVendorScripts(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	site, err := ing.Ingest([]Entry{
		{Path: "app/index.html", Content: []byte(minimalIndex)},
		{Path: "app/node_modules/lib.js", Content: []byte("x")},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if _, ok := site.PrimaryJS(); ok {
		t.Error("PrimaryJS() found a script under node_modules")
	}
}

func TestIngest_EmptyFolder(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	if _, err := ing.Ingest(nil); err == nil {
		t.Fatal("Ingest() expected error for empty folder")
	}
}

func TestIngest_HardSizeCeiling(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	site, err := ing.Ingest([]Entry{
		{Path: "app/index.html", Content: []byte(minimalIndex)},
		{Path: "app/blob.bin", Content: make([]byte, MaxTotalSize+1-len(minimalIndex))},
	})
	if err == nil {
		t.Fatal("Ingest() expected size error")
	}
	if site != nil {
		t.Error("Ingest() returned a site over the ceiling")
	}
	if !strings.Contains(err.Error(), "too large") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestIngest_SoftSizeThresholdWarnsAndProceeds(t *testing.T) {
	var out bytes.Buffer
	ing := NewIngester(filesystem.NewMockFileSystem(), WithWarnPause(0), WithOutput(&out))

	site, err := ing.Ingest([]Entry{
		{Path: "app/index.html", Content: []byte(minimalIndex)},
		{Path: "app/blob.bin", Content: make([]byte, WarnTotalSize+1-len(minimalIndex))},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if site == nil {
		t.Fatal("Ingest() returned nil site")
	}
	if !strings.Contains(out.String(), "Large folder") {
		t.Errorf("expected warning output, got %q", out.String())
	}
}

func TestIngest_UnderSoftThresholdIsSilent(t *testing.T) {
	var out bytes.Buffer
	ing := NewIngester(filesystem.NewMockFileSystem(), WithWarnPause(0), WithOutput(&out))

	if _, err := ing.Ingest([]Entry{
		{Path: "app/index.html", Content: []byte(minimalIndex)},
	}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestIngest_DeclaredMimePreserved(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	site, err := ing.Ingest([]Entry{
		{Path: "app/index.html", Content: []byte(minimalIndex)},
		{Path: "app/data.custom", Content: []byte("x"), MimeType: "application/x-custom"},
		{Path: "app/other.zzz", Content: []byte("y")},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	byPath := map[string]string{}
	for _, f := range site.Files {
		byPath[f.Path] = f.MimeType
	}

	if byPath["data.custom"] != "application/x-custom" {
		t.Errorf("declared MIME overwritten: %q", byPath["data.custom"])
	}
	if byPath["other.zzz"] != DefaultMimeType {
		t.Errorf("unknown extension MIME = %q, want %q", byPath["other.zzz"], DefaultMimeType)
	}
}

func TestIngest_DuplicatePathsKeepFirst(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	site, err := ing.Ingest([]Entry{
		{Path: "app/index.html", Content: []byte(minimalIndex)},
		{Path: "app/notes.txt", Content: []byte("first")},
		{Path: "app/notes.txt", Content: []byte("second")},
	})
	if err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}

	if site.FileCount() != 2 {
		t.Fatalf("FileCount() = %d, want 2", site.FileCount())
	}
	for _, f := range site.Files {
		if f.Path == "notes.txt" && string(f.Content) != "first" {
			t.Errorf("duplicate path content = %q, want first", f.Content)
		}
	}
}

func TestScan_WalksFolder(t *testing.T) {
	sb := NewSiteBuilder("/home/user/my-app")
	sb.AddIndexHTML("My App")
	sb.AddFile("styles.css", "body{}")
	sb.AddFile("js/app.js", "console.log(1)")

	ing := newTestIngester(sb.FileSystem())
	site, err := ing.Scan(sb.Root())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if site.RootName != "my-app" {
		t.Errorf("RootName = %q, want my-app", site.RootName)
	}
	if site.FileCount() != 3 {
		t.Errorf("FileCount() = %d, want 3", site.FileCount())
	}
	if _, ok := site.RootDocument(); !ok {
		t.Error("RootDocument() missing after scan")
	}
}

func TestScan_SkipsHiddenAndIgnored(t *testing.T) {
	sb := NewSiteBuilder("/home/user/my-app")
	sb.AddIndexHTML("My App")
	sb.AddFile(".git/config", "[core]")
	sb.AddFile(".DS_Store", "junk")
	sb.AddFile("build/out.txt", "artifact")
	sb.AddFile("notes/keep.txt", "keep")
	sb.AddIgnoreFile("build/")

	ing := newTestIngester(sb.FileSystem())
	site, err := ing.Scan(sb.Root())
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	for _, f := range site.Files {
		switch {
		case strings.HasPrefix(f.Path, ".git/"), f.Path == ".DS_Store":
			t.Errorf("hidden path ingested: %s", f.Path)
		case strings.HasPrefix(f.Path, "build/"):
			t.Errorf("ignored path ingested: %s", f.Path)
		case f.Path == IgnoreFileName:
			t.Errorf("%s itself ingested", IgnoreFileName)
		}
	}

	if site.FileCount() != 2 {
		t.Errorf("FileCount() = %d, want 2 (index.html, notes/keep.txt)", site.FileCount())
	}
}

func TestScan_MissingFolder(t *testing.T) {
	ing := newTestIngester(filesystem.NewMockFileSystem())

	if _, err := ing.Scan("/does/not/exist"); err == nil {
		t.Fatal("Scan() expected error")
	}
}

func TestMimeByExtension(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"index.html", "text/html"},
		{"css/styles.CSS", "text/css"},
		{"app.js", "text/javascript"},
		{"icon.svg", "image/svg+xml"},
		{"font.woff2", "font/woff2"},
		{"data.bin", "application/octet-stream"},
		{"no-extension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := MimeByExtension(tt.path); got != tt.expected {
				t.Errorf("MimeByExtension(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

package e2e_test

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/jakoblorz/go-pwaforge/internal/cli"
	"github.com/jakoblorz/go-pwaforge/internal/filesystem"
	"github.com/jakoblorz/go-pwaforge/internal/models"
	"github.com/jakoblorz/go-pwaforge/internal/pwa"
	"github.com/jakoblorz/go-pwaforge/internal/session"
	"github.com/jakoblorz/go-pwaforge/internal/site"
)

const demoRootDocument = `<!doctype html><html><head><title>Demo</title></head><body></body></html>`

func newDemoFileSystem() *filesystem.MockFileSystem {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/sites")
	fs.AddDir("/sites/Demo")
	fs.AddFile("/sites/Demo/index.html", []byte(demoRootDocument))
	fs.SetCurrentDir("/sites")
	return fs
}

func newQuietSession(fs filesystem.FileSystem) *session.Session {
	ing := site.NewIngester(fs, site.WithWarnPause(0), site.WithOutput(&bytes.Buffer{}))
	return session.New(fs, session.WithIngester(ing))
}

func archiveNames(t *testing.T, fs filesystem.FileSystem, archivePath string) []string {
	t.Helper()

	data, err := fs.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("failed to read archive: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func archiveMember(t *testing.T, fs filesystem.FileSystem, archivePath, member string) []byte {
	t.Helper()

	data, err := fs.ReadFile(archivePath)
	if err != nil {
		t.Fatalf("failed to read archive: %v", err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}

	for _, f := range r.File {
		if f.Name != member {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open member %s: %v", member, err)
		}
		defer rc.Close()
		content, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("failed to read member %s: %v", member, err)
		}
		return content
	}

	t.Fatalf("member %s not found in archive", member)
	return nil
}

func TestGenerateScenario(t *testing.T) {
	fs := newDemoFileSystem()
	sess := newQuietSession(fs)

	// Step 1: Ingest the folder
	if err := sess.Ingest("/sites/Demo"); err != nil {
		t.Fatalf("failed to ingest: %v", err)
	}

	if sess.Site.SanitizedName != "demo" {
		t.Errorf("expected sanitized name demo, got %s", sess.Site.SanitizedName)
	}
	if sess.Config.Name != "Demo" {
		t.Errorf("expected seeded name Demo, got %q", sess.Config.Name)
	}

	// Step 2: Configure with cache-first and no offline page
	cfg := sess.Config
	cfg.CacheStrategy = models.CacheFirst
	cfg.EnableOffline = false
	sess.Configure(cfg)

	// Step 3: Generate artifacts
	if err := sess.Generate(); err != nil {
		t.Fatalf("failed to generate: %v", err)
	}

	var manifest struct {
		Name  string `json:"name"`
		Icons []struct {
			Sizes   string `json:"sizes"`
			Purpose string `json:"purpose"`
		} `json:"icons"`
	}
	if err := json.Unmarshal(sess.Artifacts.ManifestJSON, &manifest); err != nil {
		t.Fatalf("failed to parse manifest: %v", err)
	}
	if manifest.Name != "Demo" {
		t.Errorf("expected manifest name Demo, got %q", manifest.Name)
	}
	if len(manifest.Icons) != 8 {
		t.Errorf("expected 8 manifest icons, got %d", len(manifest.Icons))
	}

	// The root document appears twice: once from the fixed head of the
	// list, once from the file iteration.
	wantPrecache := []string{"/demo/", "/demo/index.html", "/demo/manifest.json", "/demo/index.html"}
	gotPrecache := pwa.PrecacheURLs(sess.Site, cfg)
	if !reflect.DeepEqual(gotPrecache, wantPrecache) {
		t.Errorf("expected precache %v, got %v", wantPrecache, gotPrecache)
	}

	sw := string(sess.Artifacts.ServiceWorkerJS)
	if got := strings.Count(sw, `"/demo/index.html"`); got != 2 {
		t.Errorf("expected the root document twice in the precache list, got %d", got)
	}
	if !strings.Contains(sw, "function cacheFirst") {
		t.Error("service worker missing the cache-first strategy")
	}
	if strings.Contains(sw, "function networkFirst") || strings.Contains(sw, "function staleWhileRevalidate") {
		t.Error("service worker contains a strategy that was not selected")
	}
	if len(sess.Artifacts.OfflineHTML) != 0 {
		t.Error("offline page generated although disabled")
	}

	// Step 4: Package the archive
	archivePath, err := sess.Package("/sites")
	if err != nil {
		t.Fatalf("failed to package: %v", err)
	}
	if archivePath != "/sites/demo-pwa.zip" {
		t.Errorf("expected archive at /sites/demo-pwa.zip, got %s", archivePath)
	}

	names := archiveNames(t, fs, archivePath)
	want := []string{
		"index.html", "manifest.json", "sw.js",
		"icons/icon-72x72.png", "icons/icon-96x96.png", "icons/icon-128x128.png",
		"icons/icon-144x144.png", "icons/icon-152x152.png", "icons/icon-192x192.png",
		"icons/icon-384x384.png", "icons/icon-512x512.png",
		"README.md",
	}

	sortedGot := append([]string(nil), names...)
	sortedWant := append([]string(nil), want...)
	sort.Strings(sortedGot)
	sort.Strings(sortedWant)
	if !reflect.DeepEqual(sortedGot, sortedWant) {
		t.Errorf("expected archive members %v, got %v", sortedWant, sortedGot)
	}

	for _, name := range names {
		if name == "offline.html" {
			t.Error("archive contains offline.html although offline was disabled")
		}
	}

	// The archived root document carries the injected tags.
	injected := archiveMember(t, fs, archivePath, "index.html")
	if !strings.Contains(string(injected), `rel="manifest"`) {
		t.Error("archived index.html missing the manifest link")
	}
	if !strings.Contains(string(injected), "navigator.serviceWorker.register") {
		t.Error("archived index.html missing the registration snippet")
	}
}

func TestCommandWorkflow(t *testing.T) {
	fs := newDemoFileSystem()

	rootCmd := cli.NewRootCommand(fs)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"generate", "/sites/Demo", "--no-input", "--offline=false"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if !fs.Exists("/sites/demo-pwa.zip") {
		t.Fatal("archive was not written next to the folder")
	}
	if !strings.Contains(out.String(), "PWA Bundle Created") {
		t.Error("missing success summary in output")
	}

	names := archiveNames(t, fs, "/sites/demo-pwa.zip")
	if len(names) != 12 {
		t.Errorf("expected 12 archive members, got %d: %v", len(names), names)
	}

	// Inspect reports the same folder without generating anything new.
	inspectCmd := cli.NewRootCommand(fs)
	var inspectOut bytes.Buffer
	inspectCmd.SetOut(&inspectOut)
	inspectCmd.SetArgs([]string{"inspect", "/sites/Demo", "--format", "json"})

	if err := inspectCmd.Execute(); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	var report struct {
		SanitizedName string `json:"sanitizedName"`
		FileCount     int    `json:"fileCount"`
	}
	if err := json.Unmarshal(inspectOut.Bytes(), &report); err != nil {
		t.Fatalf("failed to parse inspect output: %v", err)
	}
	if report.SanitizedName != "demo" {
		t.Errorf("expected sanitized name demo, got %s", report.SanitizedName)
	}
	if report.FileCount != 1 {
		t.Errorf("expected 1 file, got %d", report.FileCount)
	}
}

func TestSessionResetStartsClean(t *testing.T) {
	fs := newDemoFileSystem()
	fs.AddDir("/sites/Other")
	fs.AddFile("/sites/Other/index.html", []byte(`<!doctype html><html><head><title>Other</title></head><body></body></html>`))

	sess := newQuietSession(fs)

	if err := sess.Ingest("/sites/Demo"); err != nil {
		t.Fatalf("failed to ingest: %v", err)
	}
	if err := sess.Generate(); err != nil {
		t.Fatalf("failed to generate: %v", err)
	}
	if _, err := sess.Package("/sites"); err != nil {
		t.Fatalf("failed to package: %v", err)
	}

	sess.Reset()

	if sess.Site != nil || sess.Artifacts != nil {
		t.Fatal("reset left run state behind")
	}
	if _, err := sess.Package("/sites"); err == nil {
		t.Fatal("expected package after reset to fail")
	}

	// A fresh run against another folder works on the same session value.
	if err := sess.Ingest("/sites/Other"); err != nil {
		t.Fatalf("failed to ingest after reset: %v", err)
	}
	if sess.Config.Name != "Other" {
		t.Errorf("expected reseeded name Other, got %q", sess.Config.Name)
	}
	if err := sess.Generate(); err != nil {
		t.Fatalf("failed to generate after reset: %v", err)
	}

	archivePath, err := sess.Package("/sites")
	if err != nil {
		t.Fatalf("failed to package after reset: %v", err)
	}
	if archivePath != "/sites/other-pwa.zip" {
		t.Errorf("expected /sites/other-pwa.zip, got %s", archivePath)
	}
}

package session

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/jakoblorz/go-pwaforge/internal/models"
	"github.com/jakoblorz/go-pwaforge/internal/site"
	"github.com/stretchr/testify/require"
)

const demoIndex = `<!doctype html>
<html>
<head>
  <title>Demo App</title>
  <meta name="description" content="A small demo">
  <meta name="theme-color" content="#123456">
</head>
<body></body>
</html>
`

func newDemoSession() *Session {
	builder := site.NewSiteBuilder("/work/Demo App").
		AddFile("index.html", demoIndex).
		AddFile("styles.css", "body { margin: 0; }").
		AddFile("app.js", "console.log('demo');")

	fs := builder.FileSystem()
	ing := site.NewIngester(fs, site.WithWarnPause(0), site.WithOutput(&bytes.Buffer{}))
	return New(fs, WithIngester(ing))
}

func TestIngestSeedsConfigFromMetadata(t *testing.T) {
	s := newDemoSession()

	err := s.Ingest("/work/Demo App")
	require.NoError(t, err)

	require.NotNil(t, s.Site)
	require.Equal(t, 3, s.Site.FileCount())
	require.Equal(t, "demo-app", s.Site.SanitizedName)

	require.Equal(t, "Demo App", s.Config.Name)
	require.Equal(t, "Demo App", s.Config.ShortName)
	require.Equal(t, "A small demo", s.Config.Description)
	require.Equal(t, "#123456", s.Config.ThemeColor)
	require.Equal(t, "/demo-app/", s.Config.StartURL)
	require.Equal(t, "/demo-app/", s.Config.Scope)
	require.Equal(t, models.CacheFirst, s.Config.CacheStrategy)
	require.True(t, s.Config.EnableOffline)
}

func TestIngestKeepsDefaultsWithoutMetadata(t *testing.T) {
	builder := site.NewSiteBuilder("/work/plain").
		AddFile("index.html", "<!doctype html><html><body></body></html>")

	fs := builder.FileSystem()
	ing := site.NewIngester(fs, site.WithWarnPause(0), site.WithOutput(&bytes.Buffer{}))
	s := New(fs, WithIngester(ing))

	err := s.Ingest("/work/plain")
	require.NoError(t, err)

	require.Empty(t, s.Config.Name)
	require.Empty(t, s.Config.Description)
	require.Equal(t, models.DefaultThemeColor, s.Config.ThemeColor)
}

func TestGenerateProducesAllArtifacts(t *testing.T) {
	s := newDemoSession()
	require.NoError(t, s.Ingest("/work/Demo App"))

	err := s.Generate()
	require.NoError(t, err)

	a := s.Artifacts
	require.NotNil(t, a)
	require.Len(t, a.BuildID, 8)

	require.Contains(t, string(a.InjectedHTML), `rel="manifest"`)
	require.Contains(t, string(a.InjectedHTML), "serviceWorker")

	require.Contains(t, string(a.EnhancedJS), "console.log('demo');")
	require.Contains(t, string(a.EnhancedJS), "function isOnline")

	require.Contains(t, string(a.ManifestJSON), `"name": "Demo App"`)
	require.Contains(t, string(a.ServiceWorkerJS), "const CACHE_NAME = 'demo-app-v1';")

	require.NotEmpty(t, a.OfflineHTML)
	require.Len(t, a.Icons, len(models.IconSizes()))
	require.Contains(t, string(a.ReadmeMD), a.BuildID)
}

func TestGenerateHonorsOfflineToggle(t *testing.T) {
	s := newDemoSession()
	require.NoError(t, s.Ingest("/work/Demo App"))

	cfg := s.Config
	cfg.EnableOffline = false
	s.Configure(cfg)

	require.NoError(t, s.Generate())

	require.Empty(t, s.Artifacts.OfflineHTML)
	require.NotContains(t, string(s.Artifacts.ServiceWorkerJS), "OFFLINE_URL")
}

func TestGenerateResamplesProvidedIconSource(t *testing.T) {
	s := newDemoSession()
	require.NoError(t, s.Ingest("/work/Demo App"))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 600, 600))))
	s.SetIconSource(buf.Bytes())

	require.NoError(t, s.Generate())
	require.Len(t, s.Artifacts.Icons, len(models.IconSizes()))
}

func TestGenerateBeforeIngestFails(t *testing.T) {
	s := newDemoSession()

	err := s.Generate()
	require.EqualError(t, err, "no folder ingested yet")
	require.Nil(t, s.Artifacts)
}

func TestPackageBeforeGenerateFails(t *testing.T) {
	s := newDemoSession()
	require.NoError(t, s.Ingest("/work/Demo App"))

	_, err := s.Package("/work/out")
	require.EqualError(t, err, "nothing generated yet")
}

func TestPackageWritesArchive(t *testing.T) {
	s := newDemoSession()
	require.NoError(t, s.Ingest("/work/Demo App"))
	require.NoError(t, s.Generate())

	path, err := s.Package("/work/out")
	require.NoError(t, err)
	require.Equal(t, "/work/out/demo-app-pwa.zip", path)

	data, err := s.fs.ReadFile(path)
	require.NoError(t, err)
	require.NotEmpty(t, data)
}

func TestResetClearsRunState(t *testing.T) {
	s := newDemoSession()
	require.NoError(t, s.Ingest("/work/Demo App"))
	require.NoError(t, s.Generate())
	s.SetIconSource([]byte{0x01})

	s.Reset()

	require.Nil(t, s.Site)
	require.Nil(t, s.Artifacts)
	require.Nil(t, s.IconSource)
	require.Equal(t, models.Config{}, s.Config)
}

func TestGenerateBuildIDShape(t *testing.T) {
	id, err := GenerateBuildID()
	require.NoError(t, err)
	require.Len(t, id, 8)

	for _, r := range id {
		require.True(t, strings.ContainsRune(buildIDAlphabet, r), "unexpected rune %q", r)
	}

	other, err := GenerateBuildID()
	require.NoError(t, err)
	require.NotEqual(t, id, other)
}

package pwa

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/dustin/go-humanize"
	"github.com/jakoblorz/go-pwaforge/internal/models"
)

const readmeTemplate = `# {{ .Name | default "Untitled app" }}

Progressive Web App bundle generated by pwaforge on {{ now | date "2006-01-02" }} (build {{ .BuildID }}).

## What is inside

- {{ .FileCount }} original file{{ if ne .FileCount 1 }}s{{ end }} from your folder ({{ humanizeBytes .TotalSize }}), with PWA tags injected into index.html{{ if .HasPrimaryJS }} and helper functions prepended to your primary script{{ end }}
- manifest.json, the web app manifest installers read
- sw.js, a {{ .Strategy }} service worker precaching {{ .PrecacheCount }} URLs
- icons/, {{ .IconCount }} PNG icons from 72x72 up to 512x512
{{- if .EnableOffline }}
- offline.html, shown to navigations that fail while offline
{{- end }}

## Configuration

| Setting | Value |
| --- | --- |
| App ID | {{ .AppID | default "(empty)" }} |
| Start URL | {{ .StartURL }} |
| Scope | {{ .Scope }} |
| Display | {{ .Display }} |
| Theme color | {{ .ThemeColor }} |
| Cache strategy | {{ .Strategy }} |
| Cache name | {{ .CacheName }} |
| Offline fallback | {{ if .EnableOffline }}enabled{{ else }}disabled{{ end }} |
| Notifications | {{ if .EnableNotifications }}enabled{{ else }}disabled{{ end }} |

## Deploying

1. Unpack the archive into your web server so that index.html is reachable at {{ .Scope }}.
2. Serve over HTTPS or localhost. Browsers refuse to register service workers on plain HTTP.
3. Serve manifest.json as application/manifest+json (application/json also works).
4. Keep sw.js next to index.html: a service worker's URL path caps its scope. If it must live elsewhere, send a Service-Worker-Allowed: {{ .Scope }} response header for it.

## Updating your app

Re-run generation after changing your site, or edit sw.js by hand: bump the
cache name ({{ .CacheName }}) so installed clients discard the previous cache
on the next visit.

## Troubleshooting

- No install prompt: check DevTools > Application > Manifest for parse errors, and confirm the page is served from {{ .Scope }}.
- Stale content after a deploy: the {{ .Strategy }} strategy serves cached responses{{ if eq .Strategy "cache-first" }} before touching the network{{ end }}; bump the cache name to force a refresh.
- Worker not updating: browsers re-check sw.js at most every 24 hours. Shift-reload, or unregister it under DevTools > Application > Service Workers.
{{- if .EnableOffline }}
- Offline page not appearing: it is only served to navigation requests; asset requests fail through to the browser.
{{- end }}
`

var readmeTmpl = template.Must(
	template.New("readme").Funcs(readmeFuncs()).Parse(readmeTemplate))

func readmeFuncs() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["humanizeBytes"] = func(n int64) string {
		return humanize.IBytes(uint64(n))
	}
	return funcs
}

type readmeTemplateData struct {
	Name                string
	AppID               string
	StartURL            string
	Scope               string
	Display             string
	ThemeColor          string
	Strategy            string
	CacheName           string
	BuildID             string
	FileCount           int
	PrecacheCount       int
	IconCount           int
	TotalSize           int64
	HasPrimaryJS        bool
	EnableOffline       bool
	EnableNotifications bool
}

// BuildReadme renders the deployment guide included in every bundle.
func BuildReadme(s *models.Site, cfg models.Config, buildID string) ([]byte, error) {
	_, hasJS := s.PrimaryJS()

	data := readmeTemplateData{
		Name:                cfg.Name,
		AppID:               cfg.AppID,
		StartURL:            cfg.StartURL,
		Scope:               cfg.Scope,
		Display:             cfg.Display,
		ThemeColor:          cfg.ThemeColor,
		Strategy:            cfg.CacheStrategy.String(),
		CacheName:           cfg.CacheName(s.SanitizedName),
		BuildID:             buildID,
		FileCount:           s.FileCount(),
		PrecacheCount:       len(PrecacheURLs(s, cfg)),
		IconCount:           len(models.IconSizes()),
		TotalSize:           s.TotalSize,
		HasPrimaryJS:        hasJS,
		EnableOffline:       cfg.EnableOffline,
		EnableNotifications: cfg.EnableNotifications,
	}

	var buf bytes.Buffer
	if err := readmeTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute readme template: %w", err)
	}

	return buf.Bytes(), nil
}

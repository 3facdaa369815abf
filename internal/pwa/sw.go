package pwa

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"text/template"

	"github.com/jakoblorz/go-pwaforge/internal/models"
)

// serviceWorkerTemplate is the master worker script. The fetch strategy is
// composed in as the named sub-template "strategy"; everything else is shared
// across strategies.
const serviceWorkerTemplate = `/* Service worker for {{.AppName}}. Generated by pwaforge. */

const CACHE_NAME = '{{.CacheName}}';
{{- if .EnableOffline}}
const OFFLINE_URL = '{{.OfflineURL}}';
{{- end}}
const PRECACHE_URLS = {{.PrecacheJSON}};

self.addEventListener('install', (event) => {
  event.waitUntil(
    caches.open(CACHE_NAME)
      .then((cache) => cache.addAll(PRECACHE_URLS))
      .then(() => self.skipWaiting())
      .catch((err) => {
        console.error('[sw] precache failed:', err);
        throw err;
      })
  );
});

self.addEventListener('activate', (event) => {
  event.waitUntil(
    caches.keys()
      .then((names) => Promise.all(
        names
          .filter((name) => name !== CACHE_NAME)
          .map((name) => caches.delete(name))
      ))
      .then(() => self.clients.claim())
  );
});

self.addEventListener('fetch', (event) => {
  if (event.request.method !== 'GET') {
    return;
  }
  event.respondWith({{.StrategyFunc}}(event.request));
});

{{template "strategy" .}}

{{if .EnableOffline -}}
function offlineFallback(request, err) {
  const accept = request.headers.get('accept') || '';
  if (accept.includes('text/html')) {
    return caches.match(OFFLINE_URL).then((page) => {
      if (page) {
        return page;
      }
      throw err;
    });
  }
  return Promise.reject(err);
}
{{- else -}}
function offlineFallback(request, err) {
  return Promise.reject(err);
}
{{- end}}

self.addEventListener('sync', (event) => {
  /* extension point, no synchronization is performed */
});
{{if .EnableNotifications}}
self.addEventListener('push', (event) => {
  const options = {
    body: event.data ? event.data.text() : 'There is new content available.',
    icon: '{{.IconURL}}',
    badge: '{{.IconURL}}',
    vibrate: [200, 100, 200],
  };
  event.waitUntil(self.registration.showNotification('{{.AppName}}', options));
});

self.addEventListener('notificationclick', (event) => {
  event.notification.close();
  if (event.action && event.action !== 'open') {
    return;
  }
  event.waitUntil(
    self.clients.matchAll({ type: 'window', includeUncontrolled: true }).then((clients) => {
      for (const client of clients) {
        if ('focus' in client) {
          return client.focus();
        }
      }
      return self.clients.openWindow('{{.StartURL}}');
    })
  );
});
{{end}}`

var (
	swTemplateCache = make(map[string]*template.Template)
	swTemplateLock  sync.Mutex
)

type swTemplateData struct {
	AppName             string
	CacheName           string
	PrecacheJSON        string
	StrategyFunc        string
	OfflineURL          string
	IconURL             string
	StartURL            string
	EnableOffline       bool
	EnableNotifications bool
}

// PrecacheURLs builds the install-time cache manifest: the scope root, the
// root document, the app manifest, every site file scope-prefixed, and the
// offline page when enabled. The root document therefore appears twice, once
// from the fixed head and once from the file loop; installers tolerate the
// duplicate and the repeated fetch hits the browser's HTTP cache.
func PrecacheURLs(s *models.Site, cfg models.Config) []string {
	urls := []string{
		cfg.Scope,
		cfg.Scope + "index.html",
		cfg.Scope + "manifest.json",
	}
	for _, f := range s.Files {
		urls = append(urls, cfg.Scope+f.Path)
	}
	if cfg.EnableOffline {
		urls = append(urls, cfg.Scope+"offline.html")
	}
	return urls
}

// BuildServiceWorker renders the worker script for the configured cache
// strategy. Exactly one strategy function is present in the output.
func BuildServiceWorker(s *models.Site, cfg models.Config) ([]byte, error) {
	tmpl, err := getServiceWorkerTemplate(cfg.CacheStrategy)
	if err != nil {
		return nil, err
	}

	precache, err := json.MarshalIndent(PrecacheURLs(s, cfg), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode precache list: %w", err)
	}

	data := swTemplateData{
		AppName:             cfg.Name,
		CacheName:           cfg.CacheName(s.SanitizedName),
		PrecacheJSON:        string(precache),
		StrategyFunc:        strategyUnits[cfg.CacheStrategy].FuncName,
		OfflineURL:          cfg.Scope + "offline.html",
		IconURL:             cfg.Scope + models.IconFileName(192),
		StartURL:            cfg.StartURL,
		EnableOffline:       cfg.EnableOffline,
		EnableNotifications: cfg.EnableNotifications,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute service worker template: %w", err)
	}

	return buf.Bytes(), nil
}

func getServiceWorkerTemplate(strategy models.CacheStrategy) (*template.Template, error) {
	unit, ok := strategyUnits[strategy]
	if !ok {
		return nil, fmt.Errorf("invalid cache strategy: %s", strategy)
	}

	cacheKey := strategy.String()

	swTemplateLock.Lock()
	tmpl, cached := swTemplateCache[cacheKey]
	swTemplateLock.Unlock()
	if cached {
		return tmpl, nil
	}

	parsed, err := template.New("sw").Parse(serviceWorkerTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service worker template: %w", err)
	}
	if _, err := parsed.New("strategy").Parse(unit.Body); err != nil {
		return nil, fmt.Errorf("failed to parse %s strategy template: %w", strategy, err)
	}

	swTemplateLock.Lock()
	swTemplateCache[cacheKey] = parsed
	swTemplateLock.Unlock()

	return parsed, nil
}

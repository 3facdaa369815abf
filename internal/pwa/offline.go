package pwa

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/jakoblorz/go-pwaforge/internal/models"
)

const offlinePageTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta name="theme-color" content="{{.ThemeColor}}">
  <title>{{.Title}} is offline</title>
  <style>
    body {
      margin: 0;
      min-height: 100vh;
      display: flex;
      align-items: center;
      justify-content: center;
      font-family: system-ui, -apple-system, sans-serif;
      background: {{.BackgroundColor}};
      color: #333;
    }
    .card {
      max-width: 24rem;
      padding: 2rem;
      text-align: center;
      border-radius: 0.75rem;
      border-top: 4px solid {{.ThemeColor}};
      box-shadow: 0 4px 24px rgba(0, 0, 0, 0.12);
      background: #fff;
    }
    button {
      margin-top: 1rem;
      padding: 0.6rem 1.4rem;
      border: none;
      border-radius: 0.4rem;
      background: {{.ThemeColor}};
      color: #fff;
      font-size: 1rem;
      cursor: pointer;
    }
  </style>
</head>
<body>
  <div class="card">
    <h1>You are offline</h1>
    <p>{{.Title}} could not reach the network. Pages you have already visited keep working.</p>
    <button onclick="location.reload()">Try again</button>
  </div>
</body>
</html>
`

var offlineTemplate = template.Must(template.New("offline").Parse(offlinePageTemplate))

type offlineTemplateData struct {
	Title           string
	ThemeColor      string
	BackgroundColor string
}

// BuildOfflinePage renders the fallback page served to navigations that fail
// while the network is down.
func BuildOfflinePage(cfg models.Config) ([]byte, error) {
	title := cfg.Name
	if title == "" {
		title = "This app"
	}

	var buf bytes.Buffer
	if err := offlineTemplate.Execute(&buf, offlineTemplateData{
		Title:           title,
		ThemeColor:      cfg.ThemeColor,
		BackgroundColor: cfg.BackgroundColor,
	}); err != nil {
		return nil, fmt.Errorf("failed to execute offline page template: %w", err)
	}

	return buf.Bytes(), nil
}

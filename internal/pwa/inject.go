package pwa

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-pwaforge/internal/models"
)

// registrationSnippet wires the page to the worker. It has no presence guard:
// running injection twice on the same document duplicates it, so injection
// runs exactly once per generation.
const registrationSnippet = `  <script>
    if ('serviceWorker' in navigator) {
      window.addEventListener('load', () => {
        navigator.serviceWorker.register('sw.js')
          .then((reg) => console.log('Service worker registered with scope:', reg.scope))
          .catch((err) => console.error('Service worker registration failed:', err));
      });
    }
  </script>
`

// helperScript is prepended to the primary script. Plain concatenation, no
// merging: if the original already defines one of these names, the original
// definition wins at runtime.
const helperScript = `/* PWA helpers. Generated by pwaforge. */

function isOnline() {
  return navigator.onLine;
}

window.addEventListener('online', () => document.body.classList.remove('app-offline'));
window.addEventListener('offline', () => document.body.classList.add('app-offline'));

async function storageEstimate() {
  if (navigator.storage && navigator.storage.estimate) {
    return navigator.storage.estimate();
  }
  return { usage: 0, quota: 0 };
}

async function shareApp(data) {
  if (!navigator.share) {
    return false;
  }
  try {
    await navigator.share(data);
    return true;
  } catch (err) {
    console.warn('Share dismissed:', err);
    return false;
  }
}

async function requestNotificationPermission() {
  if (!('Notification' in window)) {
    return 'denied';
  }
  return Notification.requestPermission();
}

async function registerBackgroundSync(tag) {
  const reg = await navigator.serviceWorker.ready;
  if (!('sync' in reg)) {
    return false;
  }
  try {
    await reg.sync.register(tag);
    return true;
  } catch (err) {
    console.warn('Background sync registration failed:', err);
    return false;
  }
}
`

// headInsertion is one guarded tag: Tag is inserted before </head> unless
// Guard is already present in the document (case-insensitive).
type headInsertion struct {
	Guard string
	Tag   string
}

func headInsertions(cfg models.Config) []headInsertion {
	appTitle := cfg.ShortName
	if appTitle == "" {
		appTitle = cfg.Name
	}

	return []headInsertion{
		{
			Guard: `name="viewport"`,
			Tag:   `  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n",
		},
		{
			Guard: `name="theme-color"`,
			Tag:   fmt.Sprintf("  <meta name=\"theme-color\" content=\"%s\">\n", cfg.ThemeColor),
		},
		{
			Guard: `rel="manifest"`,
			Tag:   "  <link rel=\"manifest\" href=\"manifest.json\">\n",
		},
		{
			Guard: `apple-mobile-web-app-capable`,
			Tag: "  <meta name=\"apple-mobile-web-app-capable\" content=\"yes\">\n" +
				"  <meta name=\"apple-mobile-web-app-status-bar-style\" content=\"black-translucent\">\n" +
				fmt.Sprintf("  <meta name=\"apple-mobile-web-app-title\" content=\"%s\">\n", appTitle) +
				"  <link rel=\"apple-touch-icon\" href=\"icons/icon-152x152.png\">\n",
		},
	}
}

// InjectHTML adds the PWA tags and the registration snippet to the root
// document. Head tags are guarded by a case-insensitive substring check and
// skipped when already present; documents without a closing head or body tag
// keep their content unchanged for that insertion point.
func InjectHTML(doc []byte, cfg models.Config) []byte {
	out := string(doc)

	for _, ins := range headInsertions(cfg) {
		if containsFold(out, ins.Guard) {
			continue
		}
		out = insertBeforeFold(out, "</head>", ins.Tag)
	}

	out = insertBeforeFold(out, "</body>", registrationSnippet)

	return []byte(out)
}

// EnhanceScript prepends the helper block to the primary script.
func EnhanceScript(script []byte) []byte {
	out := make([]byte, 0, len(helperScript)+1+len(script))
	out = append(out, helperScript...)
	out = append(out, '\n')
	out = append(out, script...)
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// insertBeforeFold inserts text before the first case-insensitive occurrence
// of marker. Documents lacking the marker come back unchanged.
func insertBeforeFold(doc, marker, text string) string {
	idx := strings.Index(strings.ToLower(doc), strings.ToLower(marker))
	if idx < 0 {
		return doc
	}
	return doc[:idx] + text + doc[idx:]
}

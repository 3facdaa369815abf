package models

import "fmt"

// IconSizes is the ladder of square icon dimensions a bundle ships, in
// pixels. 192 and 512 are the installability minimum; the rest cover legacy
// Android launchers and iOS splash screens.
func IconSizes() []int {
	return []int{72, 96, 128, 144, 152, 192, 384, 512}
}

// MaskableMinSize is the smallest icon size marked maskable in the manifest.
const MaskableMinSize = 192

// IconFileName returns the bundle-relative path of the icon for a size.
func IconFileName(size int) string {
	return fmt.Sprintf("icons/icon-%dx%d.png", size, size)
}

// Artifacts holds every generated file of a bundle, keyed the way the
// packager writes them. Icons maps bundle-relative paths (icons/icon-NxN.png)
// to encoded PNG bytes.
type Artifacts struct {
	ManifestJSON    []byte
	ServiceWorkerJS []byte
	InjectedHTML    []byte
	EnhancedJS      []byte
	OfflineHTML     []byte
	ReadmeMD        []byte
	Icons           map[string][]byte

	// BuildID tags the run. It appears in the README and the preset a run
	// is saved under, never in the served artifacts.
	BuildID string
}

// FileCount reports how many generated files the run produced. Injected and
// enhanced variants count even though they replace originals in the archive.
func (a Artifacts) FileCount() int {
	n := len(a.Icons)
	for _, b := range [][]byte{
		a.ManifestJSON, a.ServiceWorkerJS, a.InjectedHTML,
		a.EnhancedJS, a.OfflineHTML, a.ReadmeMD,
	} {
		if len(b) > 0 {
			n++
		}
	}
	return n
}

package site

import (
	"path"
	"strings"
)

// DefaultMimeType is assigned to files whose extension is not in the table.
const DefaultMimeType = "application/octet-stream"

// mimeTypes maps lowercase file extensions to MIME types. The table is
// static so classification does not depend on host OS registries.
var mimeTypes = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".css":   "text/css",
	".js":    "text/javascript",
	".mjs":   "text/javascript",
	".json":  "application/json",
	".xml":   "application/xml",
	".txt":   "text/plain",
	".md":    "text/markdown",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".avif":  "image/avif",
	".ico":   "image/x-icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".eot":   "application/vnd.ms-fontobject",
	".mp3":   "audio/mpeg",
	".ogg":   "audio/ogg",
	".wav":   "audio/wav",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".wasm":  "application/wasm",
	".pdf":   "application/pdf",
	".map":   "application/json",
}

// MimeByExtension classifies a path by its extension, falling back to
// DefaultMimeType for anything unknown.
func MimeByExtension(p string) string {
	ext := strings.ToLower(path.Ext(p))
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	return DefaultMimeType
}

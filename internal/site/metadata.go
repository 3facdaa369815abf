package site

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// Metadata is what the root document reveals about the app. Every field is
// best-effort: a missing tag leaves its field empty and is not an error.
type Metadata struct {
	Title       string
	Description string
	ThemeColor  string
}

// ExtractMetadata pulls the title, meta description and meta theme-color out
// of an HTML document. A document that cannot be parsed yields an empty
// Metadata, never an error.
func ExtractMetadata(content []byte) Metadata {
	var meta Metadata

	doc, err := html.Parse(bytes.NewReader(content))
	if err != nil {
		return meta
	}

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "title":
				if meta.Title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					meta.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				switch strings.ToLower(attrValue(n, "name")) {
				case "description":
					if meta.Description == "" {
						meta.Description = attrValue(n, "content")
					}
				case "theme-color":
					if meta.ThemeColor == "" {
						meta.ThemeColor = attrValue(n, "content")
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return meta
}

func attrValue(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// Package enrich derives display metadata for link attachments and provides
// the URL checks the UI collaborators run before handing media to the core.
// Everything here is best-effort and synchronous: a URL that cannot be parsed
// degrades to "no title/favicon derivable", never to an error.
package enrich

import (
	"net/url"
	"path"
	"strings"

	"github.com/pinstack/pinstack/pkg/core"
)

// FaviconResolver builds an icon reference for a hostname. The default uses a
// public icon endpoint; tests inject a stub.
type FaviconResolver func(host string) string

// DefaultFaviconResolver resolves favicons through a hostname-keyed icon
// endpoint. Purely cosmetic; the returned reference is never fetched by the
// core.
func DefaultFaviconResolver(host string) string {
	return "https://icons.duckduckgo.com/ip3/" + host + ".ico"
}

// Link builds a link media item for rawURL. The title is the URL host and the
// favicon comes from the resolver; when the URL has no parseable host, the
// title falls back to the raw URL and the favicon stays unset.
func Link(rawURL string, resolver FaviconResolver) core.MediaItem {
	item := core.MediaItem{
		Kind:  core.MediaLink,
		URL:   rawURL,
		Title: rawURL,
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return item
	}
	item.Title = u.Host
	if resolver != nil {
		item.Favicon = resolver(u.Host)
	}
	return item
}

// Image builds an image media item for a content reference (remote URL or
// inline data reference).
func Image(ref string) core.MediaItem {
	return core.MediaItem{
		Kind: core.MediaImage,
		URL:  ref,
	}
}

// imageExtensions mirrors the media types the file/clipboard collaborators
// accept upstream.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".avif": true,
	".bmp":  true,
}

// LooksLikeURL reports whether s is plausibly a web URL. Collaborators call
// this before AddMedia so the core never receives a malformed URL.
func LooksLikeURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// LooksLikeImageURL reports whether s points at an image, judged by its file
// extension the way the manual-entry collaborator does.
func LooksLikeImageURL(s string) bool {
	if !LooksLikeURL(s) {
		return false
	}
	u, _ := url.Parse(strings.TrimSpace(s))
	ext := strings.ToLower(path.Ext(u.Path))
	return imageExtensions[ext]
}

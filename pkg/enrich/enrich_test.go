package enrich_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pinstack/pinstack/pkg/core"
	"github.com/pinstack/pinstack/pkg/enrich"
)

func TestLink_DerivesTitleAndFavicon(t *testing.T) {
	resolver := func(host string) string { return "icon://" + host }

	item := enrich.Link("https://news.ycombinator.com/item?id=1", resolver)

	assert.Equal(t, core.MediaLink, item.Kind)
	assert.Equal(t, "https://news.ycombinator.com/item?id=1", item.URL)
	assert.Equal(t, "news.ycombinator.com", item.Title)
	assert.Equal(t, "icon://news.ycombinator.com", item.Favicon)
}

func TestLink_DegradesWithoutHost(t *testing.T) {
	item := enrich.Link("not a url at all", func(string) string {
		t.Fatal("resolver must not run without a host")
		return ""
	})

	assert.Equal(t, "not a url at all", item.URL)
	assert.Equal(t, "not a url at all", item.Title, "title falls back to the raw input")
	assert.Empty(t, item.Favicon)
}

func TestLink_NilResolverSkipsFavicon(t *testing.T) {
	item := enrich.Link("https://example.com", nil)

	assert.Equal(t, "example.com", item.Title)
	assert.Empty(t, item.Favicon)
}

func TestDefaultFaviconResolver(t *testing.T) {
	assert.Equal(t,
		"https://icons.duckduckgo.com/ip3/example.com.ico",
		enrich.DefaultFaviconResolver("example.com"))
}

func TestImage(t *testing.T) {
	item := enrich.Image("https://example.com/cat.png")

	assert.Equal(t, core.MediaImage, item.Kind)
	assert.Equal(t, "https://example.com/cat.png", item.URL)
	assert.Empty(t, item.Title)
}

func TestLooksLikeURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com/path", true},
		{"  https://example.com  ", true},
		{"ftp://example.com", false},
		{"example.com", false},
		{"https://", false},
		{"", false},
		{"just some text", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, enrich.LooksLikeURL(tc.in), "input %q", tc.in)
	}
}

func TestLooksLikeImageURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com/cat.png", true},
		{"https://example.com/cat.JPG", true},
		{"https://example.com/photo.webp?w=400", true},
		{"https://example.com/page.html", false},
		{"https://example.com/", false},
		{"cat.png", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, enrich.LooksLikeImageURL(tc.in), "input %q", tc.in)
	}
}

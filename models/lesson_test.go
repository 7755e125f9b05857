package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYoutubeVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"short link", "https://youtu.be/abc123", "abc123"},
		{"watch link with extra params", "https://www.youtube.com/watch?v=xyz789&t=5", "xyz789"},
		{"watch link single param", "https://www.youtube.com/watch?v=xyz789", "xyz789"},
		{"empty v parameter falls back to path", "https://www.youtube.com/watch?v=", "watch?v="},
		{"bare identifier", "abc123", "abc123"},
		{"malformed url passes through", "not a url at all", "not a url at all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, YoutubeVideoID(tt.url))
		})
	}
}

func TestYoutubeEmbedURL(t *testing.T) {
	assert.Equal(t,
		"https://www.youtube.com/embed/abc123?autoplay=1",
		YoutubeEmbedURL("https://youtu.be/abc123"))
}

func TestSyntheticEmail(t *testing.T) {
	assert.Equal(t, "sam@platform.local", SyntheticEmail("sam"))
}

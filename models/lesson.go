package models

import (
	"strings"
	"time"
)

type Lesson struct {
	ID         string    `json:"id"`
	SectionID  string    `json:"section_id"`
	Name       string    `json:"name"`
	YoutubeURL string    `json:"youtube_url"`
	CreatedBy  string    `json:"created_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type CreateLessonRequest struct {
	Name       string `json:"name" binding:"required"`
	YoutubeURL string `json:"youtube_url" binding:"required"`
}

type LessonPlaybackResponse struct {
	Lesson
	EmbedURL string `json:"embed_url"`
}

// YoutubeVideoID extracts the video identifier from a raw YouTube URL:
// the value of the "v=" parameter when present, otherwise the final
// path segment. Malformed URLs are passed through best-effort; the
// result is never validated.
func YoutubeVideoID(raw string) string {
	if _, after, ok := strings.Cut(raw, "v="); ok && after != "" {
		if i := strings.Index(after, "&"); i >= 0 {
			return after[:i]
		}
		return after
	}
	parts := strings.Split(raw, "/")
	return parts[len(parts)-1]
}

// YoutubeEmbedURL resolves a raw video URL into a playable embed address.
func YoutubeEmbedURL(raw string) string {
	return "https://www.youtube.com/embed/" + YoutubeVideoID(raw) + "?autoplay=1"
}

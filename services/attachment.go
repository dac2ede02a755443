package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/CircleTalk/models"
)

const fallbackDocumentName = "attachment"

// NormalizeAttachment maps a raw link and declared kind to a renderable
// descriptor. It is deterministic and never touches the network. A video
// hosted somewhere we can't embed still normalizes fine, just without an
// embed URL; callers render the plain link instead.
func NormalizeAttachment(input models.AttachmentInput) (models.Attachment, error) {
	rawURL := strings.TrimSpace(input.URL)
	if rawURL == "" {
		return models.Attachment{}, fmt.Errorf("attachment URL is required")
	}

	attachment := models.Attachment{Kind: input.Kind, URL: rawURL}

	switch input.Kind {
	case models.AttachmentKindImage, models.AttachmentKindLink:
		// nothing beyond the raw URL
	case models.AttachmentKindDocument:
		name := documentDisplayName(rawURL)
		attachment.Display_Name = &name
	case models.AttachmentKindVideo:
		attachment.Embed_URL = ResolveVideoEmbed(rawURL)
	default:
		return models.Attachment{}, fmt.Errorf("unsupported attachment kind %q", input.Kind)
	}

	return attachment, nil
}

// ResolveVideoEmbed returns a provider embed URL for supported video hosts,
// or nil when the link can't be embedded.
func ResolveVideoEmbed(rawURL string) *string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil
	}

	host := strings.ToLower(u.Host)

	switch {
	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		videoID := u.Query().Get("v")
		if videoID == "" {
			return nil
		}
		return embedURL("https://www.youtube.com/embed/" + videoID)

	case host == "youtu.be":
		videoID := strings.TrimPrefix(u.Path, "/")
		if i := strings.Index(videoID, "/"); i >= 0 {
			videoID = videoID[:i]
		}
		if videoID == "" {
			return nil
		}
		return embedURL("https://www.youtube.com/embed/" + videoID)

	case strings.Contains(host, "vimeo.com"):
		segments := strings.Split(u.Path, "/")
		videoID := ""
		for _, segment := range segments {
			if segment != "" {
				videoID = segment
			}
		}
		if videoID == "" {
			return nil
		}
		return embedURL("https://player.vimeo.com/video/" + videoID)

	case strings.Contains(host, "loom.com") && strings.Contains(u.Path, "/share/"):
		videoID := u.Path[strings.Index(u.Path, "/share/")+len("/share/"):]
		// query is already split off by url.Parse, but a raw "?" can survive
		// in sloppy links
		if i := strings.Index(videoID, "?"); i >= 0 {
			videoID = videoID[:i]
		}
		if videoID == "" {
			return nil
		}
		return embedURL("https://www.loom.com/embed/" + videoID)
	}

	return nil
}

func embedURL(s string) *string {
	return &s
}

// documentDisplayName derives a filename from the last path segment.
func documentDisplayName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fallbackDocumentName
	}

	segments := strings.Split(u.Path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return fallbackDocumentName
}

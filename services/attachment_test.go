package services

import (
	"testing"

	"github.com/CircleTalk/models"
	"github.com/stretchr/testify/assert"
)

func TestResolveVideoEmbed(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string // empty means no embed
	}{
		{
			name:     "youtube watch URL",
			url:      "https://www.youtube.com/watch?v=abc123",
			expected: "https://www.youtube.com/embed/abc123",
		},
		{
			name:     "youtube bare host",
			url:      "https://youtube.com/watch?v=abc123",
			expected: "https://www.youtube.com/embed/abc123",
		},
		{
			name:     "youtube short link",
			url:      "https://youtu.be/abc123",
			expected: "https://www.youtube.com/embed/abc123",
		},
		{
			name:     "youtube short link with query",
			url:      "https://youtu.be/abc123?t=42",
			expected: "https://www.youtube.com/embed/abc123",
		},
		{
			name:     "youtube watch URL without v parameter",
			url:      "https://www.youtube.com/playlist?list=PL123",
			expected: "",
		},
		{
			name:     "vimeo",
			url:      "https://vimeo.com/99887766",
			expected: "https://player.vimeo.com/video/99887766",
		},
		{
			name:     "vimeo with trailing slash",
			url:      "https://vimeo.com/99887766/",
			expected: "https://player.vimeo.com/video/99887766",
		},
		{
			name:     "loom share link with query",
			url:      "https://www.loom.com/share/zzz999?sid=1",
			expected: "https://www.loom.com/embed/zzz999",
		},
		{
			name:     "loom non-share link",
			url:      "https://www.loom.com/looms/videos",
			expected: "",
		},
		{
			name:     "unsupported host",
			url:      "https://example.com/video.mp4",
			expected: "",
		},
		{
			name:     "not a URL",
			url:      "not a url at all",
			expected: "",
		},
		{
			name:     "lookalike host is not youtube",
			url:      "https://notyoutube.company/watch?v=abc123",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embed := ResolveVideoEmbed(tt.url)

			if tt.expected == "" {
				assert.Nil(t, embed)
			} else {
				if assert.NotNil(t, embed) {
					assert.Equal(t, tt.expected, *embed)
				}
			}
		})
	}
}

func TestResolveVideoEmbedIsDeterministic(t *testing.T) {
	first := ResolveVideoEmbed("https://www.youtube.com/watch?v=abc123")
	second := ResolveVideoEmbed("https://www.youtube.com/watch?v=abc123")

	if assert.NotNil(t, first) && assert.NotNil(t, second) {
		assert.Equal(t, *first, *second)
	}
}

func TestNormalizeAttachment(t *testing.T) {
	tests := []struct {
		name         string
		input        models.AttachmentInput
		expectError  bool
		expectedName string // document display name, empty to skip
		expectEmbed  bool
	}{
		{
			name:  "image keeps raw URL",
			input: models.AttachmentInput{Kind: models.AttachmentKindImage, URL: "https://cdn.example.com/pic.png"},
		},
		{
			name:  "external link keeps raw URL",
			input: models.AttachmentInput{Kind: models.AttachmentKindLink, URL: "https://example.com/article"},
		},
		{
			name:         "document derives display name",
			input:        models.AttachmentInput{Kind: models.AttachmentKindDocument, URL: "https://files.example.com/docs/handbook.pdf"},
			expectedName: "handbook.pdf",
		},
		{
			name:         "document with no path falls back",
			input:        models.AttachmentInput{Kind: models.AttachmentKindDocument, URL: "https://files.example.com"},
			expectedName: "attachment",
		},
		{
			name:        "supported video resolves embed",
			input:       models.AttachmentInput{Kind: models.AttachmentKindVideo, URL: "https://vimeo.com/99887766"},
			expectEmbed: true,
		},
		{
			name:        "unsupported video still normalizes without embed",
			input:       models.AttachmentInput{Kind: models.AttachmentKindVideo, URL: "https://example.com/video.mp4"},
			expectEmbed: false,
		},
		{
			name:        "unknown kind is rejected",
			input:       models.AttachmentInput{Kind: "archive", URL: "https://example.com/files.zip"},
			expectError: true,
		},
		{
			name:        "blank URL is rejected",
			input:       models.AttachmentInput{Kind: models.AttachmentKindImage, URL: "   "},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attachment, err := NormalizeAttachment(tt.input)

			if tt.expectError {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.input.Kind, attachment.Kind)

			if tt.expectedName != "" {
				if assert.NotNil(t, attachment.Display_Name) {
					assert.Equal(t, tt.expectedName, *attachment.Display_Name)
				}
			}

			if tt.input.Kind == models.AttachmentKindVideo {
				if tt.expectEmbed {
					assert.NotNil(t, attachment.Embed_URL)
				} else {
					assert.Nil(t, attachment.Embed_URL)
				}
			}
		})
	}
}

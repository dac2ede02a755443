package models

// Attachment kinds. A comment carries at most one attachment.
const (
	AttachmentKindImage    = "image"
	AttachmentKindDocument = "document"
	AttachmentKindLink     = "link"
	AttachmentKindVideo    = "video"
)

// Attachment is a normalized, renderable attachment descriptor.
// Display_Name is set for documents; Embed_URL is set for videos hosted by
// a supported provider and nil otherwise (callers render a plain link).
type Attachment struct {
	Kind         string  `json:"kind"`
	URL          string  `json:"url"`
	Display_Name *string `json:"displayName,omitempty"`
	Embed_URL    *string `json:"embedUrl,omitempty"`
}

// AttachmentInput is the raw attachment as submitted by a client.
type AttachmentInput struct {
	Kind string `json:"kind" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

package models

import "time"

// Comment statuses. New comments start active; approved is set by a
// moderator and counts as visible; reported comments are hidden everywhere.
const (
	CommentStatusActive   = "active"
	CommentStatusApproved = "approved"
	CommentStatusReported = "reported"
)

// Comment context types. context_id is set iff the context is a group.
const (
	ContextTypeFeed  = "feed"
	ContextTypeGroup = "group"
)

// Comment is a post (parent_id null) or a single-level reply.
type Comment struct {
	Comment_ID           int        `json:"commentId" db:"comment_id" goqu:"skipinsert"`
	Author_ID            int        `json:"authorId" db:"author_id"`
	Parent_ID            *int       `json:"parentId" db:"parent_id"`
	Context_Type         string     `json:"contextType" db:"context_type"`
	Context_ID           *int       `json:"contextId" db:"context_id"`
	Body                 string     `json:"body" db:"body"`
	Attachment_Kind      *string    `json:"attachmentKind" db:"attachment_kind"`
	Attachment_URL       *string    `json:"attachmentUrl" db:"attachment_url"`
	Attachment_Name      *string    `json:"attachmentName" db:"attachment_name"`
	Attachment_Embed_URL *string    `json:"attachmentEmbedUrl" db:"attachment_embed_url"`
	Status               string     `json:"status" db:"status"`
	Reported_By          *int       `json:"-" db:"reported_by" goqu:"skipinsert"`
	Reported_At          *time.Time `json:"-" db:"reported_at" goqu:"skipinsert"`
	Report_Reason        *string    `json:"-" db:"report_reason" goqu:"skipinsert"`
	Report_Details       *string    `json:"-" db:"report_details" goqu:"skipinsert"`
	Datetime_Create      time.Time  `json:"datetimeCreate" db:"datetime_create" goqu:"skipinsert"`
	Datetime_Update      time.Time  `json:"datetimeUpdate" db:"datetime_update" goqu:"skipinsert"`
}

// CommentCreate is the request body for creating a post.
type CommentCreate struct {
	Body       string           `json:"body" binding:"required"`
	Attachment *AttachmentInput `json:"attachment"`
}

// ReplyCreate is the request body for replying to a post.
type ReplyCreate struct {
	Body string `json:"body" binding:"required"`
}

// CommentUpdate is the request body for editing a comment.
type CommentUpdate struct {
	Body string `json:"body" binding:"required"`
}

// CommentReport is the request body for reporting a comment.
type CommentReport struct {
	Reason  string  `json:"reason" binding:"required"`
	Details *string `json:"details"`
}

// CommentWithAuthor decorates a comment with display info for feed output.
type CommentWithAuthor struct {
	Comment
	Author_Name   string  `json:"authorName" db:"author_name"`
	Author_Avatar *string `json:"authorAvatar,omitempty" db:"author_avatar"`
	Is_Own        bool    `json:"isOwn" db:"-"`
}

// FeedPost is a top-level comment with its ordered replies.
type FeedPost struct {
	CommentWithAuthor
	Replies []CommentWithAuthor `json:"replies"`
}

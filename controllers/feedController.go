package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CircleTalk/initializers"
	"github.com/CircleTalk/models"
	"github.com/doug-martin/goqu/v9"
)

// commentColumns is the shared select list for feed queries. Report
// metadata is deliberately excluded; it never leaves the moderation path.
// The author join falls back to "Unknown" for deleted profiles rather than
// failing the whole feed.
func commentColumns() []interface{} {
	return []interface{}{
		goqu.I("comment.comment_id"),
		goqu.I("comment.author_id"),
		goqu.I("comment.parent_id"),
		goqu.I("comment.context_type"),
		goqu.I("comment.context_id"),
		goqu.I("comment.body"),
		goqu.I("comment.attachment_kind"),
		goqu.I("comment.attachment_url"),
		goqu.I("comment.attachment_name"),
		goqu.I("comment.attachment_embed_url"),
		goqu.I("comment.status"),
		goqu.I("comment.datetime_create"),
		goqu.I("comment.datetime_update"),
		goqu.COALESCE(goqu.I("user_profile.display_name"), goqu.V("Unknown")).As("author_name"),
		goqu.I("user_profile.avatar_url").As("author_avatar"),
	}
}

// GetFeed assembles the global feed
func GetFeed(c *gin.Context) {
	assembleFeed(c, models.ContextTypeFeed, nil)
}

// GetGroupFeed assembles a group-scoped feed for a current member.
func GetGroupFeed(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID
	isAdmin := c.MustGet("admin").(bool)

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID", "details": err.Error()})
		return
	}

	member, err := isGroupMember(userID, groupID)
	if err != nil {
		log.Printf("Failed to check group membership: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check group membership"})
		return
	}
	if !member && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "You must be a member of this group to view its feed"})
		return
	}

	assembleFeed(c, models.ContextTypeGroup, &groupID)
}

// assembleFeed returns visible posts newest-first, each with its visible
// replies oldest-first. A store failure is an explicit error response so
// callers can tell "no posts" from "could not load posts".
func assembleFeed(c *gin.Context, contextType string, contextID *int) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	postsQuery := initializers.DB.From("comment").
		Select(commentColumns()...).
		LeftJoin(
			goqu.T("user_profile"),
			goqu.On(goqu.I("comment.author_id").Eq(goqu.I("user_profile.user_profile_id"))),
		).
		Where(goqu.I("comment.parent_id").IsNull()).
		Where(goqu.I("comment.context_type").Eq(contextType)).
		Where(goqu.I("comment.status").In(models.CommentStatusActive, models.CommentStatusApproved)).
		Order(goqu.I("comment.datetime_create").Desc())

	if contextID != nil {
		postsQuery = postsQuery.Where(goqu.I("comment.context_id").Eq(*contextID))
	}

	var posts []models.CommentWithAuthor
	if err := postsQuery.ScanStructs(&posts); err != nil {
		log.Printf("Failed to fetch posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	feed := make([]models.FeedPost, 0, len(posts))
	if len(posts) == 0 {
		c.JSON(http.StatusOK, gin.H{"posts": feed, "viewerId": userID})
		return
	}

	postIDs := make([]int, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.Comment_ID)
	}

	repliesQuery := initializers.DB.From("comment").
		Select(commentColumns()...).
		LeftJoin(
			goqu.T("user_profile"),
			goqu.On(goqu.I("comment.author_id").Eq(goqu.I("user_profile.user_profile_id"))),
		).
		Where(goqu.I("comment.parent_id").In(postIDs)).
		Where(goqu.I("comment.status").In(models.CommentStatusActive, models.CommentStatusApproved)).
		Order(goqu.I("comment.datetime_create").Asc())

	var replies []models.CommentWithAuthor
	if err := repliesQuery.ScanStructs(&replies); err != nil {
		log.Printf("Failed to fetch replies: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load feed"})
		return
	}

	repliesByPost := make(map[int][]models.CommentWithAuthor, len(posts))
	for _, reply := range replies {
		reply.Is_Own = reply.Author_ID == userID
		repliesByPost[*reply.Parent_ID] = append(repliesByPost[*reply.Parent_ID], reply)
	}

	for _, post := range posts {
		post.Is_Own = post.Author_ID == userID
		postReplies := repliesByPost[post.Comment_ID]
		if postReplies == nil {
			postReplies = []models.CommentWithAuthor{}
		}
		feed = append(feed, models.FeedPost{
			CommentWithAuthor: post,
			Replies:           postReplies,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    feed,
		"viewerId": userID,
	})
}

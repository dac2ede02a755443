package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CircleTalk/initializers"
	"github.com/CircleTalk/models"
	"github.com/CircleTalk/services"
	"github.com/doug-martin/goqu/v9"
)

// fetchComment loads a comment row by id.
func fetchComment(commentID int) (models.Comment, bool, error) {
	var comment models.Comment
	found, err := initializers.DB.From("comment").
		Where(goqu.C("comment_id").Eq(commentID)).
		ScanStruct(&comment)
	return comment, found, err
}

// isGroupMember checks for an active membership row.
func isGroupMember(userID int, groupID int) (bool, error) {
	var memberCount int64
	query := initializers.DB.From("user_group").
		Select(goqu.COUNT("*")).
		Where(
			goqu.And(
				goqu.C("group_profile_id").Eq(groupID),
				goqu.C("user_profile_id").Eq(userID),
				goqu.C("is_active").IsTrue(),
			),
		)

	_, err := query.ScanVal(&memberCount)
	if err != nil {
		return false, err
	}
	return memberCount > 0, nil
}

// CreateFeedPost creates a top-level post on the global feed
func CreateFeedPost(c *gin.Context) {
	createPost(c, models.ContextTypeFeed, nil)
}

// CreateGroupPost creates a top-level post scoped to a group. The acting
// user must be a current member of the group.
func CreateGroupPost(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	groupID, err := strconv.Atoi(c.Param("group_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid group profile ID", "details": err.Error()})
		return
	}

	var group models.GroupProfile
	groupFound, err := initializers.DB.From("group_profile").
		Where(goqu.C("group_profile_id").Eq(groupID)).
		ScanStruct(&group)

	if err != nil || !groupFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	member, err := isGroupMember(userID, groupID)
	if err != nil {
		log.Printf("Failed to check group membership: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check group membership"})
		return
	}
	if !member {
		c.JSON(http.StatusForbidden, gin.H{"error": "You must be a member of this group to post"})
		return
	}

	createPost(c, models.ContextTypeGroup, &groupID)
}

func createPost(c *gin.Context, contextType string, contextID *int) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	var postData models.CommentCreate
	if err := c.ShouldBindJSON(&postData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	body := strings.TrimSpace(postData.Body)
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post body is required"})
		return
	}

	comment := models.Comment{
		Author_ID:    userID,
		Context_Type: contextType,
		Context_ID:   contextID,
		Body:         body,
		Status:       models.CommentStatusActive,
	}

	if postData.Attachment != nil {
		attachment, err := services.NormalizeAttachment(*postData.Attachment)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment", "details": err.Error()})
			return
		}
		comment.Attachment_Kind = &attachment.Kind
		comment.Attachment_URL = &attachment.URL
		comment.Attachment_Name = attachment.Display_Name
		comment.Attachment_Embed_URL = attachment.Embed_URL
	}

	insert := initializers.DB.Insert("comment").
		Rows(comment).
		Returning("comment_id", "datetime_create", "datetime_update")

	var inserted struct {
		Comment_ID      int       `db:"comment_id"`
		Datetime_Create time.Time `db:"datetime_create"`
		Datetime_Update time.Time `db:"datetime_update"`
	}

	_, err := insert.Executor().ScanStruct(&inserted)
	if err != nil {
		log.Printf("Failed to create post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post", "details": err.Error()})
		return
	}

	comment.Comment_ID = inserted.Comment_ID
	comment.Datetime_Create = inserted.Datetime_Create
	comment.Datetime_Update = inserted.Datetime_Update

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"comment": comment,
	})
}

// CreateReply creates a reply to a top-level post. Replies nest exactly one
// level; a reply whose target is itself a reply is rejected outright rather
// than re-parented.
func CreateReply(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	postID, err := strconv.Atoi(c.Param("post_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID", "details": err.Error()})
		return
	}

	var replyData models.ReplyCreate
	if err := c.ShouldBindJSON(&replyData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	body := strings.TrimSpace(replyData.Body)
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reply body is required"})
		return
	}

	post, found, err := fetchComment(postID)
	if err != nil {
		log.Printf("Failed to fetch post %d: %v", postID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.Parent_ID != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Replies can only target top-level posts"})
		return
	}

	reply := models.Comment{
		Author_ID:    currentUser.User_Profile_ID,
		Parent_ID:    &post.Comment_ID,
		Context_Type: post.Context_Type,
		Context_ID:   post.Context_ID,
		Body:         body,
		Status:       models.CommentStatusActive,
	}

	insert := initializers.DB.Insert("comment").
		Rows(reply).
		Returning("comment_id", "datetime_create", "datetime_update")

	var inserted struct {
		Comment_ID      int       `db:"comment_id"`
		Datetime_Create time.Time `db:"datetime_create"`
		Datetime_Update time.Time `db:"datetime_update"`
	}

	_, err = insert.Executor().ScanStruct(&inserted)
	if err != nil {
		log.Printf("Failed to create reply: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reply", "details": err.Error()})
		return
	}

	reply.Comment_ID = inserted.Comment_ID
	reply.Datetime_Create = inserted.Datetime_Create
	reply.Datetime_Update = inserted.Datetime_Update

	go services.NotifyAuthorOfReply(post.Author_ID, post.Comment_ID, currentUser.User_Profile_ID, currentUser.Display_Name)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Reply created successfully",
		"comment": reply,
	})
}

// UpdateComment edits a comment body. Only the author may edit, regardless
// of the comment's moderation status.
func UpdateComment(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID", "details": err.Error()})
		return
	}

	var updateData models.CommentUpdate
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	body := strings.TrimSpace(updateData.Body)
	if body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
		return
	}

	existingComment, found, err := fetchComment(commentID)
	if err != nil || !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if existingComment.Author_ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own comments"})
		return
	}

	updateQuery := initializers.DB.Update("comment").
		Set(goqu.Record{
			"body":            body,
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("comment_id").Eq(commentID))

	result, err := updateQuery.Executor().Exec()
	if err != nil {
		log.Printf("Failed to update comment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were updated"})
		return
	}

	existingComment.Body = body

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment updated successfully",
		"comment": existingComment,
	})
}

// DeleteComment hard-deletes a comment. Only the author may delete. Deleting
// a post also deletes its replies, so the store never holds orphans.
func DeleteComment(c *gin.Context) {
	userID := c.MustGet("currentUser").(models.UserProfile).User_Profile_ID

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID", "details": err.Error()})
		return
	}

	existingComment, found, err := fetchComment(commentID)
	if err != nil || !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if existingComment.Author_ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own comments"})
		return
	}

	deleteQuery := initializers.DB.Delete("comment").
		Where(
			goqu.Or(
				goqu.C("comment_id").Eq(commentID),
				goqu.C("parent_id").Eq(commentID),
			),
		)

	result, err := deleteQuery.Executor().Exec()
	if err != nil {
		log.Printf("Failed to delete comment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were deleted"})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// ReportComment flags a comment for moderation, hiding it from every feed.
// The transition is conditional on the row still being active, so concurrent
// duplicate reports record exactly one reporter and both callers see
// success. Approved comments are moderation-immune and also no-op here.
func ReportComment(c *gin.Context) {
	currentUser := c.MustGet("currentUser").(models.UserProfile)

	commentID, err := strconv.Atoi(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID", "details": err.Error()})
		return
	}

	var reportData models.CommentReport
	if err := c.ShouldBindJSON(&reportData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Report reason is required", "details": err.Error()})
		return
	}

	existingComment, found, err := fetchComment(commentID)
	if err != nil || !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	updateQuery := initializers.DB.Update("comment").
		Set(goqu.Record{
			"status":         models.CommentStatusReported,
			"reported_by":    currentUser.User_Profile_ID,
			"reported_at":    time.Now(),
			"report_reason":  reportData.Reason,
			"report_details": reportData.Details,
		}).
		Where(
			goqu.C("comment_id").Eq(commentID),
			goqu.C("status").Eq(models.CommentStatusActive),
		)

	result, err := updateQuery.Executor().Exec()
	if err != nil {
		log.Printf("Failed to report comment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to report comment", "details": err.Error()})
		return
	}

	// Zero rows means another report won the race or the comment isn't
	// active. Either way the caller observes ordinary success.
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		go services.NotifyModeratorsOfReport(commentID, currentUser.Display_Name, reportData.Reason, existingComment.Body)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment reported successfully"})
}

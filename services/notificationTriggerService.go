package services

import (
	"fmt"
	"log"
	"strconv"

	"github.com/CircleTalk/initializers"
	"github.com/doug-martin/goqu/v9"
)

// NotifyAuthorOfReply pushes a notification to the post author when someone
// replies to their post. Self-replies are skipped. Fire-and-forget: the
// reply itself already succeeded, so failures here are only logged.
func NotifyAuthorOfReply(postAuthorID int, postID int, actorID int, actorName string) {
	if postAuthorID == actorID {
		return
	}

	service := GetPushNotificationService()
	if service == nil {
		return
	}

	payload := NotificationPayload{
		Title: "New reply",
		Body:  fmt.Sprintf("%s replied to your post", actorName),
		Data: map[string]string{
			"type":   "REPLY_CREATED",
			"postId": strconv.Itoa(postID),
		},
		Sound:    "default",
		Priority: "high",
	}

	if err := service.SendNotificationToUser(postAuthorID, payload); err != nil {
		log.Printf("Failed to send reply notification for post %d: %v", postID, err)
	}
}

// NotifyModeratorsOfReport emails every admin when a comment enters the
// reported state. Runs once per comment, on the winning report transition.
func NotifyModeratorsOfReport(commentID int, reporterName string, reason string, excerpt string) {
	service := GetEmailService()
	if service == nil {
		return
	}

	var adminEmails []string
	err := initializers.DB.From("user_profile").
		Select("email").
		Where(goqu.C("admin").IsTrue()).
		ScanVals(&adminEmails)
	if err != nil {
		log.Printf("Failed to fetch moderator emails for comment %d report: %v", commentID, err)
		return
	}

	for _, email := range adminEmails {
		if err := service.SendReportAlertEmail(email, reporterName, reason, excerpt); err != nil {
			log.Printf("Failed to send report alert to %s: %v", email, err)
		}
	}
}

package services

import (
	"fmt"
	"log"
	"os"

	"github.com/resend/resend-go/v2"
)

type EmailService struct {
	client *resend.Client
}

var emailService *EmailService

// InitEmailService initializes the email service with Resend API
func InitEmailService() {
	apiKey := os.Getenv("RESEND_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: RESEND_API_KEY not set. Email service will not be available.")
		return
	}

	emailService = &EmailService{
		client: resend.NewClient(apiKey),
	}

	log.Println("Email service initialized successfully with Resend")
}

// GetEmailService returns the singleton email service instance
func GetEmailService() *EmailService {
	return emailService
}

// SendReportAlertEmail notifies a moderator that a comment was reported and
// is now hidden from every feed pending review.
func (s *EmailService) SendReportAlertEmail(toEmail string, reporterName string, reason string, excerpt string) error {
	if s == nil || s.client == nil {
		return fmt.Errorf("email service not initialized")
	}

	if len(excerpt) > 140 {
		excerpt = excerpt[:140] + "…"
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #c0624d;">A comment was reported</h2>
    <p><strong>%s</strong> reported a comment.</p>
    <p><strong>Reason:</strong> %s</p>
    <blockquote style="border-left: 3px solid #ddd; margin: 16px 0; padding: 8px 16px; color: #666;">%s</blockquote>
    <p>The comment is hidden from all feeds until a moderator reviews it.</p>
</body>
</html>`, reporterName, reason, excerpt)

	params := &resend.SendEmailRequest{
		From:    os.Getenv("EMAIL_FROM"),
		To:      []string{toEmail},
		Subject: "CircleTalk: comment reported",
		Html:    htmlBody,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		return fmt.Errorf("failed to send report alert email: %v", err)
	}

	return nil
}

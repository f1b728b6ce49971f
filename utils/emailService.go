package utils

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"learnhub/config"
)

// SendEmail delivers a transactional email through SendGrid. A missing API
// key disables delivery (logged) so local development works without one.
func SendEmail(toName, toEmail, subject, htmlBody string) error {
	if config.AppConfig.SendgridAPIKey == "" {
		log.Printf("Email disabled, skipping %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("LearnHub", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the shared HTML shell
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1A2B4C; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A2B4C; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4C7BD9; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNHUB</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; LearnHub. Keep learning.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendWelcomeEmail greets a freshly registered user
func SendWelcomeEmail(email, name string) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>Welcome to LearnHub! Browse the course catalog and enroll to start learning.</p>`, name)
	if err := SendEmail(name, email, "Welcome to LearnHub", getEmailTemplate("Welcome aboard", body)); err != nil {
		log.Printf("Error sending welcome email: %v", err)
	}
}

// SendEnrollmentEmail confirms a new enrollment
func SendEnrollmentEmail(email, name, courseTitle string) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>You are now enrolled in <strong>%s</strong>. Your progress starts at 0%%.</p>`, name, courseTitle)
	if err := SendEmail(name, email, "Enrollment confirmed", getEmailTemplate("Enrollment confirmed", body)); err != nil {
		log.Printf("Error sending enrollment email: %v", err)
	}
}

// SendGradeEmail notifies a student their submission was graded
func SendGradeEmail(email, name, assignmentTitle string, grade, maxScore int) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>Your submission for <strong>%s</strong> was graded.</p>
		<div class="info-box">Score: %d / %d</div>`, name, assignmentTitle, grade, maxScore)
	if err := SendEmail(name, email, "Your submission was graded", getEmailTemplate("Submission graded", body)); err != nil {
		log.Printf("Error sending grade email: %v", err)
	}
}

// SendPasswordResetEmail delivers the reset code
func SendPasswordResetEmail(email, name, code string) {
	body := fmt.Sprintf(`<p>Hi %s,</p>
		<p>Use the code below to reset your password. It expires in 15 minutes.</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>If you did not request this, ignore this email.</p>`, name, code)
	if err := SendEmail(name, email, "Password reset code", getEmailTemplate("Password reset", body)); err != nil {
		log.Printf("Error sending password reset email: %v", err)
	}
}

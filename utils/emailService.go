package utils

import (
	"fmt"
	"lms/config"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a transactional email through Sendgrid. When no API key
// is configured (local dev, tests) the send is skipped with a log line.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendgridApiKey == "" {
		log.Printf("Sendgrid disabled, skipping email to %s: %s", toEmail, subject)
		return nil
	}

	from := mail.NewEmail("Learning Platform", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", getEmailTemplate(subject, htmlBody))

	client := sendgrid.NewSendClient(config.AppConfig.SendgridApiKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("Sendgrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1B3A4B; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B3A4B; line-height: 1.6; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #5BC0BE; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LEARNING PLATFORM</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Learning Platform. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// Certificate issued for a completed course
func SendCertificateIssuedEmail(email, name, courseTitle, certificateNumber string, points int) {
	subject := "Certificate Issued: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong>.</p>
		<div class="info-box">
			Certificate number: <strong>%s</strong><br>
			Points earned: <strong>%d</strong>
		</div>
	`, name, courseTitle, certificateNumber, points)

	go SendEmail(email, name, subject, body)
}

// External certificate upload approved
func SendUploadApprovedEmail(email, name, programTitle string, points uint) {
	subject := "Certificate Approved: " + programTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your certificate for <strong>%s</strong> has been approved.</p>
		<div class="info-box">Points credited: <strong>%d</strong></div>
	`, name, programTitle, points)

	go SendEmail(email, name, subject, body)
}

// External certificate upload rejected
func SendUploadRejectedEmail(email, name, programTitle, note string) {
	subject := "Certificate Rejected: " + programTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately, your certificate for <strong>%s</strong> was rejected.</p>
		<div style="color: #dc3545; font-weight: bold;">Note: %s</div>
		<p>You can contact support if you believe this is a mistake.</p>
	`, name, programTitle, note)

	go SendEmail(email, name, subject, body)
}

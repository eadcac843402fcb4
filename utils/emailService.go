package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/therossee/thesis-proposals-sub001/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Thesis Office <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

func emailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #00264D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00264D; line-height: 1.6; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>%s</h1></div>
			<div class="content">%s</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendApplicationStatusEmail notifies the student that their thesis
// application was approved or rejected. Best effort: callers log and
// swallow the error.
func SendApplicationStatusEmail(email, studentName, topic, newStatus string) error {
	subject := fmt.Sprintf("Thesis application %s", newStatus)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your thesis application for the topic <b>%s</b> has been <b>%s</b>.</p>
		<p>You can review the details in your student portal.</p>
	`, studentName, topic, newStatus)

	return SendEmail([]string{email}, subject, emailTemplate("Thesis Application Update", body))
}

// SendConclusionApprovedEmail notifies the student that their
// conclusion request was approved.
func SendConclusionApprovedEmail(email, studentName, title string) error {
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your conclusion request for the thesis <b>%s</b> has been approved.</p>
		<p>Please proceed with the AlmaLaurea registration from your student portal.</p>
	`, studentName, title)

	return SendEmail([]string{email}, "Thesis conclusion request approved", emailTemplate("Conclusion Request Approved", body))
}

package service

import (
	"fmt"
	"net/smtp"
	"os"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EmailService sends transactional mail over plain SMTP. When SMTP is not
// configured the message is logged instead of sent, which keeps local
// development working without credentials.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
}

func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost:     os.Getenv("SMTP_HOST"),
		smtpPort:     os.Getenv("SMTP_PORT"),
		smtpUsername: os.Getenv("SMTP_USERNAME"),
		smtpPassword: os.Getenv("SMTP_PASSWORD"),
		fromEmail:    os.Getenv("EMAIL_FROM"),
		fromName:     os.Getenv("EMAIL_FROM_NAME"),
	}
}

// SendPasswordReset mails the reset link for a token.
func (s *EmailService) SendPasswordReset(toEmail, toName, resetToken string) error {
	baseURL := os.Getenv("FRONTEND_URL")
	if baseURL == "" {
		baseURL = "http://localhost:5173"
	}
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", baseURL, resetToken)

	caser := cases.Title(language.English)
	subject := "Reset Your Password - expireTrack"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<h2>Hi %s,</h2>
	<p>We received a request to reset your expireTrack password.</p>
	<p><a href="%s" style="background-color: #4CAF50; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset Password</a></p>
	<p>This link expires in one hour. If you did not request a reset, you can ignore this email.</p>
</body>
</html>`, caser.String(toName), resetURL)

	return s.sendEmail(toEmail, subject, body)
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	if s.smtpHost == "" || s.smtpPort == "" {
		fmt.Printf("SMTP not configured, logging email:\n")
		fmt.Printf("To: %s\nSubject: %s\nBody:\n%s\n--- End Email ---\n", to, subject, body)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/html; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

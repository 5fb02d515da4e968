package services

import (
	"fmt"
	"html"
	"path/filepath"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendWelcomeEmail(email, fullName string) error
	SendReportEmail(email, agentName, attachmentPath string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

// NewEmailService returns nil when no SMTP host is configured.
func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	if smtpHost == "" {
		return nil
	}
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendWelcomeEmail(email, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your call center account")

	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>An account has been created for you on the call center dashboard.</p>
		<p>Sign in with this e-mail address to see the retailers and tasks assigned to you.</p>
	`, html.EscapeString(fullName))
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

func (s *emailService) SendReportEmail(email, agentName, attachmentPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Task report: "+agentName)
	m.SetBody("text/html", fmt.Sprintf(
		`<p>Attached is the current task report for <b>%s</b>.</p>`, html.EscapeString(agentName)))
	m.Attach(attachmentPath, gomail.Rename(filepath.Base(attachmentPath)))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}
	return nil
}

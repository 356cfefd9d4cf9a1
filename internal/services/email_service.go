package services

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendLoginCodeEmail(email, code string) error
	SendWelcomeEmail(email, name string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendLoginCodeEmail(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your sign-in code")

	body := fmt.Sprintf(`
		<h3>Sign in to Riverside Club</h3>
		<p>Your one-time sign-in code is: <strong>%s</strong></p>
		<p>The code expires in a few minutes. If you did not request it, you can ignore this email.</p>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send login code email: %w", err)
	}

	return nil
}

func (s *emailService) SendWelcomeEmail(email, name string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Welcome to Riverside Club!")

	body := fmt.Sprintf(`
		<h2>Welcome to Riverside Club, %s!</h2>
		<p>Your membership account has been created.</p>
		<p>You can sign in any time with a one-time code sent to this address — no password needed.</p>
		<p>Best regards,<br>The Riverside Club Team</p>
	`, name)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}

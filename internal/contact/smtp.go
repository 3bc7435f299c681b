package contact

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

// ErrNotConfigured is returned when SMTP credentials are missing
var ErrNotConfigured = errors.New("SMTP credentials not configured")

// SMTPSender mails submissions to the site owner
type SMTPSender struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// send defaults to smtp.SendMail
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a sender. An empty To falls back to User.
func NewSMTPSender(host, port, user, pass, to string) *SMTPSender {
	if to == "" {
		to = user
	}
	return &SMTPSender{Host: host, Port: port, User: user, Pass: pass, To: to, send: smtp.SendMail}
}

func (s *SMTPSender) Send(ctx context.Context, sub Submission) error {
	if s.User == "" || s.Pass == "" {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", s.User, s.Pass, s.Host)
	if err := s.send(s.Host+":"+s.Port, auth, s.User, []string{s.To}, s.compose(sub)); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", s.Host, err)
	}
	return nil
}

func (s *SMTPSender) compose(sub Submission) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(sub.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, sub.Name, sub.Email, sub.Message)

	return []byte("To: " + s.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + s.User + "\r\n" +
		"Reply-To: " + headerSafe(sub.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so form input cannot add headers
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

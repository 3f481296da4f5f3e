// Package mail renders and delivers outgoing service mail over SMTP.
// Only the password-reset message exists today.
package mail

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/iliyamo/secure-admin/internal/config"
)

// resetBody is the HTML template for reset mail, carried over from the
// first deployment of the service.
const resetBody = `<html>
  <body style="font-family: Arial, sans-serif;">
    <div style="max-width:600px;margin:0 auto;padding:20px;border:1px solid #ccc;border-radius:5px;">
      <h1>Password reset</h1>
      <p>Please use the following token to reset your password:</p>
      <p>%s</p>
    </div>
  </body>
</html>`

// Sender delivers mail through a fixed SMTP endpoint. With no host
// configured Send becomes a no-op that reports success; the consumer
// logs the message instead.
type Sender struct {
	cfg config.MailConfig
}

func NewSender(cfg config.MailConfig) *Sender { return &Sender{cfg: cfg} }

// Configured reports whether an SMTP host is set.
func (s *Sender) Configured() bool { return s.cfg.Host != "" }

// SendPasswordReset sends the reset token to the given address.
func (s *Sender) SendPasswordReset(to, token string) error {
	if !s.Configured() {
		return nil
	}
	msg := buildMessage(s.cfg.From, to, "Password reset", fmt.Sprintf(resetBody, token))
	addr := s.cfg.Host + ":" + s.cfg.Port
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	}
	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, msg)
}

// buildMessage assembles an RFC 5322 message with an HTML body.
func buildMessage(from, to, subject, html string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: " + subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")
	return []byte(b.String())
}

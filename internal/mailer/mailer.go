package mailer

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/mvps-print/printshop-backend/config"
)

// Mailer sends HTML mail over SMTP. Sends are synchronous: a dial or send
// failure is returned to the caller, never swallowed.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func New(cfg *config.SMTPConfig) *Mailer {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
	}
}

func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

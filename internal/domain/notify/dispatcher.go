package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Dispatcher delivers outbound email. Implementations are expected to be
// slow and unreliable; callers treat failures as log-and-continue.
type Dispatcher interface {
	Send(ctx context.Context, e Email) error
}

// SMTPDispatcher sends mail through a plain SMTP relay.
type SMTPDispatcher struct {
	Host string
	Port string
	User string
	Pass string
	From string
}

func NewSMTPDispatcher(host, port, user, pass, from string) *SMTPDispatcher {
	return &SMTPDispatcher{Host: host, Port: port, User: user, Pass: pass, From: from}
}

func (d *SMTPDispatcher) Send(ctx context.Context, e Email) error {
	if e.To == "" {
		return fmt.Errorf("email has no recipient")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", d.From)
	fmt.Fprintf(&msg, "To: %s\r\n", e.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", e.Subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	msg.WriteString(e.Body)

	addr := d.Host + ":" + d.Port
	var auth smtp.Auth
	if d.User != "" {
		auth = smtp.PlainAuth("", d.User, d.Pass, d.Host)
	}

	if err := smtp.SendMail(addr, auth, d.From, []string{e.To}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", e.To, err)
	}
	return nil
}

package notifier

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

// Notifier delivers a rendered message.
type Notifier interface {
	Send(subject, body string) error
}

// EmailNotifier sends plain-text mail over SMTP.
type EmailNotifier struct {
	dialer      *gomail.Dialer
	fromName    string
	fromAddress string
	toAddresses []string
}

// NewEmailNotifier creates a notifier for the given SMTP account. With
// useTLS false, server certificates are not verified (local relays with
// self-signed certs).
func NewEmailNotifier(host string, port int, username, password string, useTLS bool, fromName, fromAddress string, toAddresses []string) *EmailNotifier {
	d := gomail.NewDialer(host, port, username, password)
	if !useTLS {
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &EmailNotifier{
		dialer:      d,
		fromName:    fromName,
		fromAddress: fromAddress,
		toAddresses: toAddresses,
	}
}

// Send delivers one message to all configured recipients.
func (n *EmailNotifier) Send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.fromAddress, n.fromName))
	m.SetHeader("To", n.toAddresses...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// TestConnection dials and authenticates against the SMTP server without
// sending anything. Used by --test-email.
func (n *EmailNotifier) TestConnection() error {
	closer, err := n.dialer.Dial()
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}
	return closer.Close()
}

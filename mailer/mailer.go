// Package mailer sends invitation emails over SMTP. Delivery is best effort:
// the caller logs failures and continues, an unsent email never fails the
// enclosing request.
package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"os"
	"strings"
	"time"

	"movienight/models"
)

type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
	baseURL  string
	timeout  time.Duration
}

// NewFromEnv builds a mailer from SMTP_* environment variables. Returns nil
// when SMTP_HOST is unset; callers treat a nil mailer as "email disabled".
func NewFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: os.Getenv("SMTP_USERNAME"),
		password: os.Getenv("SMTP_PASSWORD"),
		from:     os.Getenv("SMTP_FROM"),
		baseURL:  strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/"),
		timeout:  30 * time.Second,
	}
}

// SendInvitation emails the RSVP link for one invitation.
func (m *Mailer) SendInvitation(inv models.Invitation, event models.Event) error {
	rsvpURL := fmt.Sprintf("%s/api/invitations/%s", m.baseURL, inv.Token)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", inv.Email)
	fmt.Fprintf(&b, "Subject: You're invited: %s\r\n", event.Title)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")

	name := inv.Name
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\r\n\r\n", name)
	fmt.Fprintf(&b, "You're invited to %s on %s.\r\n", event.Title, event.StartsAt.Format("Monday, 2 January 2006 at 15:04"))
	if event.Location != "" {
		fmt.Fprintf(&b, "Where: %s\r\n", event.Location)
	}
	fmt.Fprintf(&b, "\r\nRSVP here: %s\r\n", rsvpURL)

	return m.send(inv.Email, []byte(b.String()))
}

func (m *Mailer) send(to string, msg []byte) error {
	addr := net.JoinHostPort(m.host, m.port)

	conn, err := net.DialTimeout("tcp", addr, m.timeout)
	if err != nil {
		return fmt.Errorf("smtp dial: %w", err)
	}

	client, err := smtp.NewClient(conn, m.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: m.host}); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}
	if m.username != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(m.from); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}
	return client.Quit()
}

package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"

	"timeslots-service/internal/config"
	"timeslots-service/internal/service"

	"gopkg.in/gomail.v2"
)

// Client sends reminder emails over SMTP.
type Client struct {
	cfg      *config.SMTPConfig
	template *template.Template
}

var _ service.EmailSender = (*Client)(nil)

// NewClient creates a new SMTP client
func NewClient(cfg *config.SMTPConfig) (*Client, error) {
	tmpl, err := template.New("reminder").Parse(defaultReminderTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reminder template: %w", err)
	}

	return &Client{
		cfg:      cfg,
		template: tmpl,
	}, nil
}

// SendReminder sends a tracking reminder email
func (c *Client) SendReminder(ctx context.Context, to string) error {
	var buf bytes.Buffer
	if err := c.template.Execute(&buf, nil); err != nil {
		return fmt.Errorf("failed to render reminder email: %w", err)
	}

	subject := "Time to log your hours - Time Tracker"
	return c.send(to, subject, buf.String())
}

// send sends an email using gomail
func (c *Client) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", c.cfg.FromName, c.cfg.FromEmail))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(c.cfg.Host, c.cfg.Port, c.cfg.Username, c.cfg.Password)

	// UseTLS = true means STARTTLS (port 587), otherwise SSL (port 465).
	if c.cfg.UseTLS {
		d.SSL = false
		d.TLSConfig = &tls.Config{
			ServerName: c.cfg.Host,
		}
	} else {
		d.SSL = true
		d.TLSConfig = &tls.Config{
			ServerName: c.cfg.Host,
		}
	}

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

const defaultReminderTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Time Tracking Reminder</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #4CAF50;">Don't forget to track your time!</h2>
        <p>Hi,</p>
        <p>It has been a while since you last logged what you were working on. Take a minute to fill in your current time segment.</p>
        <p>Keeping your day up to date makes your goal analytics much more useful.</p>
        <hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">
        <p style="color: #999; font-size: 12px;">This is an automated email, please do not reply. You can change reminder frequency or turn reminders off in your settings.</p>
    </div>
</body>
</html>
`

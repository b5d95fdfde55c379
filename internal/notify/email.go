// Package notify delivers notifications to users over email and push.
package notify

import (
	"crypto/tls"
	"fmt"
	"time"

	"github.com/go-mail/mail/v2"

	"github.com/karthikeyanvk18/Clerro/internal/log"
)

// Mailer sends HTML notification emails over SMTP. A Mailer built without an
// SMTP host is disabled and silently drops every send.
type Mailer struct {
	dialer  *mail.Dialer
	from    string
	logger  *log.Logger
	enabled bool
}

type MailerConfig struct {
	Host string
	Port int
	User string
	Pass string
	From string
}

func NewMailer(cfg MailerConfig, logger *log.Logger) *Mailer {
	m := &Mailer{
		from:    cfg.From,
		logger:  logger.WithComponent(log.ComponentNotify),
		enabled: cfg.Host != "",
	}
	if !m.enabled {
		return m
	}

	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	m.dialer = d
	return m
}

func (m *Mailer) SendWelcome(email, fullName string) error {
	body := fmt.Sprintf(`
		<h1>Welcome to Clerro</h1>
		<p>Hi %s, your account is ready.</p>
		<p>Add your debts, income and goals to see your financial health score.</p>
		<small>This is an automated message, please do not reply</small>
	`, fullName)
	return m.send(email, "Welcome to Clerro", body)
}

func (m *Mailer) SendPaymentConfirmation(email, debtName string, amount, remaining float64) error {
	body := fmt.Sprintf(`
		<h1>Payment recorded</h1>
		<p>Debt: <strong>%s</strong></p>
		<p>Amount: <strong>%.2f</strong></p>
		<p>Remaining balance: <strong>%.2f</strong></p>
		<p>Date: <strong>%s</strong></p>
		<small>This is an automated message, please do not reply</small>
	`, debtName, amount, remaining, time.Now().Format("02 Jan 2006 15:04"))
	return m.send(email, fmt.Sprintf("Payment recorded for %s", debtName), body)
}

func (m *Mailer) SendNotification(email, title, message string) error {
	body := fmt.Sprintf(`
		<h1>%s</h1>
		<p>%s</p>
		<small>This is an automated message, please do not reply</small>
	`, title, message)
	return m.send(email, title, body)
}

func (m *Mailer) send(to, subject, body string) error {
	if !m.enabled {
		m.logger.Debug("Email sending disabled, dropping message", log.FieldEmail, to)
		return nil
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error("Failed to send email", log.FieldEmail, to, log.FieldError, err)
		return fmt.Errorf("send email: %w", err)
	}

	m.logger.Info("Email sent", log.FieldEmail, to)
	return nil
}

package utils

import (
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/hasibmuhammad/portal-server/internal/config"
)

// Mailer sends transactional email over SMTP. It is disabled when no
// host is configured, which is the default for local development.
type Mailer struct {
	cfg    config.SMTPConfig
	logger *zap.Logger
}

func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

func (m *Mailer) Enabled() bool {
	return m.cfg.Host != ""
}

// SendEmail delivers a single HTML message.
func (m *Mailer) SendEmail(to string, subject string, body string) error {
	mailer := gomail.NewMessage()
	mailer.SetHeader("From", m.cfg.Username)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)

	if err := dialer.DialAndSend(mailer); err != nil {
		m.logger.Error("failed to send email", zap.String("to", to), zap.Error(err))
		return err
	}

	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends the transactional mails of the service.
type Mailer interface {
	SendTempPassword(to, tempPassword string) error
	SendVerificationCode(to, code string) error
}

// SMTPConfig holds SMTP connection settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer implements Mailer over gomail.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
	}
}

func (m *SMTPMailer) SendTempPassword(to, tempPassword string) error {
	body := fmt.Sprintf(tempPasswordBody, tempPassword)
	return m.send(to, "임시 비밀번호 안내", body)
}

func (m *SMTPMailer) SendVerificationCode(to, code string) error {
	body := fmt.Sprintf(verificationCodeBody, code)
	return m.send(to, "이메일 인증 코드", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}

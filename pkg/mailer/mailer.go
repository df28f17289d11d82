package mailer

import (
	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Message - одно исходящее письмо.
type Message struct {
	FromName  string
	FromEmail string
	To        []string
	Subject   string
	HTMLBody  string
}

// Mailer отправляет письмо. Отправка без повторов: упавшее письмо
// логируется и теряется, уже отправленные не откатываются.
type Mailer interface {
	Send(msg Message) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	gm := gomail.NewMessage()
	gm.SetAddressHeader("From", msg.FromEmail, msg.FromName)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/html", msg.HTMLBody)
	return m.dialer.DialAndSend(gm)
}

// LogMailer пишет письмо в лог вместо отправки. Используется, когда
// SMTP не настроен - поведение исходной системы, которая только логировала.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(msg Message) error {
	m.logger.Info("письмо не отправлено (SMTP не настроен), вывод в лог",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.HTMLBody)),
	)
	return nil
}

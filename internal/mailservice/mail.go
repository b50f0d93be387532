package mailservice

import (
	"time"

	"github.com/go-mail/mail/v2"
)

func NewMailer(host string, port int, username, password, sender string, tp TemplateParser) *Mail {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second

	return &Mail{
		dialer: dialer,
		sender: sender,
		parser: tp,
	}
}

// compose renders templateFile with data into a multipart message addressed to recipient.
func (m *Mail) compose(recipient string, data any, templateFile string) (*mail.Message, error) {
	subject, plainBody, htmlBody, err := m.parser.ParseTemplate(templateFile, data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject.String())
	msg.SetBody("text/plain", plainBody.String())
	msg.AddAlternative("text/html", htmlBody.String())

	return msg, nil
}

func (m *Mail) send(recipient string, data any, templateFile string) error {
	msg, err := m.compose(recipient, data, templateFile)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	return m.dialer.DialAndSend(msg)
}

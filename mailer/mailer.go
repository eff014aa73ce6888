package mailer

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers a single plaintext message.
type Mailer interface {
	Send(to, subject, body string) error
}

type SendgridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendgrid(apiKey, from, fromName string) *SendgridMailer {
	return &SendgridMailer{
		client:   sendgrid.NewSendClient(apiKey),
		from:     from,
		fromName: fromName,
	}
}

func (m *SendgridMailer) Send(to, subject, body string) error {
	from := mail.NewEmail(m.fromName, m.from)
	message := mail.NewSingleEmailPlainText(from, subject, mail.NewEmail("", to), body)

	response, err := m.client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected sendgrid status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

// LogMailer stands in when no Sendgrid key is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, _ string) error {
	log.Printf("[mail] would send %q to %s", subject, to)
	return nil
}

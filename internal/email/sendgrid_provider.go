package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridProvider struct {
	client *sendgrid.Client
	from   Sender
}

func NewSendGridProvider(apiKey string, from Sender) (*SendGridProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("sendgrid api key is required")
	}
	if from.Email == "" {
		return nil, fmt.Errorf("from email is required")
	}
	return &SendGridProvider{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}, nil
}

func (p *SendGridProvider) Name() string { return "sendgrid" }

func (p *SendGridProvider) Send(ctx context.Context, msg *Message) error {
	if len(msg.To) == 0 {
		return fmt.Errorf("no recipients specified")
	}

	from := mail.NewEmail(p.from.Name, p.from.Email)
	for _, to := range msg.To {
		m := mail.NewSingleEmail(from, msg.Subject, mail.NewEmail("", to), msg.TextBody, msg.HTMLBody)
		resp, err := p.client.SendWithContext(ctx, m)
		if err != nil {
			return fmt.Errorf("sendgrid send: %w", err)
		}
		if resp.StatusCode >= 300 {
			return fmt.Errorf("sendgrid send: status %d: %s", resp.StatusCode, resp.Body)
		}
	}
	return nil
}

package email

import (
	"context"
	"fmt"

	"jobmarket_backend/internal/config"
)

// Provider delivers a rendered message.
type Provider interface {
	Send(ctx context.Context, msg *Message) error
	Name() string
}

// TemplateRenderer renders named html templates.
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}

// NewProvider builds the provider selected by cfg.Provider.
func NewProvider(cfg config.EmailConfig) (Provider, error) {
	from := Sender{Email: cfg.FromEmail, Name: cfg.FromName}

	switch cfg.Provider {
	case "smtp":
		return NewSMTPProvider(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			UseTLS:   cfg.UseTLS,
		}, from)
	case "sendgrid":
		return NewSendGridProvider(cfg.SendGridAPIKey, from)
	case "", "log":
		return NewLogProvider(), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s", cfg.Provider)
	}
}

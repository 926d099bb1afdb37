package email

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

const appName = "Jobzworld"

// Mailer builds the account emails and hands them to a Provider.
type Mailer struct {
	provider    Provider
	renderer    TemplateRenderer
	frontendURL string
}

func NewMailer(provider Provider, renderer TemplateRenderer, frontendURL string) *Mailer {
	return &Mailer{
		provider:    provider,
		renderer:    renderer,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// VerificationURL is the link placed in the verification email.
func (m *Mailer) VerificationURL(userID, token string) string {
	q := url.Values{}
	q.Set("userId", userID)
	if token != "" {
		q.Set("token", token)
	}
	return m.frontendURL + "/verify-email?" + q.Encode()
}

func (m *Mailer) ResetURL(token string) string {
	return m.frontendURL + "/reset-password?token=" + url.QueryEscape(token)
}

func (m *Mailer) SendVerification(ctx context.Context, to, userID, token string) error {
	return m.sendTemplate(ctx, to, "Verify your "+appName+" account", TemplateVerification, TemplateData{
		"AppName":   appName,
		"ActionURL": m.VerificationURL(userID, token),
	})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, token string, ttl time.Duration) error {
	return m.sendTemplate(ctx, to, "Reset your "+appName+" password", TemplatePasswordReset, TemplateData{
		"AppName":   appName,
		"ActionURL": m.ResetURL(token),
		"ExpiresIn": humanDuration(ttl),
	})
}

func (m *Mailer) sendTemplate(ctx context.Context, to, subject, name string, data TemplateData) error {
	html, err := m.renderer.Render(name, data)
	if err != nil {
		return err
	}
	return m.provider.Send(ctx, &Message{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html,
		TextBody: fmt.Sprintf("%s\n\n%s", subject, data["ActionURL"]),
	})
}

func humanDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "a short time"
	case d%time.Hour == 0:
		if h := int(d / time.Hour); h != 1 {
			return fmt.Sprintf("%d hours", h)
		}
		return "1 hour"
	default:
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
}

package email

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"jobmarket_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_SendVerification(t *testing.T) {
	provider := NewMemoryProvider()
	m := NewMailer(provider, NewTemplateManager(), "http://localhost:3000/")

	require.NoError(t, m.SendVerification(context.Background(), "a@x.com", "u-1", "tok"))

	sent := provider.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"a@x.com"}, sent[0].To)
	assert.Equal(t, "Verify your Jobzworld account", sent[0].Subject)
	assert.Contains(t, sent[0].HTMLBody, "http://localhost:3000/verify-email?token=tok&amp;userId=u-1")
	assert.Contains(t, sent[0].TextBody, "http://localhost:3000/verify-email?token=tok&userId=u-1")
}

func TestMailer_SendPasswordReset(t *testing.T) {
	provider := NewMemoryProvider()
	m := NewMailer(provider, NewTemplateManager(), "https://app.example.com")

	require.NoError(t, m.SendPasswordReset(context.Background(), "a@x.com", "abc123", time.Hour))

	sent := provider.Sent()
	require.Len(t, sent, 1)
	assert.Contains(t, sent[0].HTMLBody, "https://app.example.com/reset-password?token=abc123")
	assert.Contains(t, sent[0].HTMLBody, "expire in 1 hour")
}

func TestMailer_ProviderErrorPropagates(t *testing.T) {
	provider := NewMemoryProvider()
	provider.Err = errors.New("smtp down")
	m := NewMailer(provider, NewTemplateManager(), "http://x")

	err := m.SendPasswordReset(context.Background(), "a@x.com", "t", 30*time.Minute)
	assert.EqualError(t, err, "smtp down")
	assert.Empty(t, provider.Sent())
}

func TestTemplateManager_LoadOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "verification.html"), []byte("custom {{.ActionURL}}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	tm := NewTemplateManager()
	require.NoError(t, tm.LoadTemplates(dir))

	out, err := tm.Render(TemplateVerification, TemplateData{"ActionURL": "u"})
	require.NoError(t, err)
	assert.Equal(t, "custom u", out)

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(config.EmailConfig{Provider: "log"})
	require.NoError(t, err)
	assert.Equal(t, "log", p.Name())

	_, err = NewProvider(config.EmailConfig{Provider: "smtp"})
	assert.Error(t, err)

	p, err = NewProvider(config.EmailConfig{Provider: "smtp", SMTPHost: "localhost", SMTPPort: 587, FromEmail: "no-reply@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "smtp", p.Name())

	_, err = NewProvider(config.EmailConfig{Provider: "sendgrid", FromEmail: "no-reply@x.com"})
	assert.Error(t, err)

	_, err = NewProvider(config.EmailConfig{Provider: "pigeon"})
	assert.Error(t, err)
}

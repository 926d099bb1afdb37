package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const (
	TemplateVerification  = "verification"
	TemplatePasswordReset = "password_reset"
)

const layoutStart = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">`

var builtinTemplates = map[string]string{
	TemplateVerification: layoutStart + `
  <h2 style="color: #3b82f6;">Welcome to {{.AppName}}!</h2>
  <p>Thank you for creating your account. Please verify your email address to get started.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="{{.ActionURL}}" style="background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Verify Email Address</a>
  </p>
  <p style="color: #6b7280; font-size: 14px;">If the button doesn't work, copy and paste this link into your browser:<br><a href="{{.ActionURL}}">{{.ActionURL}}</a></p>
  <p style="color: #6b7280; font-size: 12px;">If you didn't create an account with {{.AppName}}, please ignore this email.</p>
</div>`,
	TemplatePasswordReset: layoutStart + `
  <h2 style="color: #3b82f6;">Password Reset Request</h2>
  <p>We received a request to reset your {{.AppName}} account password.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="{{.ActionURL}}" style="background-color: #3b82f6; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px;">Reset Password</a>
  </p>
  <p style="color: #6b7280; font-size: 14px;">This link will expire in {{.ExpiresIn}}. If the button doesn't work, copy and paste this link:<br><a href="{{.ActionURL}}">{{.ActionURL}}</a></p>
  <p style="color: #6b7280; font-size: 12px;">If you didn't request a password reset, please ignore this email. Your password will remain unchanged.</p>
</div>`,
}

// TemplateManager holds parsed html templates by name.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager returns a manager preloaded with the built-in templates.
func NewTemplateManager() *TemplateManager {
	tm := &TemplateManager{
		templates: make(map[string]*template.Template),
	}
	for name, body := range builtinTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			panic(err)
		}
	}
	return tm
}

func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates adds every *.html file under dirPath, keyed by file name
// without extension. Files override built-ins of the same name.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}

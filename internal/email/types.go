package email

// Message is a single outgoing email.
type Message struct {
	To       []string
	Subject  string
	TextBody string
	HTMLBody string
}

// TemplateData is passed to html templates.
type TemplateData map[string]interface{}

// Sender identity shared by every provider.
type Sender struct {
	Email string
	Name  string
}

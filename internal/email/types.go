package email

// Message is one outbound email.
type Message struct {
	To          string
	Subject     string
	Body        string
	HTMLBody    string
	Attachments []Attachment
}

// Attachment is an in-memory attachment.
type Attachment struct {
	Name        string
	Content     []byte
	ContentType string
}

// Provider sends email. The SMTP implementation lives in sender.go; tests
// and local development substitute a mock.
type Provider interface {
	Send(msg *Message) error
}

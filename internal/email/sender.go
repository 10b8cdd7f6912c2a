package email

import (
	"io"
	"net"
	"net/mail"
	"net/textproto"
	"strings"

	"gatherly_backend/pkg/apperrors"

	gomail "gopkg.in/gomail.v2"
)

// SMTPProvider delivers mail over SMTP via gomail.
type SMTPProvider struct {
	config Config
	dialer *gomail.Dialer
}

// NewSMTPProvider validates the configuration up front so a misconfigured
// deployment fails with a configuration error on first use, not a vague
// transport error.
func NewSMTPProvider(config Config) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, apperrors.ErrMailNotConfigured("set SMTP host, port and from address: " + err.Error())
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}, nil
}

// Send delivers one message. Failures come back as distinct AppError
// categories: malformed address, authentication, connection, send.
func (s *SMTPProvider) Send(msg *Message) error {
	if _, err := mail.ParseAddress(msg.To); err != nil {
		return apperrors.NewBadRequestError("Malformed recipient address: " + msg.To)
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.config.FromEmail, s.config.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}

	for _, att := range msg.Attachments {
		content := att.Content
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if att.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}))
		}
		m.Attach(att.Name, settings...)
	}

	if err := s.dialer.DialAndSend(m); err != nil {
		return ClassifySendError(err)
	}
	return nil
}

// ClassifySendError maps an SMTP failure onto the transport error taxonomy
// so each category carries a user-actionable hint.
func ClassifySendError(err error) error {
	msg := strings.ToLower(err.Error())

	var smtpErr *textproto.Error
	if apperrors.As(err, &smtpErr) {
		switch {
		case smtpErr.Code == 535 || smtpErr.Code == 534 || smtpErr.Code == 530:
			return apperrors.ErrMailTransport(err, "authentication", "check SMTP username and password")
		case smtpErr.Code >= 500:
			return apperrors.ErrMailTransport(err, "send", "the mail server rejected the message")
		}
	}

	var netErr net.Error
	if apperrors.As(err, &netErr) ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "no such host") ||
		strings.Contains(msg, "dial tcp") {
		return apperrors.ErrMailTransport(err, "connection", "check SMTP host, port and network reachability")
	}

	if strings.Contains(msg, "auth") {
		return apperrors.ErrMailTransport(err, "authentication", "check SMTP username and password")
	}

	return apperrors.ErrMailTransport(err, "send", "see server logs for the SMTP exchange")
}

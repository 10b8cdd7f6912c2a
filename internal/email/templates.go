package email

import (
	"bytes"
	"html/template"
)

// Inline templates keep the binary self-contained; there are only two mail
// kinds in the system.

var resetTemplate = template.Must(template.New("reset").Parse(`
<p>Hello {{.Name}},</p>
<p>A password reset was requested for your account. The link below is valid
for one hour and can be used once:</p>
<p><a href="{{.ResetURL}}">Reset your password</a></p>
<p>If you did not request this, you can ignore this message.</p>
`))

var inviteTemplate = template.Must(template.New("invite").Parse(`
<p>Hello {{.GuestName}},</p>
<p>{{.HostName}} has invited you to <strong>{{.EventName}}</strong>
on {{.StartAt}}{{if .Location}} at {{.Location}}{{end}}.</p>
<p>A calendar invitation is attached.</p>
`))

// ResetData feeds the password-reset template.
type ResetData struct {
	Name     string
	ResetURL string
}

// InviteData feeds the guest-invite template.
type InviteData struct {
	GuestName string
	HostName  string
	EventName string
	StartAt   string
	Location  string
}

// RenderPasswordReset renders the reset email HTML body.
func RenderPasswordReset(data ResetData) (string, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderGuestInvite renders the invite email HTML body.
func RenderGuestInvite(data InviteData) (string, error) {
	var buf bytes.Buffer
	if err := inviteTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

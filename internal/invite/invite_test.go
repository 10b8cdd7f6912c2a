package invite

import (
	"testing"
	"time"

	"gatherly_backend/internal/email"
	"gatherly_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures() (*models.Guest, *models.Event, *models.User) {
	guest := &models.Guest{
		Name:  "Alice",
		Email: "alice@example.com",
	}
	guest.ID = "11111111-2222-3333-4444-555555555555"

	event := &models.Event{
		Name:        "Birthday Dinner",
		Description: "Bring a gift",
		Location:    "Rooftop Terrace",
		StartAt:     time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC),
	}
	host := &models.User{
		Name:  "Harriet Host",
		Email: "harriet@example.com",
	}
	return guest, event, host
}

func TestBuildCalendarEvent(t *testing.T) {
	guest, event, host := fixtures()

	ics := BuildCalendarEvent(guest, event, host)

	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "METHOD:REQUEST")
	assert.Contains(t, ics, "UID:11111111-2222-3333-4444-555555555555@gatherly")
	assert.Contains(t, ics, "SUMMARY:Birthday Dinner")
	assert.Contains(t, ics, "LOCATION:Rooftop Terrace")
	assert.Contains(t, ics, "DTSTART:20260912T190000Z")
	assert.Contains(t, ics, "DTEND:20260912T210000Z")
	assert.Contains(t, ics, "mailto:harriet@example.com")
	assert.Contains(t, ics, "alice@example.com")
}

func TestBuildCalendarEvent_OmitsEmptyFields(t *testing.T) {
	guest, event, host := fixtures()
	event.Description = ""
	event.Location = ""

	ics := BuildCalendarEvent(guest, event, host)
	assert.NotContains(t, ics, "DESCRIPTION")
	assert.NotContains(t, ics, "LOCATION")
}

type captureProvider struct {
	last *email.Message
}

func (p *captureProvider) Send(msg *email.Message) error {
	p.last = msg
	return nil
}

func TestDispatch_AttachesCalendar(t *testing.T) {
	guest, event, host := fixtures()

	provider := &captureProvider{}
	d := NewDispatcher(provider)

	require.NoError(t, d.Dispatch(guest, event, host))
	require.NotNil(t, provider.last)

	msg := provider.last
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "Invitation: Birthday Dinner", msg.Subject)
	assert.NotEmpty(t, msg.HTMLBody)

	require.Len(t, msg.Attachments, 1)
	att := msg.Attachments[0]
	assert.Equal(t, "invite.ics", att.Name)
	assert.Contains(t, att.ContentType, "text/calendar")
	assert.Contains(t, string(att.Content), "BEGIN:VEVENT")
}

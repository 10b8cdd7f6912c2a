package invite

import (
	"fmt"
	"time"

	"gatherly_backend/internal/email"
	"gatherly_backend/internal/models"

	ics "github.com/arran4/golang-ical"
)

// DefaultDuration is the event window when no end time is known.
const DefaultDuration = 2 * time.Hour

// Dispatcher builds a calendar artifact for a guest invite and relays it to
// the mail provider. It mutates no state of its own.
type Dispatcher struct {
	provider email.Provider
}

func NewDispatcher(provider email.Provider) *Dispatcher {
	return &Dispatcher{provider: provider}
}

// BuildCalendarEvent renders the iCalendar payload: the event as summary,
// its creator as organizer, the guest as sole attendee, and a window of
// start .. start+2h. The UID is derived from the guest row so re-sending
// the same invite updates rather than duplicates in the recipient's
// calendar.
func BuildCalendarEvent(guest *models.Guest, event *models.Event, host *models.User) string {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)

	ev := cal.AddEvent(fmt.Sprintf("%s@gatherly", guest.ID))
	ev.SetDtStampTime(time.Now().UTC())
	ev.SetStartAt(event.StartAt)
	ev.SetEndAt(event.StartAt.Add(DefaultDuration))
	ev.SetSummary(event.Name)
	if event.Description != "" {
		ev.SetDescription(event.Description)
	}
	if event.Location != "" {
		ev.SetLocation(event.Location)
	}
	ev.SetOrganizer("mailto:"+host.Email, ics.WithCN(host.Name))
	ev.AddAttendee(guest.Email, ics.ParticipationStatusNeedsAction)

	return cal.Serialize()
}

// Dispatch sends the invite mail with the calendar attached. Errors come
// back in the transport taxonomy from the email package.
func (d *Dispatcher) Dispatch(guest *models.Guest, event *models.Event, host *models.User) error {
	html, err := email.RenderGuestInvite(email.InviteData{
		GuestName: guest.Name,
		HostName:  host.Name,
		EventName: event.Name,
		StartAt:   event.StartAt.Format("Mon, 2 Jan 2006 15:04 MST"),
		Location:  event.Location,
	})
	if err != nil {
		return err
	}

	msg := &email.Message{
		To:       guest.Email,
		Subject:  fmt.Sprintf("Invitation: %s", event.Name),
		Body:     fmt.Sprintf("%s invited you to %s.", host.Name, event.Name),
		HTMLBody: html,
		Attachments: []email.Attachment{
			{
				Name:        "invite.ics",
				Content:     []byte(BuildCalendarEvent(guest, event, host)),
				ContentType: "text/calendar; method=REQUEST; charset=UTF-8",
			},
		},
	}

	return d.provider.Send(msg)
}

package services

import (
	"errors"
	"testing"
	"time"

	"gatherly_backend/internal/invite"
	"gatherly_backend/internal/models"
	"gatherly_backend/internal/repositories"
	"gatherly_backend/internal/services/dto"
	"gatherly_backend/internal/testutil"
	"gatherly_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type guestFixture struct {
	db    *gorm.DB
	svc   GuestService
	mail  *testutil.RecordingMailProvider
	host  *models.User
	event *models.Event
}

func newGuestFixture(t *testing.T) *guestFixture {
	db := testutil.NewTestDB(t)
	mail := &testutil.RecordingMailProvider{}

	host := testutil.CreateUser(t, db, "Host", "host@test.com", models.UserRoleHost, "password123")
	event := testutil.CreateEvent(t, db, &models.Event{
		Name:      "Birthday Dinner",
		Location:  "Rooftop Terrace",
		StartAt:   time.Now().Add(72 * time.Hour),
		IsPrivate: true,
		CreatorID: host.ID,
	})

	svc := NewGuestService(
		repositories.NewGuestRepository(),
		repositories.NewEventRepository(),
		repositories.NewUserRepository(),
		invite.NewDispatcher(mail),
	)

	return &guestFixture{db: db, svc: svc, mail: mail, host: host, event: event}
}

func TestAddGuest_SendsInviteWithCalendar(t *testing.T) {
	f := newGuestFixture(t)

	resp, err := f.svc.AddGuest(f.db, f.host.ID, f.event.ID, &dto.AddGuestRequest{
		Name:  "Alice",
		Email: "Alice@Example.COM ",
	})
	require.NoError(t, err)
	assert.True(t, resp.InviteSent)
	assert.Equal(t, "alice@example.com", resp.Guest.Email)

	require.Len(t, f.mail.Messages, 1)
	msg := f.mail.Messages[0]
	assert.Equal(t, "alice@example.com", msg.To)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "invite.ics", msg.Attachments[0].Name)
	assert.Contains(t, string(msg.Attachments[0].Content), "BEGIN:VCALENDAR")
}

func TestAddGuest_DuplicateEmail(t *testing.T) {
	f := newGuestFixture(t)

	_, err := f.svc.AddGuest(f.db, f.host.ID, f.event.ID, &dto.AddGuestRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	// Same email with different case is still a duplicate.
	_, err = f.svc.AddGuest(f.db, f.host.ID, f.event.ID, &dto.AddGuestRequest{Name: "Alice Again", Email: "ALICE@example.com"})
	require.Error(t, err)
	assert.Same(t, apperrors.ErrDuplicateGuest, err)
}

func TestAddGuest_MailFailureKeepsGuest(t *testing.T) {
	f := newGuestFixture(t)
	f.mail.Err = errors.New("smtp dial refused")

	resp, err := f.svc.AddGuest(f.db, f.host.ID, f.event.ID, &dto.AddGuestRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.False(t, resp.InviteSent)

	var count int64
	require.NoError(t, f.db.Model(&models.Guest{}).Where("event_id = ?", f.event.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddGuest_PublicEventRefused(t *testing.T) {
	f := newGuestFixture(t)
	public := testutil.CreateEvent(t, f.db, &models.Event{
		Name:      "Open Mic",
		StartAt:   time.Now().Add(time.Hour),
		CreatorID: f.host.ID,
	})

	_, err := f.svc.AddGuest(f.db, f.host.ID, public.ID, &dto.AddGuestRequest{Name: "Alice", Email: "alice@example.com"})
	require.Error(t, err)
	assert.Same(t, apperrors.ErrEventNotPrivate, err)
}

func TestAddGuest_OnlyCreator(t *testing.T) {
	f := newGuestFixture(t)
	other := testutil.CreateUser(t, f.db, "Other Host", "other@test.com", models.UserRoleHost, "password123")

	_, err := f.svc.AddGuest(f.db, other.ID, f.event.ID, &dto.AddGuestRequest{Name: "Alice", Email: "alice@example.com"})
	require.Error(t, err)
	assert.Same(t, apperrors.ErrNotEventCreator, err)
}

func TestRemoveGuest_OwnerOnly(t *testing.T) {
	f := newGuestFixture(t)

	resp, err := f.svc.AddGuest(f.db, f.host.ID, f.event.ID, &dto.AddGuestRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	// Ownership is checked against the event the guest belongs to.
	other := testutil.CreateUser(t, f.db, "Other Host", "other-host@test.com", models.UserRoleHost, "password123")
	err = f.svc.RemoveGuest(f.db, other.ID, resp.Guest.ID)
	require.Error(t, err)
	assert.Same(t, apperrors.ErrNotEventCreator, err)

	require.NoError(t, f.svc.RemoveGuest(f.db, f.host.ID, resp.Guest.ID))

	guests, err := f.svc.ListGuests(f.db, f.host.ID, f.event.ID)
	require.NoError(t, err)
	assert.Empty(t, guests)
}

func TestRemoveGuest_UnknownGuest(t *testing.T) {
	f := newGuestFixture(t)

	err := f.svc.RemoveGuest(f.db, f.host.ID, "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestListGuests(t *testing.T) {
	f := newGuestFixture(t)

	_, err := f.svc.AddGuest(f.db, f.host.ID, f.event.ID, &dto.AddGuestRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	_, err = f.svc.AddGuest(f.db, f.host.ID, f.event.ID, &dto.AddGuestRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	guests, err := f.svc.ListGuests(f.db, f.host.ID, f.event.ID)
	require.NoError(t, err)
	assert.Len(t, guests, 2)
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusPending, BookingStatusConfirmed, true},
		{BookingStatusPending, BookingStatusCancelled, true},
		{BookingStatusPending, BookingStatusCompleted, false},
		{BookingStatusPending, BookingStatusPending, false},
		{BookingStatusConfirmed, BookingStatusCompleted, true},
		{BookingStatusConfirmed, BookingStatusCancelled, true},
		{BookingStatusConfirmed, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusPending, false},
		{BookingStatusCancelled, BookingStatusConfirmed, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusCompleted, BookingStatusConfirmed, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	assert.Empty(t, AllowedTransitions(BookingStatusCancelled))
	assert.Empty(t, AllowedTransitions(BookingStatusCompleted))
}

func TestAllowedTransitionsFromPending(t *testing.T) {
	assert.ElementsMatch(t, []string{"confirmed", "cancelled"}, AllowedTransitions(BookingStatusPending))
	assert.ElementsMatch(t, []string{"completed", "cancelled"}, AllowedTransitions(BookingStatusConfirmed))
}

func TestActiveStatusesExcludeTerminal(t *testing.T) {
	assert.ElementsMatch(t,
		[]BookingStatus{BookingStatusPending, BookingStatusConfirmed},
		ActiveBookingStatuses,
	)
}

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(UserRoleGuest))
	assert.True(t, ValidRole(UserRoleHost))
	assert.True(t, ValidRole(UserRoleProvider))
	assert.False(t, ValidRole("admin"))
	assert.False(t, ValidRole(""))
}

func TestValidBookingStatus(t *testing.T) {
	assert.True(t, ValidBookingStatus(BookingStatusPending))
	assert.False(t, ValidBookingStatus("archived"))
	assert.False(t, ValidBookingStatus(""))
}

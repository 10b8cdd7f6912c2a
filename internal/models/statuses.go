package models

type UserRole string
type BookingStatus string

const (
	UserRoleGuest    UserRole = "guest"
	UserRoleHost     UserRole = "host"
	UserRoleProvider UserRole = "provider"

	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ValidRole reports whether the role is one of the three known roles.
func ValidRole(r UserRole) bool {
	switch r {
	case UserRoleGuest, UserRoleHost, UserRoleProvider:
		return true
	}
	return false
}

// ValidBookingStatus reports whether s is one of the four known statuses.
// Unknown values in list filters are ignored rather than rejected.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// BookingTransitions is the single source of truth for the booking
// lifecycle. Cancelled and completed are terminal: no outgoing edges.
var BookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled: {},
	BookingStatusCompleted: {},
}

// ActiveBookingStatuses are the non-terminal states; at most one booking in
// one of these states may exist per (event, provider) pair.
var ActiveBookingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range BookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal next states as strings, for error
// payloads and responses.
func AllowedTransitions(from BookingStatus) []string {
	next := BookingTransitions[from]
	out := make([]string, 0, len(next))
	for _, s := range next {
		out = append(out, string(s))
	}
	return out
}

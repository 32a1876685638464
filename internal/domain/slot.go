package domain

import "github.com/astraconsult/ACG-BookingService/pkg/types"

// Slot represents a bookable time range sized to a service's duration
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}

// Matches returns true if the slot covers exactly the given [start, end) range
func (s *Slot) Matches(start, end types.TimeString) bool {
	return s.StartTime.Equal(start) && s.EndTime.Equal(end)
}

package domain

import "time"

// Experience is a bookable activity. Price is in whole currency units.
type Experience struct {
	ID          string
	Name        string
	Description string
	Price       int64
	ImageURL    string
	CreatedAt   time.Time
	// Slots is only populated when the experience is read by id.
	Slots []Slot
}

// Slot is a dated time instance of an Experience with finite capacity.
type Slot struct {
	ID            string
	ExperienceID  string
	Date          time.Time
	Time          string
	TotalTickets  int
	BookedTickets int
}

// Available reports the number of unbooked tickets.
func (s Slot) Available() int {
	if s.BookedTickets >= s.TotalTickets {
		return 0
	}
	return s.TotalTickets - s.BookedTickets
}

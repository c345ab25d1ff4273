package models

import (
	"time"
)

type EventCategory string

const (
	CategoryTechnology EventCategory = "Technology"
	CategoryCultural   EventCategory = "Cultural"
	CategoryCareer     EventCategory = "Career"
	CategorySports     EventCategory = "Sports"
	CategoryAcademic   EventCategory = "Academic"
	CategoryWorkshop   EventCategory = "Workshop"
	CategorySeminar    EventCategory = "Seminar"
	CategoryOther      EventCategory = "Other"
)

type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusUpcoming  EventStatus = "upcoming"
	StatusLive      EventStatus = "live"
	StatusCompleted EventStatus = "completed"
	StatusCancelled EventStatus = "cancelled"
)

// Layouts of Event.Date and Event.Time / Event.EndTime.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Event struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	Date               string        `json:"date"`
	Time               string        `json:"time"`
	EndTime            string        `json:"endTime,omitempty"`
	Location           string        `json:"location"`
	Venue              string        `json:"venue,omitempty"`
	Category           EventCategory `json:"category"`
	Capacity           int           `json:"capacity"`
	Attendees          int           `json:"attendees"`
	OrganizerID        string        `json:"organizerId"`
	OrganizerName      string        `json:"organizerName"`
	Status             EventStatus   `json:"status"`
	IsRegistrationOpen bool          `json:"isRegistrationOpen"`
	RegistrationLink   string        `json:"registrationLink,omitempty"`
	EventQRCode        string        `json:"eventQRCode,omitempty"`
	CheckedInCount     int           `json:"checkedInCount"`
	CreatedAt          time.Time     `json:"createdAt"`
	UpdatedAt          time.Time     `json:"updatedAt"`
}

// StartsAt returns the event start in loc. ok is false when Date or Time
// cannot be parsed.
func (e Event) StartsAt(loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// EndsAt returns the event end in loc: EndTime on the event day when set,
// otherwise the end of the event day.
func (e Event) EndsAt(loc *time.Location) (time.Time, bool) {
	day, err := time.ParseInLocation(DateLayout, e.Date, loc)
	if err != nil {
		return time.Time{}, false
	}
	if e.EndTime == "" {
		return day.AddDate(0, 0, 1), true
	}
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, e.Date+" "+e.EndTime, loc)
	if err != nil {
		return day.AddDate(0, 0, 1), true
	}
	return t, true
}

func (e Event) SeatsLeft() int {
	if e.Attendees >= e.Capacity {
		return 0
	}
	return e.Capacity - e.Attendees
}

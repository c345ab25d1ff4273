package events

import (
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var ErrInvalid = errors.New("invalid event")

var validate = validator.New()

type CreateEventInput struct {
	Title       string               `json:"title" validate:"required,max=200" doc:"Event title"`
	Description string               `json:"description" validate:"max=5000" doc:"Event description"`
	Date        string               `json:"date" validate:"required,datetime=2006-01-02" doc:"Event date (YYYY-MM-DD)"`
	Time        string               `json:"time" validate:"required,datetime=15:04" doc:"Start time (HH:MM, 24h)"`
	EndTime     string               `json:"endTime,omitempty" validate:"omitempty,datetime=15:04" doc:"Optional end time (HH:MM, 24h)"`
	Location    string               `json:"location" validate:"required,max=200" doc:"Where the event takes place"`
	Venue       string               `json:"venue,omitempty" validate:"max=200"`
	Category    models.EventCategory `json:"category" validate:"required,oneof=Technology Cultural Career Sports Academic Workshop Seminar Other" doc:"Event category"`
	Capacity    int                  `json:"capacity" validate:"required,min=1" doc:"Maximum number of registrations"`
}

func (in CreateEventInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if in.EndTime != "" && in.EndTime <= in.Time {
		return errors.Wrap(ErrInvalid, "end time must be after start time")
	}
	return nil
}

// EventPatch lists the event fields an organizer may change. Nil fields are
// left untouched.
type EventPatch struct {
	Title       *string               `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string               `json:"description,omitempty" validate:"omitempty,max=5000"`
	Date        *string               `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Time        *string               `json:"time,omitempty" validate:"omitempty,datetime=15:04"`
	EndTime     *string               `json:"endTime,omitempty" validate:"omitempty,datetime=15:04"`
	Location    *string               `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	Venue       *string               `json:"venue,omitempty" validate:"omitempty,max=200"`
	Category    *models.EventCategory `json:"category,omitempty" validate:"omitempty,oneof=Technology Cultural Career Sports Academic Workshop Seminar Other"`
	Capacity    *int                  `json:"capacity,omitempty" validate:"omitempty,min=1"`
	Status      *models.EventStatus   `json:"status,omitempty" validate:"omitempty,oneof=draft upcoming live completed cancelled"`
}

func (p EventPatch) Validate() error {
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	return nil
}

// apply merges the patch into e and checks the invariants of the result.
func (p EventPatch) apply(e *models.Event) error {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Capacity != nil {
		e.Capacity = *p.Capacity
	}
	if p.Status != nil {
		e.Status = *p.Status
	}

	if e.Capacity < e.Attendees {
		return errors.Wrapf(ErrInvalid, "capacity %d is below the %d registered attendees", e.Capacity, e.Attendees)
	}
	if e.EndTime != "" && e.EndTime <= e.Time {
		return errors.Wrap(ErrInvalid, "end time must be after start time")
	}
	return nil
}

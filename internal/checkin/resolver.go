// Package checkin turns scanned or typed check-in tokens into attendance.
package checkin

import (
	"context"
	"fmt"
	"time"

	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/registrations"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/gdg-garage/eventflow-api/internal/token"
	"github.com/rs/zerolog/log"
)

const displayTimeLayout = "Jan 2, 2006 3:04 PM"

// Result is what the scanner shows. A failed check-in is a Result with
// Success false, not an error.
type Result struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Registration *models.Registration `json:"registration,omitempty"`
	Event        *models.Event        `json:"event,omitempty"`
}

type Resolver struct {
	store *store.Store
	loc   *time.Location
	now   func() time.Time
}

// NewResolver builds a resolver; loc is used to print check-in times.
func NewResolver(s *store.Store, loc *time.Location) *Resolver {
	if loc == nil {
		loc = time.Local
	}
	return &Resolver{store: s, loc: loc, now: time.Now}
}

// CheckInByID marks the registration as checked in. A registration that is
// already checked in keeps its original check-in time.
func (r *Resolver) CheckInByID(ctx context.Context, registrationID string) (*models.Registration, error) {
	var result models.Registration
	err := r.store.Update(func(kv store.KV) error {
		regs, err := store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		if err != nil {
			return err
		}
		i := indexOf(regs, registrationID)
		if i < 0 {
			return registrations.ErrNotFound
		}
		result, err = r.markCheckedIn(ctx, kv, regs, i)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckInByToken resolves a QR token to a registration of the event it
// names and checks the attendee in.
func (r *Resolver) CheckInByToken(ctx context.Context, raw string) (Result, error) {
	payload, ok := token.Decode(raw)
	if !ok {
		return Result{Message: "Invalid QR code format"}, nil
	}

	var res Result
	err := r.store.Update(func(kv store.KV) error {
		evts, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
		if err != nil {
			return err
		}
		var event *models.Event
		for i := range evts {
			if evts[i].ID == payload.EventID {
				event = &evts[i]
				break
			}
		}
		if event == nil {
			res = Result{Message: "Event not found"}
			return nil
		}
		if payload.RegistrationID == "" {
			res = Result{Message: "Could not process check-in: this QR code does not identify a registration", Event: event}
			return nil
		}

		regs, err := store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		if err != nil {
			return err
		}
		i := indexOf(regs, payload.RegistrationID)
		if i < 0 {
			res = Result{Message: "Registration not found", Event: event}
			return nil
		}
		if regs[i].EventID != payload.EventID {
			res = Result{Message: "Registration does not match event", Event: event}
			return nil
		}
		if regs[i].CheckedIn {
			existing := regs[i]
			res = Result{
				Message:      fmt.Sprintf("%s already checked in at %s", existing.UserName, r.formatTime(existing.CheckedInAt)),
				Registration: &existing,
				Event:        event,
			}
			return nil
		}

		checked, err := r.markCheckedIn(ctx, kv, regs, i)
		if err != nil {
			return err
		}
		refreshed := *event
		refreshed.CheckedInCount = countCheckedIn(regs, event.ID)
		res = Result{
			Success:      true,
			Message:      fmt.Sprintf("%s checked in successfully", checked.UserName),
			Registration: &checked,
			Event:        &refreshed,
		}
		return nil
	})
	if err != nil {
		return Result{}, err
	}

	if res.Success {
		log.Info().Str("event_id", payload.EventID).Str("registration_id", payload.RegistrationID).Msg("Attendee checked in")
	} else {
		log.Debug().Str("event_id", payload.EventID).Str("reason", res.Message).Msg("Check-in rejected")
	}
	return res, nil
}

// markCheckedIn flips regs[i] to checked in, persists the registrations and
// recounts the owning event's checked-in total. Runs inside Store.Update.
func (r *Resolver) markCheckedIn(ctx context.Context, kv store.KV, regs []models.Registration, i int) (models.Registration, error) {
	if regs[i].CheckedIn {
		return regs[i], nil
	}

	now := r.now()
	regs[i].CheckedIn = true
	regs[i].CheckedInAt = &now
	if err := store.SaveList(ctx, kv, store.RegistrationsKey, regs); err != nil {
		return models.Registration{}, err
	}

	evts, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
	if err != nil {
		return models.Registration{}, err
	}
	eventID := regs[i].EventID
	for j := range evts {
		if evts[j].ID != eventID {
			continue
		}
		evts[j].CheckedInCount = countCheckedIn(regs, eventID)
		evts[j].UpdatedAt = now
		if err := store.SaveList(ctx, kv, store.EventsKey, evts); err != nil {
			return models.Registration{}, err
		}
		break
	}
	return regs[i], nil
}

func (r *Resolver) formatTime(t *time.Time) string {
	if t == nil {
		return "an earlier time"
	}
	return t.In(r.loc).Format(displayTimeLayout)
}

func countCheckedIn(regs []models.Registration, eventID string) int {
	n := 0
	for _, reg := range regs {
		if reg.EventID == eventID && reg.CheckedIn {
			n++
		}
	}
	return n
}

func indexOf(regs []models.Registration, id string) int {
	for i := range regs {
		if regs[i].ID == id {
			return i
		}
	}
	return -1
}

// Package registrations records students' seats on events and the
// organizer's door-side manual check-ins.
package registrations

import (
	"context"
	"strings"
	"time"

	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/gdg-garage/eventflow-api/internal/token"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var (
	ErrNotFound           = errors.New("registration not found")
	ErrRegistrationClosed = errors.New("registration is closed for this event")
	ErrEventFull          = errors.New("event is full")
	ErrInvalid            = errors.New("invalid registration")
)

var validate = validator.New()

type RegistrationInput struct {
	Name      string `json:"name" validate:"required,max=200" doc:"Attendee name"`
	Email     string `json:"email" validate:"required,email" doc:"Attendee email"`
	Phone     string `json:"phone,omitempty" validate:"max=32"`
	StudentID string `json:"studentId,omitempty" validate:"max=64"`
	// UserID links the registration to a signed-in account. Guests get a
	// generated id.
	UserID string `json:"-"`
}

type Stats struct {
	Capacity   int `json:"capacity"`
	Registered int `json:"registered"`
	CheckedIn  int `json:"checkedIn"`
	SeatsLeft  int `json:"seatsLeft"`
}

type Ledger struct {
	store *store.Store
	now   func() time.Time
}

func NewLedger(s *store.Store) *Ledger {
	return &Ledger{store: s, now: time.Now}
}

// Register claims a seat on the event. Submitting the same email twice
// returns the first registration unchanged with created false.
func (l *Ledger) Register(ctx context.Context, eventID string, in RegistrationInput) (*models.Registration, bool, error) {
	if err := validate.Struct(in); err != nil {
		return nil, false, errors.Wrap(ErrInvalid, err.Error())
	}

	var result models.Registration
	created := false
	err := l.store.Update(func(kv store.KV) error {
		evts, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
		if err != nil {
			return err
		}
		ei := eventIndex(evts, eventID)
		if ei < 0 {
			return events.ErrNotFound
		}
		event := &evts[ei]
		if !event.IsRegistrationOpen {
			return ErrRegistrationClosed
		}

		regs, err := store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		if err != nil {
			return err
		}
		if existing := findByEmail(regs, eventID, in.Email); existing != nil {
			result = *existing
			return nil
		}
		if event.Attendees >= event.Capacity {
			return ErrEventFull
		}

		now := l.now()
		id := token.GenerateID()
		userID := in.UserID
		if userID == "" {
			userID = "guest-" + id
		}
		result = models.Registration{
			ID:           id,
			EventID:      eventID,
			UserID:       userID,
			UserName:     strings.TrimSpace(in.Name),
			UserEmail:    strings.TrimSpace(in.Email),
			UserPhone:    in.Phone,
			StudentID:    in.StudentID,
			RegisteredAt: now,
			CheckedIn:    false,
			QRCode:       token.Encode(eventID, id),
		}
		if err := store.SaveList(ctx, kv, store.RegistrationsKey, append(regs, result)); err != nil {
			return err
		}

		event.Attendees++
		event.UpdatedAt = now
		created = true
		return store.SaveList(ctx, kv, store.EventsKey, evts)
	})
	if err != nil {
		return nil, false, err
	}

	if created {
		log.Info().Str("event_id", eventID).Str("registration_id", result.ID).Msg("Registration created")
	}
	return &result, created, nil
}

// ManualCheckInInput describes a walk-in. Force admits the attendee to a
// full event by adding a seat.
type ManualCheckInInput struct {
	Name  string `json:"name" validate:"required,max=200" minLength:"1" doc:"Attendee name"`
	Email string `json:"email" validate:"required,email" format:"email" doc:"Attendee email"`
	Force bool   `json:"force,omitempty" doc:"Add a seat when the event is full"`
}

// ManualCheckIn records a walk-in attendee as registered and checked in at
// once. It does not look for an earlier registration with the same email.
func (l *Ledger) ManualCheckIn(ctx context.Context, eventID string, in ManualCheckInInput) (*models.Registration, error) {
	if err := validate.Struct(in); err != nil {
		return nil, errors.Wrap(ErrInvalid, err.Error())
	}

	var result models.Registration
	forced := false
	err := l.store.Update(func(kv store.KV) error {
		evts, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
		if err != nil {
			return err
		}
		ei := eventIndex(evts, eventID)
		if ei < 0 {
			return events.ErrNotFound
		}
		event := &evts[ei]
		if event.Attendees >= event.Capacity {
			if !in.Force {
				return ErrEventFull
			}
			event.Capacity = event.Attendees + 1
			forced = true
		}

		regs, err := store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		if err != nil {
			return err
		}

		now := l.now()
		id := token.GenerateID()
		result = models.Registration{
			ID:           id,
			EventID:      eventID,
			UserID:       "manual-" + id,
			UserName:     strings.TrimSpace(in.Name),
			UserEmail:    strings.TrimSpace(in.Email),
			RegisteredAt: now,
			CheckedIn:    true,
			CheckedInAt:  &now,
			QRCode:       token.Encode(eventID, id),
		}
		if err := store.SaveList(ctx, kv, store.RegistrationsKey, append(regs, result)); err != nil {
			return err
		}

		event.Attendees++
		event.CheckedInCount++
		event.UpdatedAt = now
		return store.SaveList(ctx, kv, store.EventsKey, evts)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("event_id", eventID).Str("registration_id", result.ID).Bool("forced", forced).Msg("Manual check-in recorded")
	return &result, nil
}

func (l *Ledger) all(ctx context.Context) ([]models.Registration, error) {
	var regs []models.Registration
	err := l.store.View(func(kv store.KV) error {
		var err error
		regs, err = store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		return err
	})
	return regs, err
}

func (l *Ledger) GetForEvent(ctx context.Context, eventID string) ([]models.Registration, error) {
	regs, err := l.all(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Registration{}
	for _, r := range regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (l *Ledger) GetByID(ctx context.Context, id string) (*models.Registration, error) {
	regs, err := l.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range regs {
		if regs[i].ID == id {
			return &regs[i], nil
		}
	}
	return nil, ErrNotFound
}

func (l *Ledger) FindByEmail(ctx context.Context, eventID, email string) (*models.Registration, error) {
	regs, err := l.all(ctx)
	if err != nil {
		return nil, err
	}
	if r := findByEmail(regs, eventID, email); r != nil {
		return r, nil
	}
	return nil, ErrNotFound
}

func (l *Ledger) FindByStudentID(ctx context.Context, eventID, studentID string) (*models.Registration, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, ErrNotFound
	}
	regs, err := l.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range regs {
		if regs[i].EventID == eventID && regs[i].StudentID == studentID {
			return &regs[i], nil
		}
	}
	return nil, ErrNotFound
}

// GetForUser walks the events in storage order and collects the
// registration made with email on each of them.
func (l *Ledger) GetForUser(ctx context.Context, email string) ([]models.UserRegistration, error) {
	var evts []models.Event
	var regs []models.Registration
	err := l.store.View(func(kv store.KV) error {
		var err error
		if evts, err = store.LoadList[models.Event](ctx, kv, store.EventsKey); err != nil {
			return err
		}
		regs, err = store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := []models.UserRegistration{}
	for i := range evts {
		r := findByEmail(regs, evts[i].ID, email)
		if r == nil {
			continue
		}
		event := evts[i]
		out = append(out, models.UserRegistration{Registration: *r, Event: &event})
	}
	return out, nil
}

func (l *Ledger) Stats(ctx context.Context, eventID string) (*Stats, error) {
	var evts []models.Event
	var regs []models.Registration
	err := l.store.View(func(kv store.KV) error {
		var err error
		if evts, err = store.LoadList[models.Event](ctx, kv, store.EventsKey); err != nil {
			return err
		}
		regs, err = store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		return err
	})
	if err != nil {
		return nil, err
	}

	ei := eventIndex(evts, eventID)
	if ei < 0 {
		return nil, events.ErrNotFound
	}
	stats := &Stats{Capacity: evts[ei].Capacity}
	for _, r := range regs {
		if r.EventID != eventID {
			continue
		}
		stats.Registered++
		if r.CheckedIn {
			stats.CheckedIn++
		}
	}
	stats.SeatsLeft = evts[ei].SeatsLeft()
	return stats, nil
}

func findByEmail(regs []models.Registration, eventID, email string) *models.Registration {
	email = strings.TrimSpace(email)
	for i := range regs {
		if regs[i].EventID == eventID && strings.EqualFold(regs[i].UserEmail, email) {
			return &regs[i]
		}
	}
	return nil
}

func eventIndex(evts []models.Event, id string) int {
	for i := range evts {
		if evts[i].ID == id {
			return i
		}
	}
	return -1
}

// Package events owns the event records: creation by organizers, lookups,
// patches and the periodic status refresh.
package events

import (
	"context"
	"sort"
	"time"

	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/gdg-garage/eventflow-api/internal/token"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("event not found")

type Catalog struct {
	store   *store.Store
	baseURL string
	loc     *time.Location
	now     func() time.Time
}

// NewCatalog builds a catalog. baseURL is the public frontend address used
// for registration links; loc is the timezone event dates are written in.
func NewCatalog(s *store.Store, baseURL string, loc *time.Location) *Catalog {
	if loc == nil {
		loc = time.Local
	}
	return &Catalog{store: s, baseURL: baseURL, loc: loc, now: time.Now}
}

func (c *Catalog) Create(ctx context.Context, in CreateEventInput, organizer models.User) (*models.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := c.now()
	id := token.GenerateID()
	event := models.Event{
		ID:                 id,
		Title:              in.Title,
		Description:        in.Description,
		Date:               in.Date,
		Time:               in.Time,
		EndTime:            in.EndTime,
		Location:           in.Location,
		Venue:              in.Venue,
		Category:           in.Category,
		Capacity:           in.Capacity,
		Attendees:          0,
		OrganizerID:        organizer.ID,
		OrganizerName:      organizer.Name,
		Status:             models.StatusUpcoming,
		IsRegistrationOpen: true,
		RegistrationLink:   token.RegistrationLink(c.baseURL, id),
		EventQRCode:        token.Encode(id, ""),
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err := c.store.Update(func(kv store.KV) error {
		events, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
		if err != nil {
			return err
		}
		return store.SaveList(ctx, kv, store.EventsKey, append(events, event))
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("event_id", event.ID).Str("organizer_id", organizer.ID).Msg("Event created")
	return &event, nil
}

// GetAll returns events in storage order.
func (c *Catalog) GetAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := c.store.View(func(kv store.KV) error {
		var err error
		events, err = store.LoadList[models.Event](ctx, kv, store.EventsKey)
		return err
	})
	return events, err
}

func (c *Catalog) GetByID(ctx context.Context, id string) (*models.Event, error) {
	events, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(events, id); i >= 0 {
		return &events[i], nil
	}
	return nil, ErrNotFound
}

func (c *Catalog) GetByOrganizer(ctx context.Context, organizerID string) ([]models.Event, error) {
	events, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Event{}
	for _, e := range events {
		if e.OrganizerID == organizerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (c *Catalog) Update(ctx context.Context, id string, patch EventPatch) (*models.Event, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return c.mutate(ctx, id, func(e *models.Event) error {
		return patch.apply(e)
	})
}

func (c *Catalog) ToggleRegistrationOpen(ctx context.Context, id string) (*models.Event, error) {
	return c.mutate(ctx, id, func(e *models.Event) error {
		e.IsRegistrationOpen = !e.IsRegistrationOpen
		return nil
	})
}

func (c *Catalog) mutate(ctx context.Context, id string, fn func(e *models.Event) error) (*models.Event, error) {
	var updated models.Event
	err := c.store.Update(func(kv store.KV) error {
		events, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
		if err != nil {
			return err
		}
		i := indexOf(events, id)
		if i < 0 {
			return ErrNotFound
		}
		e := events[i]
		if err := fn(&e); err != nil {
			return err
		}
		e.UpdatedAt = c.now()
		events[i] = e
		updated = e
		return store.SaveList(ctx, kv, store.EventsKey, events)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the event together with its registrations. It reports
// whether an event was removed.
func (c *Catalog) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := c.store.Update(func(kv store.KV) error {
		events, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
		if err != nil {
			return err
		}
		i := indexOf(events, id)
		if i < 0 {
			return nil
		}

		regs, err := store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		if err != nil {
			return err
		}
		kept := regs[:0]
		for _, r := range regs {
			if r.EventID != id {
				kept = append(kept, r)
			}
		}
		dropped := len(regs) - len(kept)
		if dropped > 0 {
			if err := store.SaveList(ctx, kv, store.RegistrationsKey, kept); err != nil {
				return err
			}
		}

		events = append(events[:i], events[i+1:]...)
		if err := store.SaveList(ctx, kv, store.EventsKey, events); err != nil {
			return err
		}
		removed = true
		log.Info().Str("event_id", id).Int("registrations", dropped).Msg("Event deleted")
		return nil
	})
	return removed, err
}

// RefreshStatuses moves upcoming events to live once they start and live or
// upcoming events to completed once they end. It returns the number of
// events changed.
func (c *Catalog) RefreshStatuses(ctx context.Context, now time.Time) (int, error) {
	changed := 0
	err := c.store.Update(func(kv store.KV) error {
		events, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
		if err != nil {
			return err
		}
		for i := range events {
			next, ok := nextStatus(events[i], now, c.loc)
			if !ok {
				continue
			}
			events[i].Status = next
			events[i].UpdatedAt = now
			changed++
		}
		if changed == 0 {
			return nil
		}
		return store.SaveList(ctx, kv, store.EventsKey, events)
	})
	return changed, err
}

func nextStatus(e models.Event, now time.Time, loc *time.Location) (models.EventStatus, bool) {
	if e.Status != models.StatusUpcoming && e.Status != models.StatusLive {
		return "", false
	}
	start, ok := e.StartsAt(loc)
	if !ok {
		return "", false
	}
	end, _ := e.EndsAt(loc)

	var next models.EventStatus
	switch {
	case !now.Before(end):
		next = models.StatusCompleted
	case !now.Before(start):
		next = models.StatusLive
	default:
		next = models.StatusUpcoming
	}
	return next, next != e.Status
}

// SortByDate orders events by date and start time, earliest first.
func SortByDate(events []models.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Date != events[j].Date {
			return events[i].Date < events[j].Date
		}
		return events[i].Time < events[j].Time
	})
}

func indexOf(events []models.Event, id string) int {
	for i := range events {
		if events[i].ID == id {
			return i
		}
	}
	return -1
}

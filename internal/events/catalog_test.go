package events

import (
	"context"
	"testing"
	"time"

	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/gdg-garage/eventflow-api/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var organizer = models.User{ID: "org-1", Name: "Dr. Sharma", Role: models.RoleOrganizer}

func newCatalog(t *testing.T) (*Catalog, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemoryKV())
	return NewCatalog(s, "http://frontend.test", time.UTC), s
}

func validInput() CreateEventInput {
	return CreateEventInput{
		Title:       "Tech Innovation Summit",
		Description: "Annual tech summit",
		Date:        "2026-02-15",
		Time:        "10:00",
		EndTime:     "16:00",
		Location:    "Main Auditorium",
		Category:    models.CategoryTechnology,
		Capacity:    300,
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)

	e, err := c.Create(ctx, validInput(), organizer)
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, 0, e.Attendees)
	assert.Equal(t, models.StatusUpcoming, e.Status)
	assert.True(t, e.IsRegistrationOpen)
	assert.Equal(t, "org-1", e.OrganizerID)
	assert.Equal(t, "Dr. Sharma", e.OrganizerName)
	assert.Equal(t, "http://frontend.test/event/"+e.ID+"/register", e.RegistrationLink)
	assert.False(t, e.CreatedAt.IsZero())

	p, ok := token.Decode(e.EventQRCode)
	require.True(t, ok)
	assert.Equal(t, e.ID, p.EventID)
	assert.Empty(t, p.RegistrationID)

	got, err := c.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e.Title, got.Title)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)

	cases := map[string]func(in *CreateEventInput){
		"missing title":   func(in *CreateEventInput) { in.Title = "" },
		"zero capacity":   func(in *CreateEventInput) { in.Capacity = 0 },
		"bad category":    func(in *CreateEventInput) { in.Category = "Party" },
		"bad date":        func(in *CreateEventInput) { in.Date = "Feb 15, 2026" },
		"12h time":        func(in *CreateEventInput) { in.Time = "10:00 AM" },
		"end before time": func(in *CreateEventInput) { in.EndTime = "09:00" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := c.Create(ctx, in, organizer)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}

	all, err := c.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetByOrganizerAndSort(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)

	late := validInput()
	late.Date = "2026-03-10"
	early := validInput()
	early.Date = "2026-02-01"
	sameDayLater := validInput()
	sameDayLater.Date = "2026-02-01"
	sameDayLater.Time = "18:00"
	sameDayLater.EndTime = ""

	_, err := c.Create(ctx, late, organizer)
	require.NoError(t, err)
	_, err = c.Create(ctx, sameDayLater, organizer)
	require.NoError(t, err)
	_, err = c.Create(ctx, early, models.User{ID: "org-2", Name: "Other"})
	require.NoError(t, err)

	mine, err := c.GetByOrganizer(ctx, "org-1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := c.GetAll(ctx)
	require.NoError(t, err)
	SortByDate(all)
	require.Len(t, all, 3)
	assert.Equal(t, "2026-02-01", all[0].Date)
	assert.Equal(t, "10:00", all[0].Time)
	assert.Equal(t, "18:00", all[1].Time)
	assert.Equal(t, "2026-03-10", all[2].Date)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t)

	e, err := c.Create(ctx, validInput(), organizer)
	require.NoError(t, err)

	title := "Renamed"
	capacity := 50
	updated, err := c.Update(ctx, e.ID, EventPatch{Title: &title, Capacity: &capacity})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 50, updated.Capacity)
	assert.Equal(t, e.Location, updated.Location)
	assert.False(t, updated.UpdatedAt.Before(e.UpdatedAt))

	_, err = c.Update(ctx, "nope", EventPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	empty := ""
	_, err = c.Update(ctx, e.ID, EventPatch{Title: &empty})
	assert.ErrorIs(t, err, ErrInvalid)

	// Capacity may not drop below the registered attendees.
	require.NoError(t, s.Update(func(kv store.KV) error {
		events, err := store.LoadList[models.Event](ctx, kv, store.EventsKey)
		if err != nil {
			return err
		}
		events[0].Attendees = 10
		return store.SaveList(ctx, kv, store.EventsKey, events)
	}))
	small := 5
	_, err = c.Update(ctx, e.ID, EventPatch{Capacity: &small})
	assert.ErrorIs(t, err, ErrInvalid)

	got, err := c.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Capacity)
}

func TestToggleRegistrationOpen(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)

	e, err := c.Create(ctx, validInput(), organizer)
	require.NoError(t, err)

	toggled, err := c.ToggleRegistrationOpen(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsRegistrationOpen)

	toggled, err = c.ToggleRegistrationOpen(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsRegistrationOpen)

	_, err = c.ToggleRegistrationOpen(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCascades(t *testing.T) {
	ctx := context.Background()
	c, s := newCatalog(t)

	keep, err := c.Create(ctx, validInput(), organizer)
	require.NoError(t, err)
	drop, err := c.Create(ctx, validInput(), organizer)
	require.NoError(t, err)

	require.NoError(t, s.Update(func(kv store.KV) error {
		return store.SaveList(ctx, kv, store.RegistrationsKey, []models.Registration{
			{ID: "r1", EventID: keep.ID},
			{ID: "r2", EventID: drop.ID},
			{ID: "r3", EventID: drop.ID},
		})
	}))

	removed, err := c.Delete(ctx, drop.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = c.Delete(ctx, drop.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = c.GetByID(ctx, drop.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var regs []models.Registration
	require.NoError(t, s.View(func(kv store.KV) error {
		regs, err = store.LoadList[models.Registration](ctx, kv, store.RegistrationsKey)
		return err
	}))
	require.Len(t, regs, 1)
	assert.Equal(t, "r1", regs[0].ID)
}

func TestRefreshStatuses(t *testing.T) {
	ctx := context.Background()
	c, _ := newCatalog(t)

	withEnd, err := c.Create(ctx, validInput(), organizer)
	require.NoError(t, err)

	noEnd := validInput()
	noEnd.EndTime = ""
	allDay, err := c.Create(ctx, noEnd, organizer)
	require.NoError(t, err)

	cancelled, err := c.Create(ctx, validInput(), organizer)
	require.NoError(t, err)
	status := models.StatusCancelled
	_, err = c.Update(ctx, cancelled.ID, EventPatch{Status: &status})
	require.NoError(t, err)

	statusOf := func(id string) models.EventStatus {
		e, err := c.GetByID(ctx, id)
		require.NoError(t, err)
		return e.Status
	}

	n, err := c.RefreshStatuses(ctx, time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = c.RefreshStatuses(ctx, time.Date(2026, 2, 15, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, models.StatusLive, statusOf(withEnd.ID))
	assert.Equal(t, models.StatusLive, statusOf(allDay.ID))
	assert.Equal(t, models.StatusCancelled, statusOf(cancelled.ID))

	n, err = c.RefreshStatuses(ctx, time.Date(2026, 2, 15, 17, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, models.StatusCompleted, statusOf(withEnd.ID))
	assert.Equal(t, models.StatusLive, statusOf(allDay.ID))

	n, err = c.RefreshStatuses(ctx, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, models.StatusCompleted, statusOf(allDay.ID))
	assert.Equal(t, models.StatusCancelled, statusOf(cancelled.ID))
}

package demo

import (
	"context"
	"testing"
	"time"

	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/gdg-garage/eventflow-api/internal/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryKV())
	session := users.NewSession(s)
	directory := users.NewDirectory(s, nil)
	catalog := events.NewCatalog(s, "http://frontend.test", time.UTC)

	res, err := Seed(ctx, directory, catalog)
	require.NoError(t, err)
	assert.Equal(t, Result{Users: 2, Events: 7}, res)

	organizer, err := directory.FindByEmail(ctx, OrganizerEmail)
	require.NoError(t, err)
	assert.True(t, organizer.IsOrganizer())

	mine, err := catalog.GetByOrganizer(ctx, organizer.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := catalog.GetAll(ctx)
	require.NoError(t, err)
	for _, e := range all {
		assert.True(t, e.IsRegistrationOpen, e.Title)
		assert.Zero(t, e.Attendees, e.Title)
	}

	current, err := session.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSeedTwice(t *testing.T) {
	ctx := context.Background()
	s := store.New(store.NewMemoryKV())
	directory := users.NewDirectory(s, nil)
	catalog := events.NewCatalog(s, "http://frontend.test", time.UTC)

	_, err := Seed(ctx, directory, catalog)
	require.NoError(t, err)

	res, err := Seed(ctx, directory, catalog)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)

	list, err := directory.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

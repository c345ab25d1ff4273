package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/gdg-garage/eventflow-api/internal/config"
	"github.com/gdg-garage/eventflow-api/internal/demo"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/store"
	"github.com/gdg-garage/eventflow-api/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func useTempStore(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "eventflow.db"))
	t.Setenv("LOG_LEVEL", "error")
}

func TestTokenCommands(t *testing.T) {
	out, err := execute(t, "token", "encode", "evt_1", "reg_1")
	require.NoError(t, err)
	assert.Equal(t, token.Encode("evt_1", "reg_1")+"\n", out)

	out, err = execute(t, "token", "decode", token.Encode("evt_1", "reg_1"))
	require.NoError(t, err)
	assert.Contains(t, out, "evt_1")
	assert.Contains(t, out, "reg_1")

	_, err = execute(t, "token", "decode", "not-a-token")
	assert.Error(t, err)
}

func TestSessionCommands(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	_, err = execute(t, "login", "--email", "nobody@campus.edu")
	assert.ErrorContains(t, err, "sign up first")
}

func TestEventsListEmpty(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "events", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
}

func TestCheckinRejectsGarbage(t *testing.T) {
	useTempStore(t)

	_, err := execute(t, "checkin", "garbage")
	assert.ErrorContains(t, err, "Invalid QR code format")
}

func TestSeedThenLogin(t *testing.T) {
	useTempStore(t)

	out, err := execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 users and 7 events")

	out, err = execute(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in")

	out, err = execute(t, "login", "--email", demo.OrganizerEmail)
	require.NoError(t, err)
	assert.Contains(t, out, "Demo Organizer")

	out, err = execute(t, "events", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Startup Pitch Competition")

	out, err = execute(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 0 users and 0 events")
}

func TestAccountsLeaveSessionAlone(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{FrontendURL: "http://frontend.test", Timezone: "UTC"}
	a := newApp(cfg, store.NewMemoryKV(), func() error { return nil })

	owner := models.User{ID: "owner", Email: "owner@campus.edu", Name: "Owner"}
	require.NoError(t, a.directory.Save(ctx, owner))
	require.NoError(t, a.accounts.Save(ctx, models.User{ID: "web", Email: "web@campus.edu", Name: "Web"}))

	current, err := a.session.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "owner", current.ID)
}

package token

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		eventID, registrationID string
	}{
		{"evt-1", "reg-1"},
		{GenerateID(), GenerateID()},
		{"evt-2", ""},
	}

	for _, c := range cases {
		p, ok := Decode(Encode(c.eventID, c.registrationID))
		require.True(t, ok)
		assert.Equal(t, c.eventID, p.EventID)
		assert.Equal(t, c.registrationID, p.RegistrationID)
	}
}

func TestEncodeFormat(t *testing.T) {
	raw, err := base64.StdEncoding.DecodeString(Encode("e1", "r1"))
	require.NoError(t, err)
	assert.Equal(t, "eventflow://event/e1/registration/r1", string(raw))

	raw, err = base64.StdEncoding.DecodeString(Encode("e1", ""))
	require.NoError(t, err)
	assert.Equal(t, "eventflow://event/e1", string(raw))
}

func TestDecodeRawURI(t *testing.T) {
	p, ok := Decode("eventflow://event/e1/registration/r1")
	require.True(t, ok)
	assert.Equal(t, Payload{EventID: "e1", RegistrationID: "r1"}, p)

	p, ok = Decode("  eventflow://event/e9  ")
	require.True(t, ok)
	assert.Equal(t, "e9", p.EventID)
	assert.Empty(t, p.RegistrationID)
}

func TestDecodeRejects(t *testing.T) {
	inputs := []string{
		"",
		"hello",
		"https://example.com/event/1",
		"eventflow://event/",
		"eventflow://event/e1/registration/",
		"eventflow://event/e1/other/r1",
		base64.StdEncoding.EncodeToString([]byte("not a token")),
		"%%%not-base64%%%",
	}
	for _, in := range inputs {
		_, ok := Decode(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRegistrationLink(t *testing.T) {
	assert.Equal(t, "http://x.test/event/e1/register", RegistrationLink("http://x.test/", "e1"))
}

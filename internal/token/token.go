// Package token generates identifiers and encodes the check-in payloads
// carried by QR codes.
//
// Tokens are a plain base64 encoding of an eventflow:// URI. They are not
// signed and must not be treated as proof of anything.
package token

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

const scheme = "eventflow://event/"

var uriPattern = regexp.MustCompile(`^eventflow://event/([^/\s]+)(?:/registration/([^/\s]+))?$`)

// Payload is the decoded content of a check-in token.
type Payload struct {
	EventID        string `json:"eventId"`
	RegistrationID string `json:"registrationId,omitempty"`
}

// GenerateID returns a time-ordered UUID.
func GenerateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// URI returns the un-encoded form of a token.
func URI(eventID, registrationID string) string {
	if registrationID == "" {
		return scheme + eventID
	}
	return scheme + eventID + "/registration/" + registrationID
}

// Encode returns base64(URI(eventID, registrationID)).
func Encode(eventID, registrationID string) string {
	return base64.StdEncoding.EncodeToString([]byte(URI(eventID, registrationID)))
}

// Decode accepts both the base64 and the raw URI form. ok is false for
// anything that does not match the eventflow://event pattern.
func Decode(token string) (Payload, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Payload{}, false
	}

	if raw, err := base64.StdEncoding.DecodeString(token); err == nil {
		if p, ok := parseURI(string(raw)); ok {
			return p, true
		}
	}

	return parseURI(token)
}

func parseURI(s string) (Payload, bool) {
	m := uriPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Payload{}, false
	}
	return Payload{EventID: m[1], RegistrationID: m[2]}, true
}

// RegistrationLink is the public page where students register for an event.
func RegistrationLink(baseURL, eventID string) string {
	return fmt.Sprintf("%s/event/%s/register", strings.TrimRight(baseURL, "/"), eventID)
}

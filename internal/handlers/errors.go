package handlers

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/registrations"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// httpError maps domain errors to API errors. Anything unrecognised is a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, events.ErrNotFound):
		return huma.Error404NotFound("Event not found")
	case errors.Is(err, registrations.ErrNotFound):
		return huma.Error404NotFound("Registration not found")
	case errors.Is(err, registrations.ErrRegistrationClosed):
		return huma.Error409Conflict("Registration is closed for this event")
	case errors.Is(err, registrations.ErrEventFull):
		return huma.Error409Conflict("Event is full")
	case errors.Is(err, events.ErrInvalid), errors.Is(err, registrations.ErrInvalid):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		log.Error().Err(err).Msg("Request failed")
		return huma.Error500InternalServerError("Internal server error")
	}
}

func requireOwner(event *models.Event, user *models.User) error {
	if event.OrganizerID != user.ID {
		return huma.Error403Forbidden("Access denied: you do not organize this event")
	}
	return nil
}

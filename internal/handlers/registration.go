package handlers

import (
	"context"

	"github.com/gdg-garage/eventflow-api/internal/auth"
	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/notifier"
	"github.com/gdg-garage/eventflow-api/internal/registrations"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type RegistrationHandler struct {
	catalog     *events.Catalog
	ledger      *registrations.Ledger
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

// NewRegistrationHandler builds the handler; n may be nil to disable
// notifications.
func NewRegistrationHandler(catalog *events.Catalog, ledger *registrations.Ledger, n notifier.Notifier, authHandler *auth.AuthHandler) *RegistrationHandler {
	return &RegistrationHandler{catalog: catalog, ledger: ledger, notifier: n, authHandler: authHandler}
}

type RegistrationRequest struct {
	auth.AuthInput
	ID   string `path:"id" doc:"Event ID"`
	Body registrations.RegistrationInput
}

type RegistrationResponse struct {
	Body models.Registration
}

// HandleRegister is the public registration form. Signed-in students get the
// registration linked to their account; everyone else registers as a guest.
func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegistrationRequest) (*RegistrationResponse, error) {
	in := input.Body
	if user, err := h.authHandler.Authorize(ctx, input.Cookie); err == nil {
		in.UserID = user.ID
	}

	registration, created, err := h.ledger.Register(ctx, input.ID, in)
	if err != nil {
		return nil, httpError(err)
	}

	if created && h.notifier != nil {
		if event, err := h.catalog.GetByID(ctx, input.ID); err == nil {
			if err := h.notifier.NotifyRegistration(*event, *registration); err != nil {
				log.Warn().Err(err).Msg("Failed to send registration notification")
			}
		}
	}

	return &RegistrationResponse{Body: *registration}, nil
}

type LookupRequest struct {
	ID        string `path:"id" doc:"Event ID"`
	Email     string `query:"email" doc:"Registered email"`
	StudentID string `query:"studentId" doc:"Registered student ID"`
}

// HandleLookup finds an existing registration by email or student ID so the
// registration page can show "already registered".
func (h *RegistrationHandler) HandleLookup(ctx context.Context, input *LookupRequest) (*RegistrationResponse, error) {
	var (
		registration *models.Registration
		err          error
	)
	switch {
	case input.Email != "":
		registration, err = h.ledger.FindByEmail(ctx, input.ID, input.Email)
	case input.StudentID != "":
		registration, err = h.ledger.FindByStudentID(ctx, input.ID, input.StudentID)
	default:
		err = registrations.ErrNotFound
	}
	if err != nil {
		return nil, httpError(err)
	}
	return &RegistrationResponse{Body: *registration}, nil
}

type RegistrationListResponse struct {
	Body []models.Registration
}

func (h *RegistrationHandler) HandleListForEvent(ctx context.Context, input *OwnedEventRequest) (*RegistrationListResponse, error) {
	if _, err := ownedEvent(ctx, h.authHandler, h.catalog, input); err != nil {
		return nil, err
	}
	regs, err := h.ledger.GetForEvent(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	return &RegistrationListResponse{Body: regs}, nil
}

type MyRegistrationsRequest struct {
	auth.AuthInput
}

type MyRegistrationsResponse struct {
	Body []models.UserRegistration
}

func (h *RegistrationHandler) HandleMine(ctx context.Context, input *MyRegistrationsRequest) (*MyRegistrationsResponse, error) {
	user, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	mine, err := h.ledger.GetForUser(ctx, user.Email)
	if err != nil {
		return nil, httpError(err)
	}
	return &MyRegistrationsResponse{Body: mine}, nil
}

// HandleQR renders the attendee's check-in code.
func (h *RegistrationHandler) HandleQR(ctx context.Context, input *QRRequest) (*PNGResponse, error) {
	registration, err := h.ledger.GetByID(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	if registration.QRCode == "" {
		return nil, httpError(errors.Wrap(registrations.ErrNotFound, "registration has no check-in code"))
	}
	return pngResponse(registration.QRCode, input.Size)
}

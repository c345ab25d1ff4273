package handlers

import (
	"context"

	"github.com/gdg-garage/eventflow-api/internal/auth"
	"github.com/gdg-garage/eventflow-api/internal/checkin"
	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/notifier"
	"github.com/gdg-garage/eventflow-api/internal/registrations"
	"github.com/rs/zerolog/log"
)

type CheckInHandler struct {
	catalog     *events.Catalog
	ledger      *registrations.Ledger
	resolver    *checkin.Resolver
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewCheckInHandler(catalog *events.Catalog, ledger *registrations.Ledger, resolver *checkin.Resolver, n notifier.Notifier, authHandler *auth.AuthHandler) *CheckInHandler {
	return &CheckInHandler{catalog: catalog, ledger: ledger, resolver: resolver, notifier: n, authHandler: authHandler}
}

func (h *CheckInHandler) notify(eventID string, registration models.Registration) {
	if h.notifier == nil {
		return
	}
	event, err := h.catalog.GetByID(context.Background(), eventID)
	if err != nil {
		return
	}
	if err := h.notifier.NotifyCheckIn(*event, registration); err != nil {
		log.Warn().Err(err).Msg("Failed to send check-in notification")
	}
}

type ScanRequest struct {
	auth.AuthInput
	Body struct {
		Token string `json:"token" doc:"Scanned or typed check-in token"`
	}
}

type ScanResponse struct {
	Body checkin.Result
}

// HandleScan checks an attendee in from a QR token. Rejections come back as
// success=false with a message, not as HTTP errors.
func (h *CheckInHandler) HandleScan(ctx context.Context, input *ScanRequest) (*ScanResponse, error) {
	if _, err := h.authHandler.RequireOrganizer(ctx, input.Cookie); err != nil {
		return nil, err
	}
	res, err := h.resolver.CheckInByToken(ctx, input.Body.Token)
	if err != nil {
		return nil, httpError(err)
	}
	if res.Success && res.Registration != nil {
		h.notify(res.Registration.EventID, *res.Registration)
	}
	return &ScanResponse{Body: res}, nil
}

type CheckInByIDRequest struct {
	auth.AuthInput
	ID string `path:"id" doc:"Registration ID"`
}

func (h *CheckInHandler) HandleCheckInByID(ctx context.Context, input *CheckInByIDRequest) (*RegistrationResponse, error) {
	user, err := h.authHandler.RequireOrganizer(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	registration, err := h.ledger.GetByID(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	event, err := h.catalog.GetByID(ctx, registration.EventID)
	if err != nil {
		return nil, httpError(err)
	}
	if err := requireOwner(event, user); err != nil {
		return nil, err
	}

	wasCheckedIn := registration.CheckedIn
	registration, err = h.resolver.CheckInByID(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	if !wasCheckedIn {
		h.notify(registration.EventID, *registration)
	}
	return &RegistrationResponse{Body: *registration}, nil
}

type ManualCheckInRequest struct {
	OwnedEventRequest
	Body registrations.ManualCheckInInput
}

// HandleManualCheckIn records a walk-in attendee. With force set a full
// event gains a seat instead of returning 409.
func (h *CheckInHandler) HandleManualCheckIn(ctx context.Context, input *ManualCheckInRequest) (*RegistrationResponse, error) {
	if _, err := ownedEvent(ctx, h.authHandler, h.catalog, &input.OwnedEventRequest); err != nil {
		return nil, err
	}
	registration, err := h.ledger.ManualCheckIn(ctx, input.ID, input.Body)
	if err != nil {
		return nil, httpError(err)
	}
	h.notify(registration.EventID, *registration)
	return &RegistrationResponse{Body: *registration}, nil
}

package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/eventflow-api/internal/auth"
	"github.com/gdg-garage/eventflow-api/internal/events"
	"github.com/gdg-garage/eventflow-api/internal/models"
	"github.com/gdg-garage/eventflow-api/internal/qrimage"
	"github.com/gdg-garage/eventflow-api/internal/registrations"
)

type EventHandler struct {
	catalog     *events.Catalog
	ledger      *registrations.Ledger
	authHandler *auth.AuthHandler
}

func NewEventHandler(catalog *events.Catalog, ledger *registrations.Ledger, authHandler *auth.AuthHandler) *EventHandler {
	return &EventHandler{catalog: catalog, ledger: ledger, authHandler: authHandler}
}

type ListEventsRequest struct {
	Category string `query:"category" doc:"Only events of this category"`
	OpenOnly bool   `query:"open" doc:"Only events accepting registrations"`
}

type EventListResponse struct {
	Body []models.Event
}

func (h *EventHandler) HandleList(ctx context.Context, input *ListEventsRequest) (*EventListResponse, error) {
	all, err := h.catalog.GetAll(ctx)
	if err != nil {
		return nil, httpError(err)
	}

	out := []models.Event{}
	for _, e := range all {
		if input.Category != "" && string(e.Category) != input.Category {
			continue
		}
		if input.OpenOnly && !e.IsRegistrationOpen {
			continue
		}
		out = append(out, e)
	}
	events.SortByDate(out)
	return &EventListResponse{Body: out}, nil
}

type OrganizerEventsRequest struct {
	auth.AuthInput
}

func (h *EventHandler) HandleListMine(ctx context.Context, input *OrganizerEventsRequest) (*EventListResponse, error) {
	user, err := h.authHandler.RequireOrganizer(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	mine, err := h.catalog.GetByOrganizer(ctx, user.ID)
	if err != nil {
		return nil, httpError(err)
	}
	events.SortByDate(mine)
	return &EventListResponse{Body: mine}, nil
}

type EventIDRequest struct {
	ID string `path:"id" doc:"Event ID"`
}

type EventResponse struct {
	Body models.Event
}

func (h *EventHandler) HandleGet(ctx context.Context, input *EventIDRequest) (*EventResponse, error) {
	event, err := h.catalog.GetByID(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	return &EventResponse{Body: *event}, nil
}

type CreateEventRequest struct {
	auth.AuthInput
	Body events.CreateEventInput
}

func (h *EventHandler) HandleCreate(ctx context.Context, input *CreateEventRequest) (*EventResponse, error) {
	user, err := h.authHandler.RequireOrganizer(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	event, err := h.catalog.Create(ctx, input.Body, *user)
	if err != nil {
		return nil, httpError(err)
	}
	return &EventResponse{Body: *event}, nil
}

type OwnedEventRequest struct {
	auth.AuthInput
	ID string `path:"id" doc:"Event ID"`
}

// owned loads the event and checks that the caller organizes it.
func (h *EventHandler) owned(ctx context.Context, input *OwnedEventRequest) (*models.Event, error) {
	return ownedEvent(ctx, h.authHandler, h.catalog, input)
}

func ownedEvent(ctx context.Context, authHandler *auth.AuthHandler, catalog *events.Catalog, input *OwnedEventRequest) (*models.Event, error) {
	user, err := authHandler.RequireOrganizer(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}
	event, err := catalog.GetByID(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	if err := requireOwner(event, user); err != nil {
		return nil, err
	}
	return event, nil
}

type UpdateEventRequest struct {
	OwnedEventRequest
	Body events.EventPatch
}

func (h *EventHandler) HandleUpdate(ctx context.Context, input *UpdateEventRequest) (*EventResponse, error) {
	if _, err := h.owned(ctx, &input.OwnedEventRequest); err != nil {
		return nil, err
	}
	event, err := h.catalog.Update(ctx, input.ID, input.Body)
	if err != nil {
		return nil, httpError(err)
	}
	return &EventResponse{Body: *event}, nil
}

func (h *EventHandler) HandleToggleRegistration(ctx context.Context, input *OwnedEventRequest) (*EventResponse, error) {
	if _, err := h.owned(ctx, input); err != nil {
		return nil, err
	}
	event, err := h.catalog.ToggleRegistrationOpen(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	return &EventResponse{Body: *event}, nil
}

func (h *EventHandler) HandleDelete(ctx context.Context, input *OwnedEventRequest) (*struct{}, error) {
	if _, err := h.owned(ctx, input); err != nil {
		return nil, err
	}
	removed, err := h.catalog.Delete(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	if !removed {
		return nil, huma.Error404NotFound("Event not found")
	}
	return nil, nil
}

type StatsResponse struct {
	Body registrations.Stats
}

func (h *EventHandler) HandleStats(ctx context.Context, input *OwnedEventRequest) (*StatsResponse, error) {
	if _, err := h.owned(ctx, input); err != nil {
		return nil, err
	}
	stats, err := h.ledger.Stats(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	return &StatsResponse{Body: *stats}, nil
}

type QRRequest struct {
	ID   string `path:"id"`
	Size int    `query:"size" default:"300" minimum:"64" maximum:"1024" doc:"Image width and height in pixels"`
}

type PNGResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

func pngResponse(content string, size int) (*PNGResponse, error) {
	data, err := qrimage.PNG(content, size)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to render QR code")
	}
	return &PNGResponse{ContentType: "image/png", Body: data}, nil
}

// HandleQR renders the event's registration link, the code organizers put
// on posters.
func (h *EventHandler) HandleQR(ctx context.Context, input *QRRequest) (*PNGResponse, error) {
	event, err := h.catalog.GetByID(ctx, input.ID)
	if err != nil {
		return nil, httpError(err)
	}
	return pngResponse(event.RegistrationLink, input.Size)
}

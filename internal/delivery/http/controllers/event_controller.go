package controllers

import (
	"log/slog"
	"net/http"

	"github.com/yousef10-awadh/dev-events/internal/delivery/http/helpers"
	"github.com/yousef10-awadh/dev-events/internal/domain"
)

// CreateEventRequest is the request body for POST /events. Slug, id and
// timestamps are server-generated; date and time are canonicalized before
// storage.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Overview    string   `json:"overview"`
	Image       string   `json:"image"`
	Venue       string   `json:"venue"`
	Location    string   `json:"location"`
	Date        string   `json:"date"`
	Time        string   `json:"time"`
	Mode        string   `json:"mode"`
	Audience    string   `json:"audience"`
	Agenda      []string `json:"agenda"`
	Organizer   string   `json:"organizer"`
	Tags        []string `json:"tags"`
}

// EventSuccessResponse is the success envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the data payload for GET /events.
type ListEventsResponse struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a new developer event listing. The slug is derived from the title; date and time are normalized to YYYY-MM-DD and HH:MM.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (missing/empty field, bad date or time)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate slug)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Overview:    req.Overview,
		Image:       req.Image,
		Venue:       req.Venue,
		Location:    req.Location,
		Date:        req.Date,
		Time:        req.Time,
		Mode:        req.Mode,
		Audience:    req.Audience,
		Agenda:      req.Agenda,
		Organizer:   req.Organizer,
		Tags:        req.Tags,
	}
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description List events ordered by date, optionally filtered by tag and mode, with offset pagination.
// @Tags events
// @Produce json
// @Param tag query string false "Only events carrying this tag"
// @Param mode query string false "Only events with this mode (e.g. online)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains events and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := domain.EventFilter{
		Tag:  r.URL.Query().Get("tag"),
		Mode: r.URL.Query().Get("mode"),
	}
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), filter, params)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{
		Events:     events,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed UUID)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/slug/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partially update an event. Omitted fields are unchanged. Changing the title regenerates the slug; date and time are renormalized.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param event body domain.EventUpdate true "Fields to update"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate slug)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}
	var upd domain.EventUpdate
	if !helpers.DecodeAndValidate(w, r, &upd) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, &upd)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "no content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (malformed UUID)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := requireEventID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

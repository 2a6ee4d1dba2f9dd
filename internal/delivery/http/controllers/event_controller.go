package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
)

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name         string `json:"name"`
	DrawCapacity int    `json:"draw_capacity"`
	// RegStop is the registration deadline, "2006-01-02T15:04:05" local time or RFC 3339.
	RegStop           *string `json:"reg_stop"`
	UnresponsiveHours *int    `json:"unresponsive_hours"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.DrawCapacity < 1 {
		errs = append(errs, "draw_capacity must be at least 1")
	}
	if c.UnresponsiveHours != nil && *c.UnresponsiveHours < 1 {
		errs = append(errs, "unresponsive_hours must be at least 1")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// JoinWaitingListRequest is the optional request body for POST /events/{eventID}/entries.
type JoinWaitingListRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// Validate implements Validator.
func (j JoinWaitingListRequest) Validate() []string {
	var errs []string
	if (j.Latitude == nil) != (j.Longitude == nil) {
		errs = append(errs, "latitude and longitude must be given together")
	}
	if j.Latitude != nil && (*j.Latitude < -90 || *j.Latitude > 90) {
		errs = append(errs, "latitude must be between -90 and 90")
	}
	if j.Longitude != nil && (*j.Longitude < -180 || *j.Longitude > 180) {
		errs = append(errs, "longitude must be between -180 and 180")
	}
	return errs
}

// EntrySuccessResponse is the success response envelope for a waiting list entry.
type EntrySuccessResponse struct {
	Data  *domain.WaitingListEntry `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

type EventController struct {
	Logger      *slog.Logger
	Service     domain.EventService
	Invitations domain.InvitationService
}

func NewEventController(logger *slog.Logger, svc domain.EventService, invitations domain.InvitationService) *EventController {
	return &EventController{
		Logger:      logger,
		Service:     svc,
		Invitations: invitations,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a lottery event. The draw runs automatically once reg_stop has passed.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_reg_stop"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	event := domain.NewEvent(req.Name, req.DrawCapacity, req.RegStop, now, now)
	event.UnresponsiveHours = req.UnresponsiveHours
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event with its draw state.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := c.Service.GetEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// JoinWaitingList godoc
// @Summary Join an event's waiting list
// @Description Adds the authenticated user to the waiting list while registration is open. Coordinates are optional.
// @Tags entries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param location body JoinWaitingListRequest false "Optional join location"
// @Success 201 {object} controllers.EntrySuccessResponse "data contains the new entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_joined"
// @Failure 422 {object} helpers.APIResponse "error.code: registration_closed"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /events/{eventID}/entries [post]
func (c *EventController) JoinWaitingList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req JoinWaitingListRequest
	if r.ContentLength != 0 && !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry, err := c.Invitations.Join(r.Context(), r.PathValue("eventID"), userID, req.Latitude, req.Longitude)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entry)
}

func (c *EventController) fail(w http.ResponseWriter, r *http.Request, err error) {
	logFailure(c.Logger, r, err)
	helpers.WriteServiceError(w, err)
}

// logFailure logs server-side failures; client errors are not logged.
func logFailure(logger *slog.Logger, r *http.Request, err error) {
	if status, _ := helpers.StatusForError(err); status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	}
}

package controllers

import (
	"log/slog"
	"net/http"

	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/domain"
)

// DrawOutcomeSuccessResponse is the success response envelope for draw endpoints.
type DrawOutcomeSuccessResponse struct {
	Data  *domain.DrawOutcome `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ReplacementRequest is the request body for POST /events/{eventID}/replacements.
type ReplacementRequest struct {
	Vacancies int `json:"vacancies"`
}

// Validate implements Validator.
func (rr ReplacementRequest) Validate() []string {
	if rr.Vacancies < 1 {
		return []string{"vacancies must be at least 1"}
	}
	return nil
}

// NotifyPoolRequest is the request body for POST /events/{eventID}/notifications.
type NotifyPoolRequest struct {
	// Pool is one of selected, not_selected, waiting, canceled.
	Pool domain.EntrantPool `json:"pool"`
}

// Validate implements Validator.
func (n NotifyPoolRequest) Validate() []string {
	if n.Pool == "" {
		return []string{"pool is required"}
	}
	return nil
}

// NotifyResultSuccessResponse is the success response envelope for broadcasts.
type NotifyResultSuccessResponse struct {
	Data  domain.NotifyResult `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// UnresponsiveSuccessResponse is the success response envelope for POST /events/{eventID}/unresponsive/cancel.
type UnresponsiveSuccessResponse struct {
	Data  *domain.UnresponsiveResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// SweepSuccessResponse is the success response envelope for POST /sweeps.
type SweepSuccessResponse struct {
	Data  domain.SweepReport `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// DrawController exposes the organizer draw operations.
type DrawController struct {
	Logger      *slog.Logger
	Scheduler   domain.DrawScheduler
	Lottery     domain.LotteryService
	Invitations domain.InvitationService
	Broadcasts  domain.BroadcastService
}

func NewDrawController(
	logger *slog.Logger,
	scheduler domain.DrawScheduler,
	lottery domain.LotteryService,
	invitations domain.InvitationService,
	broadcasts domain.BroadcastService,
) *DrawController {
	return &DrawController{
		Logger:      logger,
		Scheduler:   scheduler,
		Lottery:     lottery,
		Invitations: invitations,
		Broadcasts:  broadcasts,
	}
}

// RunDraw godoc
// @Summary Run the lottery for an event
// @Description Draws up to draw_capacity entrants from the waiting list. Only allowed once registration has closed and only once per event.
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.DrawOutcomeSuccessResponse "data contains the draw outcome"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_drawn"
// @Failure 422 {object} helpers.APIResponse "error.code: invalid_quota, missing_reg_stop, invalid_reg_stop or registration_open"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /events/{eventID}/draws [post]
func (c *DrawController) RunDraw(w http.ResponseWriter, r *http.Request) {
	outcome, err := c.Scheduler.RunManual(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, outcome)
}

// RunReplacement godoc
// @Summary Draw replacements
// @Description Draws up to vacancies entrants from those still waiting. Does not change the event's drawn flag.
// @Tags draws
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body ReplacementRequest true "Number of seats to fill"
// @Success 200 {object} controllers.DrawOutcomeSuccessResponse "data contains the draw outcome"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /events/{eventID}/replacements [post]
func (c *DrawController) RunReplacement(w http.ResponseWriter, r *http.Request) {
	var req ReplacementRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	outcome, err := c.Lottery.RunReplacement(r.Context(), r.PathValue("eventID"), "", req.Vacancies)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, outcome)
}

// Redraw godoc
// @Summary Fill open seats
// @Description Draws replacements for every seat not held by a selected or enrolled entrant.
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.DrawOutcomeSuccessResponse "data contains the draw outcome"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition (event not drawn yet)"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /events/{eventID}/redraw [post]
func (c *DrawController) Redraw(w http.ResponseWriter, r *http.Request) {
	outcome, err := c.Invitations.FillOpenSeats(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, outcome)
}

// CancelUnresponsive godoc
// @Summary Cancel unresponsive entrants
// @Description Cancels selected entrants who did not respond within the event's window and backfills their seats.
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.UnresponsiveSuccessResponse "data contains the cancel count and replacement outcome"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /events/{eventID}/unresponsive/cancel [post]
func (c *DrawController) CancelUnresponsive(w http.ResponseWriter, r *http.Request) {
	result, err := c.Invitations.CancelUnresponsive(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// NotifyPool godoc
// @Summary Message an entrant pool
// @Description Sends the preset message for the pool to every entrant in it who has notifications enabled.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body NotifyPoolRequest true "Pool to notify"
// @Success 200 {object} controllers.NotifyResultSuccessResponse "data contains delivery counts"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /events/{eventID}/notifications [post]
func (c *DrawController) NotifyPool(w http.ResponseWriter, r *http.Request) {
	var req NotifyPoolRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	res, err := c.Broadcasts.NotifyPool(r.Context(), r.PathValue("eventID"), req.Pool)
	if err != nil {
		c.fail(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, res)
}

// Sweep godoc
// @Summary Run the draw sweep now
// @Description Draws every undrawn event whose registration has closed and returns the pass report.
// @Tags draws
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SweepSuccessResponse "data contains the sweep report"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Router /sweeps [post]
func (c *DrawController) Sweep(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Scheduler.Sweep(r.Context()))
}

func (c *DrawController) fail(w http.ResponseWriter, r *http.Request, err error) {
	logFailure(c.Logger, r, err)
	helpers.WriteServiceError(w, err)
}

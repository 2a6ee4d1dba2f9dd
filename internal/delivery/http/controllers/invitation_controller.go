package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
)

// InvitationSuccessResponse is the success response envelope for entrant actions.
type InvitationSuccessResponse struct {
	Data  *domain.InvitationResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// InvitationController exposes the actions an entrant takes on their own entry.
type InvitationController struct {
	Logger  *slog.Logger
	Service domain.InvitationService
}

func NewInvitationController(logger *slog.Logger, svc domain.InvitationService) *InvitationController {
	return &InvitationController{Logger: logger, Service: svc}
}

type invitationAction func(ctx context.Context, eventID, entryID, userID string) (*domain.InvitationResult, error)

// Accept godoc
// @Summary Accept an invitation
// @Description Enrolls the caller's selected entry.
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param entryID path string true "Waiting list entry ID"
// @Success 200 {object} controllers.InvitationSuccessResponse "data.entry is the enrolled entry"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition"
// @Router /events/{eventID}/entries/{entryID}/accept [post]
func (c *InvitationController) Accept(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, c.Service.Accept)
}

// Decline godoc
// @Summary Decline an invitation
// @Description Cancels the caller's selected entry and draws one replacement. A failed replacement is reported in data.replacement_error; the decline still stands.
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param entryID path string true "Waiting list entry ID"
// @Success 200 {object} controllers.InvitationSuccessResponse "data.entry is the canceled entry"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition"
// @Router /events/{eventID}/entries/{entryID}/decline [post]
func (c *InvitationController) Decline(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, c.Service.Decline)
}

// Cancel godoc
// @Summary Cancel an enrollment
// @Description Cancels the caller's enrolled entry; the seat may be backfilled depending on server policy.
// @Tags entries
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param entryID path string true "Waiting list entry ID"
// @Success 200 {object} controllers.InvitationSuccessResponse "data.entry is the canceled entry"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: invalid_transition"
// @Router /events/{eventID}/entries/{entryID}/cancel [post]
func (c *InvitationController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, c.Service.Cancel)
}

func (c *InvitationController) handle(w http.ResponseWriter, r *http.Request, action invitationAction) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	result, err := action(r.Context(), r.PathValue("eventID"), r.PathValue("entryID"), userID)
	if err != nil {
		logFailure(c.Logger, r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

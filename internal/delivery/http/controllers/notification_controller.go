package controllers

import (
	"log/slog"
	"net/http"

	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"
)

// NotificationListSuccessResponse is the success response envelope for GET /me/notifications.
type NotificationListSuccessResponse struct {
	Data  []*domain.Notification `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// NotificationPreferencesRequest is the request body for PUT /me/notification-preferences.
type NotificationPreferencesRequest struct {
	NotificationsEnabled *bool `json:"notifications_enabled"`
}

// Validate implements Validator.
func (n NotificationPreferencesRequest) Validate() []string {
	if n.NotificationsEnabled == nil {
		return []string{"notifications_enabled is required"}
	}
	return nil
}

// UserSuccessResponse is the success response envelope for the caller's preferences.
type UserSuccessResponse struct {
	Data  *domain.User      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type NotificationController struct {
	Logger  *slog.Logger
	Service domain.NotificationService
}

func NewNotificationController(logger *slog.Logger, svc domain.NotificationService) *NotificationController {
	return &NotificationController{Logger: logger, Service: svc}
}

// ListMine godoc
// @Summary List my notifications
// @Description Returns the caller's in-app notifications, newest first.
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Maximum items (default 20, max 100)"
// @Success 200 {object} controllers.NotificationListSuccessResponse "data contains notifications"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /me/notifications [get]
func (c *NotificationController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	list, err := c.Service.ListForUser(r.Context(), userID, helpers.ParseLimit(r))
	if err != nil {
		logFailure(c.Logger, r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, list)
}

// SetPreferences godoc
// @Summary Set my notification preference
// @Description Turns lottery notifications on or off for the caller.
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body NotificationPreferencesRequest true "Preference"
// @Success 200 {object} controllers.UserSuccessResponse "data contains the updated user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 503 {object} helpers.APIResponse "error.code: store_failure"
// @Router /me/notification-preferences [put]
func (c *NotificationController) SetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req NotificationPreferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	user, err := c.Service.SetNotificationsEnabled(r.Context(), userID, *req.NotificationsEnabled)
	if err != nil {
		logFailure(c.Logger, r, err)
		helpers.WriteServiceError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, user)
}

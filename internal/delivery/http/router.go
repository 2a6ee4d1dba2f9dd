package http

import (
	"log/slog"
	"net/http"

	"eventlottery/internal/delivery/http/controllers"
	"eventlottery/internal/delivery/http/helpers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events        *controllers.EventController
	Draws         *controllers.DrawController
	Invitations   *controllers.InvitationController
	Notifications *controllers.NotificationController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers, verifier domain.TokenVerifier, logger *slog.Logger, corsOrigins []string) http.Handler {
	mux := http.NewServeMux()
	authed := middleware.RequireAuth(verifier, logger)
	organizer := middleware.RequireRole(verifier, logger, domain.RoleOrganizer)

	// Organizer routes
	mux.HandleFunc("POST /events", organizer(c.Events.CreateEvent))
	mux.HandleFunc("POST /events/{eventID}/draws", organizer(c.Draws.RunDraw))
	mux.HandleFunc("POST /events/{eventID}/replacements", organizer(c.Draws.RunReplacement))
	mux.HandleFunc("POST /events/{eventID}/redraw", organizer(c.Draws.Redraw))
	mux.HandleFunc("POST /events/{eventID}/unresponsive/cancel", organizer(c.Draws.CancelUnresponsive))
	mux.HandleFunc("POST /events/{eventID}/notifications", organizer(c.Draws.NotifyPool))
	mux.HandleFunc("POST /sweeps", organizer(c.Draws.Sweep))

	// Entrant routes
	mux.HandleFunc("GET /events/{eventID}", authed(c.Events.GetEvent))
	mux.HandleFunc("POST /events/{eventID}/entries", authed(c.Events.JoinWaitingList))
	mux.HandleFunc("POST /events/{eventID}/entries/{entryID}/accept", authed(c.Invitations.Accept))
	mux.HandleFunc("POST /events/{eventID}/entries/{entryID}/decline", authed(c.Invitations.Decline))
	mux.HandleFunc("POST /events/{eventID}/entries/{entryID}/cancel", authed(c.Invitations.Cancel))
	mux.HandleFunc("GET /me/notifications", authed(c.Notifications.ListMine))
	mux.HandleFunc("PUT /me/notification-preferences", authed(c.Notifications.SetPreferences))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.Recover(logger, handler)
	handler = middleware.LoggingMiddleware(logger, handler)
	return middleware.CORS(corsOrigins, handler)
}

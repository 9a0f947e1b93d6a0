package http

import (
	"net/http"

	"foundly-backend/internal/security"

	"github.com/gorilla/mux"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	User    *UserHandler
	Org     *OrgHandler
	Hours   *HoursHandler
	Project *ProjectHandler
	Event   *EventHandler
	Message *MessageHandler
	Stats   *StatsHandler
}

// NewRouter wires all routes. Everything under /api except auth requires a
// valid access token.
func NewRouter(h Handlers, tokens security.TokenManager) http.Handler {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware, TimeoutMiddleware)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.Auth.Refresh).Methods(http.MethodPost)

	authed := api.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(tokens))

	authed.HandleFunc("/me", h.User.GetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/me", h.User.UpdateProfile).Methods(http.MethodPut)

	authed.HandleFunc("/orgs", h.Org.Create).Methods(http.MethodPost)
	authed.HandleFunc("/orgs", h.Org.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/join", h.Org.Join).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{orgID}", h.Org.Get).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{orgID}", h.Org.Update).Methods(http.MethodPut)
	authed.HandleFunc("/orgs/{orgID}/leave", h.Org.Leave).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{orgID}/current", h.Org.SetCurrent).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{orgID}/reconcile", h.Org.Reconcile).Methods(http.MethodPost)

	authed.HandleFunc("/hours", h.Hours.Log).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{orgID}/hours/mine", h.Hours.ListMine).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{orgID}/hours", h.Hours.ListForOrg).Methods(http.MethodGet)
	authed.HandleFunc("/hours/{logID}/review", h.Hours.Review).Methods(http.MethodPost)

	authed.HandleFunc("/projects", h.Project.Create).Methods(http.MethodPost)
	authed.HandleFunc("/projects/{projectID}", h.Project.Get).Methods(http.MethodGet)
	authed.HandleFunc("/projects/{projectID}", h.Project.Update).Methods(http.MethodPut)
	authed.HandleFunc("/projects/{projectID}", h.Project.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/orgs/{orgID}/projects", h.Project.ListForOrg).Methods(http.MethodGet)

	authed.HandleFunc("/events", h.Event.Create).Methods(http.MethodPost)
	authed.HandleFunc("/events/{eventID}", h.Event.Get).Methods(http.MethodGet)
	authed.HandleFunc("/events/{eventID}", h.Event.Update).Methods(http.MethodPut)
	authed.HandleFunc("/events/{eventID}", h.Event.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/events/{eventID}/rsvp", h.Event.RSVP).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{orgID}/events", h.Event.ListForOrg).Methods(http.MethodGet)

	authed.HandleFunc("/orgs/{orgID}/messages", h.Message.Post).Methods(http.MethodPost)
	authed.HandleFunc("/orgs/{orgID}/messages", h.Message.List).Methods(http.MethodGet)
	authed.HandleFunc("/messages/{messageID}", h.Message.Delete).Methods(http.MethodDelete)

	authed.HandleFunc("/orgs/{orgID}/stats", h.Stats.ForOrg).Methods(http.MethodGet)
	authed.HandleFunc("/orgs/{orgID}/stats/me", h.Stats.ForMe).Methods(http.MethodGet)

	return r
}

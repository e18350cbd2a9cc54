// Package httptransport assembles the HTTP surface: middleware chain,
// public auth endpoints, and the token-gated record and log endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	audithandler "rosterd/internal/audit/handler"
	authhandler "rosterd/internal/auth/handler"
	"rosterd/internal/platform/middleware"
	rosterhandler "rosterd/internal/roster/handler"
)

// Deps carries everything the router needs; main builds it once.
type Deps struct {
	Auth      *authhandler.Handler
	Roster    *rosterhandler.Handler
	AuditLog  *audithandler.Handler
	Validator middleware.TokenValidator
	Denylist  middleware.TokenDenylist
	Logger    *slog.Logger
}

// NewRouter wires all endpoints. The auth gate runs before any record or
// log handler, so a rejected token causes no side effects at all.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(d.Logger))

	// Public: registration doubles as implicit login.
	d.Auth.Register(r)

	// Token-gated.
	r.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth(d.Validator, d.Denylist, d.Logger))
		d.Auth.RegisterProtected(protected)
		d.Roster.Register(protected)
		d.AuditLog.Register(protected)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

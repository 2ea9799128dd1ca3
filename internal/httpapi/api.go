// Package httpapi is the HTTP surface of the Lexora gateway: route
// registration, authentication middleware, the authorization wrappers, and
// thin handlers that gate calls to the core backend.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"lexora.app/internal/audit"
	"lexora.app/internal/backend"
	"lexora.app/internal/identity"
	"lexora.app/internal/obs"
	"lexora.app/internal/portal"
	"lexora.app/internal/stream"
)

// ReadyProbe reports readiness; with a DB wired it pings it.
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Config wires the API's collaborators.
type Config struct {
	Version    string
	ReadyProbe ReadyProbe
	Resolver   *identity.Resolver
	Backend    *backend.Client
	Invites    *portal.Service
	AuditStore audit.Store
	Events     *stream.Hub

	// Rate limiting and body caps; zero values pick defaults.
	RateBurst     int
	RatePerSecond int
	MaxBodyBytes  int64
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string
	resolver   *identity.Resolver
	backend    *backend.Client
	invites    *portal.Service
	auditStore audit.Store
	events     *stream.Hub

	rateBurst     int
	ratePerSecond int
	maxBodyBytes  int64
}

// New assembles the API and registers all routes.
func New(cfg Config) (*API, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("httpapi: identity resolver is required")
	}
	if cfg.Backend == nil {
		return nil, errors.New("httpapi: backend client is required")
	}
	a := &API{
		mux:           http.NewServeMux(),
		readyProbe:    cfg.ReadyProbe,
		version:       cfg.Version,
		resolver:      cfg.Resolver,
		backend:       cfg.Backend,
		invites:       cfg.Invites,
		auditStore:    cfg.AuditStore,
		events:        cfg.Events,
		rateBurst:     cfg.RateBurst,
		ratePerSecond: cfg.RatePerSecond,
		maxBodyBytes:  cfg.MaxBodyBytes,
	}
	if a.rateBurst <= 0 {
		a.rateBurst = 50
	}
	if a.ratePerSecond <= 0 {
		a.ratePerSecond = 25
	}
	if a.maxBodyBytes <= 0 {
		a.maxBodyBytes = 1 << 20
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/v1/me", a.requireAuth(a.handleMe))
	a.mux.HandleFunc("/v1/features", a.requireAuth(a.handleFeatures))

	a.mux.HandleFunc("/v1/documents", a.handleDocuments)
	a.mux.HandleFunc("/v1/documents/", a.handleDocumentResource)
	a.mux.HandleFunc("/v1/cases", a.handleCases)
	a.mux.HandleFunc("/v1/cases/", a.handleCaseResource)
	a.mux.HandleFunc("/v1/contracts", a.handleContracts)
	a.mux.HandleFunc("/v1/contracts/", a.handleContractResource)
	a.mux.HandleFunc("/v1/clients", a.handleClients)
	a.mux.HandleFunc("/v1/clients/", a.handleClientResource)
	a.mux.HandleFunc("/v1/calendar/events", a.handleCalendarEvents)
	a.mux.HandleFunc("/v1/calendar/events/", a.handleCalendarEventResource)

	a.mux.HandleFunc("/v1/analysis/", a.handleAnalysisResource)
	a.mux.HandleFunc("/v1/moot/sessions", a.handleMootSessions)
	a.mux.HandleFunc("/v1/moot/sessions/", a.handleMootSessionResource)
	a.mux.HandleFunc("/v1/translations", a.handleTranslations)
	a.mux.HandleFunc("/v1/translations/", a.handleTranslationResource)

	a.mux.HandleFunc("/v1/portal/invites", a.handlePortalInvites)
	a.mux.HandleFunc("/v1/portal/invites/accept", a.handlePortalInviteAccept)

	a.mux.HandleFunc("/v1/audit/events", a.handleAuditEvents)
	a.mux.HandleFunc("/v1/audit/stream", a.handleAuditStream)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a, nil
}

// Handler returns the fully wrapped handler stack. Instrumentation sits
// outermost so every response, including middleware rejections, is counted.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = MaxBodyBytes(h, a.maxBodyBytes)
	h = RateLimit(h, a.rateBurst, a.ratePerSecond)
	h = LoggingJSON(h)
	h = RequestID(h)
	h = CORS(h)
	h = SecurityHeaders(h)
	return obs.Instrument(h)
}

// --- service handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "lexora-gateway",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "lexora-gateway",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := audit.RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleBackendError translates backend client failures into gateway
// responses without leaking upstream internals.
func handleBackendError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, backend.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "resource not found")
	case errors.Is(err, backend.ErrUnavailable):
		writeError(w, r, http.StatusBadGateway, "backend unavailable")
	case errors.As(err, &statusErr):
		msg := statusErr.Message
		if msg == "" {
			msg = "request rejected"
		}
		writeError(w, r, statusErr.Code, msg)
	default:
		writeError(w, r, http.StatusInternalServerError, "internal error")
	}
}

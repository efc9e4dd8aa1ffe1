// Package httpapi is the HTTP layer: routing, middleware, request/response
// shaping. Handlers validate at the boundary and delegate to the domain
// services; nothing below this package knows about HTTP.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"pawpad.org/internal/audit"
	"pawpad.org/internal/auth"
	"pawpad.org/internal/dogs"
	"pawpad.org/internal/envelope"
	"pawpad.org/internal/media"
	"pawpad.org/internal/obs"
	"pawpad.org/internal/placement"
)

const maxBodyBytes = 10 << 20

// ReadyProbe reports whether the process can serve traffic (DB reachable).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// Options carries the knobs main reads from configuration.
type Options struct {
	Version    string
	Production bool
	RateBurst  int
	RatePerSec int
}

// API is the HTTP surface of the service.
type API struct {
	mux        *http.ServeMux
	auth       *auth.Service
	dogs       *dogs.Service
	placements *placement.Service
	cipher     *envelope.Cipher
	media      media.Store
	readyProbe ReadyProbe
	version    string
	production bool
	rateBurst  int
	ratePerSec int
}

// New wires the route table.
func New(authSvc *auth.Service, kennel *dogs.Service, placements *placement.Service,
	cipher *envelope.Cipher, mediaStore media.Store, rp ReadyProbe, opts Options) *API {
	a := &API{
		mux:        http.NewServeMux(),
		auth:       authSvc,
		dogs:       kennel,
		placements: placements,
		cipher:     cipher,
		media:      mediaStore,
		readyProbe: rp,
		version:    opts.Version,
		production: opts.Production,
		rateBurst:  opts.RateBurst,
		ratePerSec: opts.RatePerSec,
	}

	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.Handle("/metrics", obs.Handler())

	a.mux.HandleFunc("/api/v1/auth/login", a.handleLogin)
	a.mux.HandleFunc("/api/v1/users", a.handleUsers)
	a.mux.HandleFunc("/api/v1/shelter", a.handleShelter)

	a.mux.HandleFunc("/api/v1/dogs", a.handleDogsCollection)
	a.mux.HandleFunc("/api/v1/dogs/", a.handleDogResource)

	a.mux.HandleFunc("/api/v1/shots", a.handleShotsCollection)
	a.mux.HandleFunc("/api/v1/shots/", a.handleShotResource)

	a.mux.HandleFunc("/api/v1/notes", a.handleNotesCollection)
	a.mux.HandleFunc("/api/v1/notes/", a.handleNoteResource)

	a.mux.HandleFunc("/api/v1/adoption", a.handleAdoptionCollection)
	a.mux.HandleFunc("/api/v1/adoption/", a.handleAdoptionResource)
	a.mux.HandleFunc("/api/v1/foster", a.handleFosterCollection)
	a.mux.HandleFunc("/api/v1/foster/", a.handleFosterResource)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the full middleware chain around the route table.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.withAuth(a.mux)
	h = obs.Instrument(h)
	h = LoggingJSON(h)
	if a.rateBurst > 0 && a.ratePerSec > 0 {
		h = RateLimit(h, a.rateBurst, a.ratePerSec)
	}
	h = MaxBodyBytes(h, maxBodyBytes)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = RequestID(h)
	return h
}

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "pawpad-api",
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
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
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

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// handleStoreError is the centralized fallback for failures that are not a
// client's fault. Production mode suppresses the underlying message.
func (a *API) handleStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dogs.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	obs.LogRequest(map[string]any{
		"level":      "error",
		"msg":        "request_failed",
		"method":     r.Method,
		"path":       r.URL.Path,
		"error":      err.Error(),
		"request_id": audit.RequestIDFromContext(r.Context()),
	})
	if a.production {
		writeError(w, r, http.StatusInternalServerError, "server error")
		return
	}
	writeError(w, r, http.StatusInternalServerError, err.Error())
}

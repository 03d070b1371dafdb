// Package fakeapi is an in-memory implementation of the RootShare REST API.
//
// It is development tooling only: it backs the client's integration tests
// and the local devapi command, and the client itself never imports it.
// State lives in memory and is lost on exit. Tokens are real HS256 JWTs
// and passwords are bcrypt hashes, so the client sees the same shapes as in
// production. Test hooks can force a status on the
// next call of a route, invalidate every access token, and count calls.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/rootshare/internal/client/models"
	"github.com/dmitrijs2005/rootshare/internal/common"
	"github.com/dmitrijs2005/rootshare/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

type account struct {
	user models.User
	hash []byte
}

// postRecord keeps the plant reference; responses embed the plant itself.
type postRecord struct {
	post    models.Post
	plantID string
}

type API struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        logging.Logger

	mu         sync.Mutex
	accounts   map[string]*account // by user id
	byEmail    map[string]string
	byUsername map[string]string
	refresh    map[string]string // live refresh token jti -> user id
	gen        int
	plants     []*models.Plant
	posts      []*postRecord
	calls      map[string]int
	forced     map[string][]int
	requestIDs []string
}

type Option func(*API)

func WithAccessTTL(d time.Duration) Option {
	return func(a *API) { a.accessTTL = d }
}

func WithLogger(l logging.Logger) Option {
	return func(a *API) { a.log = l }
}

func New(secret []byte, opts ...Option) *API {
	a := &API{
		secret:     secret,
		accessTTL:  defaultAccessTTL,
		refreshTTL: defaultRefreshTTL,
		log:        logging.Discard(),
		accounts:   map[string]*account{},
		byEmail:    map[string]string{},
		byUsername: map[string]string{},
		refresh:    map[string]string{},
		calls:      map[string]int{},
		forced:     map[string][]int{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewTestServer starts the API on a local port for the duration of the test
// and returns it with its base URL (ending in /api/).
func NewTestServer(tb testing.TB, opts ...Option) (*API, string) {
	tb.Helper()
	a := New([]byte("test-secret"), opts...)
	srv := httptest.NewServer(a.Handler())
	tb.Cleanup(srv.Close)
	return a, srv.URL + "/api/"
}

// Handler serves the API under /api.
func (a *API) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(a.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", a.route("auth/register", a.handleRegister))
		r.Post("/auth/login", a.route("auth/login", a.handleLogin))
		r.Post("/auth/google/token", a.route("auth/google/token", a.handleGoogle))
		r.Post("/auth/refresh", a.route("auth/refresh", a.handleRefresh))

		r.Post("/auth/logout", a.route("auth/logout", a.authed(a.handleLogout)))
		r.Get("/auth/me", a.route("auth/me", a.authed(a.handleMe)))

		r.Get("/plants", a.route("plants", a.authed(a.handleListPlants)))
		r.Post("/plants", a.route("plants", a.authed(a.handleCreatePlant)))
		r.Get("/plants/featured", a.route("plants/featured", a.authed(a.handleFeaturedPlants)))
		r.Get("/plants/{id}", a.route("plants/{id}", a.authed(a.handleGetPlant)))
		r.Patch("/plants/{id}", a.route("plants/{id}", a.authed(a.handleUpdatePlant)))
		r.Delete("/plants/{id}", a.route("plants/{id}", a.authed(a.handleDeletePlant)))

		r.Get("/posts", a.route("posts", a.authed(a.handleListPosts)))
		r.Post("/posts", a.route("posts", a.authed(a.handleCreatePost)))
		r.Get("/posts/{id}", a.route("posts/{id}", a.authed(a.handleGetPost)))
		r.Patch("/posts/{id}", a.route("posts/{id}", a.authed(a.handleUpdatePost)))
		r.Delete("/posts/{id}", a.route("posts/{id}", a.authed(a.handleDeletePost)))
	})
	return r
}

func (a *API) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		a.log.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get(common.RequestIDHeaderName),
			"duration", time.Since(start))
	})
}

// route counts the call, records the request id and applies a forced
// status before running h.
func (a *API) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.calls[name]++
		a.requestIDs = append(a.requestIDs, r.Header.Get(common.RequestIDHeaderName))
		var forced int
		if q := a.forced[name]; len(q) > 0 {
			forced, a.forced[name] = q[0], q[1:]
		}
		a.mu.Unlock()

		if forced != 0 {
			writeError(w, forced, "forced by test")
			return
		}
		h(w, r)
	}
}

// FailNext makes the next calls of route answer with the given statuses,
// one per call, before normal handling resumes. Route names match the
// client's endpoint labels, e.g. "auth/me" or "plants/{id}".
func (a *API) FailNext(route string, statuses ...int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.forced[route] = append(a.forced[route], statuses...)
}

// ExpireAccessTokens invalidates every access token issued so far. Refresh
// tokens stay valid.
func (a *API) ExpireAccessTokens() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.gen++
}

// RevokeRefreshTokens invalidates every refresh token issued so far.
func (a *API) RevokeRefreshTokens() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refresh = map[string]string{}
}

// Calls returns how many requests reached route.
func (a *API) Calls(route string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls[route]
}

// TotalCalls returns the number of requests across all routes.
func (a *API) TotalCalls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, c := range a.calls {
		n += c
	}
	return n
}

// RequestIDs returns the X-Request-ID of every routed request, in order.
func (a *API) RequestIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requestIDs...)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"message": msg})
}

func decode(r *http.Request, v any) bool {
	return json.NewDecoder(r.Body).Decode(v) == nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

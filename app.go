package mockql

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/broady/mockql/middleware"
)

const (
	DefaultControlPath = "/__mock/update"
	DefaultQueryPath   = "/graphql"
	DefaultAdminPrefix = "/__mock"

	defaultMaxRequestBodySize = 1 << 20 // 1MB
)

// App routes requests to the mock server. In order, first match wins:
// OPTIONS preflight, the reload control path, the GraphQL query path, the
// admin reads, and finally the REST lookup of configured endpoints.
// Use Handler() to get an http.Handler for use with http.ListenAndServe.
type App struct {
	store              *Store
	reloader           *Reloader
	logger             *slog.Logger
	middlewares        []func(http.Handler) http.Handler
	cors               *middleware.CORSConfig
	errorTransformer   ErrorTransformer
	maxRequestBodySize int64
	controlPath        string
	queryPath          string
	adminPrefix        string
}

// NewApp creates an App serving snapshots from store. reloader handles the
// control path; with a nil reloader the control path answers 404.
func NewApp(store *Store, reloader *Reloader) *App {
	return &App{
		store:              store,
		reloader:           reloader,
		maxRequestBodySize: defaultMaxRequestBodySize,
		controlPath:        DefaultControlPath,
		queryPath:          DefaultQueryPath,
		adminPrefix:        DefaultAdminPrefix,
	}
}

// WithLogger sets a custom logger for the app.
// If not set, slog.Default() will be used.
func (a *App) WithLogger(logger *slog.Logger) *App {
	a.logger = logger
	return a
}

// WithMiddleware adds an HTTP middleware to wrap the app.
// Middleware is applied in the order added (first added is outermost), inside
// CORS handling and request id assignment.
func (a *App) WithMiddleware(mw func(http.Handler) http.Handler) *App {
	a.middlewares = append(a.middlewares, mw)
	return a
}

// WithCORS replaces the default permissive CORS configuration.
func (a *App) WithCORS(cfg *middleware.CORSConfig) *App {
	a.cors = cfg
	return a
}

// WithErrorTransformer adds a custom error transformer.
func (a *App) WithErrorTransformer(fn ErrorTransformer) *App {
	a.errorTransformer = fn
	return a
}

// WithMaxRequestBodySize caps the body of control and query requests.
// A value of 0 means no limit. Default is 1MB (1 << 20).
func (a *App) WithMaxRequestBodySize(size int64) *App {
	a.maxRequestBodySize = size
	return a
}

// WithControlPath sets the path that accepts new configurations.
func (a *App) WithControlPath(path string) *App {
	a.controlPath = normalizePath(path)
	return a
}

// WithQueryPath sets the GraphQL endpoint path.
func (a *App) WithQueryPath(path string) *App {
	a.queryPath = normalizePath(path)
	return a
}

// WithAdminPrefix sets the prefix of the read-only admin endpoints.
func (a *App) WithAdminPrefix(prefix string) *App {
	a.adminPrefix = strings.TrimSuffix(normalizePath(prefix), "/")
	return a
}

func normalizePath(p string) string {
	if !strings.HasPrefix(p, "/") {
		return "/" + p
	}
	return p
}

func (a *App) log() *slog.Logger {
	if a.logger == nil {
		return slog.Default()
	}
	return a.logger
}

// Handler returns an http.Handler for use with http.ListenAndServe or other
// HTTP servers. The returned handler includes all configured middleware.
//
// Example:
//
//	app := mockql.NewApp(store, reloader).WithMiddleware(middleware.Logging(logger))
//	http.ListenAndServe(":3001", app.Handler())
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(a.recoverer)

	if a.reloader != nil {
		r.Post(a.controlPath, a.handleReload)
	}
	r.Post(a.queryPath, a.handleQuery)

	// Admin routes answer HEAD like GET; net/http drops the body.
	admin := map[string]http.HandlerFunc{
		"/endpoints":  a.handleEndpoints,
		"/schema":     a.handleSchema,
		"/playground": a.handlePlayground(),
		"/health":     a.handleHealth,
	}
	for path, h := range admin {
		r.Get(a.adminPrefix+path, h)
		r.Head(a.adminPrefix+path, h)
	}

	// Everything else is a REST lookup, including other methods on the
	// paths above.
	r.NotFound(a.handleREST)
	r.MethodNotAllowed(a.handleREST)

	var h http.Handler = r
	// Apply middleware in reverse order so first added is outermost
	for i := len(a.middlewares) - 1; i >= 0; i-- {
		h = a.middlewares[i](h)
	}
	h = chimw.RequestID(h)
	return middleware.CORS(a.cors)(h)
}

func (a *App) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				a.log().Error("PANIC recovered",
					slog.Any("panic", rec),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())))
				writeError(w, NewError(CodeInternal, fmt.Sprintf("internal server error (panic): %v", rec)), a.logger)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (a *App) transformError(err error) *Error {
	if a.errorTransformer != nil {
		if e := a.errorTransformer(err); e != nil {
			return e
		}
	}
	return DefaultErrorTransformer(err)
}

func (a *App) limitBody(w http.ResponseWriter, r *http.Request) {
	if a.maxRequestBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.maxRequestBodySize)
	}
}

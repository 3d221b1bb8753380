package handler

import (
	"io"
	"net/http"

	"docx-recovery/internal/domain"
	"docx-recovery/pkg/telemetry"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RouterOptions carries the cross-cutting pieces wrapped around the routes
type RouterOptions struct {
	AllowedOrigins []string
	RateLimiter    *RateLimiter
	AccessLog      io.Writer
	Logger         domain.Logger
	Tracing        *telemetry.Tracing
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(recoveryHandler *RecoveryHandler, systemHandler *SystemHandler, opts RouterOptions) http.Handler {
	router := mux.NewRouter()
	router.Use(Recoverer(opts.Logger))

	router.HandleFunc("/version", systemHandler.Version).Methods("GET")
	router.HandleFunc("/status", systemHandler.Status).Methods("GET")
	router.HandleFunc("/", recoveryHandler.Recover).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPut,
			http.MethodPatch,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	})

	// Outermost first: security headers, tracing, rate limit, access log, CORS, routes.
	var h http.Handler = c.Handler(router)
	if opts.AccessLog != nil {
		h = AccessLog(opts.AccessLog)(h)
	}
	if opts.RateLimiter != nil {
		h = opts.RateLimiter.Middleware(h)
	}
	if opts.Tracing != nil {
		h = opts.Tracing.Handler(h, "docx-recovery")
	}
	return SecurityHeaders(DefaultSecurityHeaders())(h)
}

package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/flowhire/scheduling-backend-go/internal/handler/http/middleware"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	frontendURL string,
	bookingHandler BookingHandler,
	bookingLinkHandler BookingLinkHandler,
	appointmentHandler AppointmentHandler,
	candidateHandler CandidateHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "scheduling-flowhire"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		// Public booking surface. The link secret in the URL is the only
		// credential a candidate has.
		r.Route("/booking/{token}", func(r chi.Router) {
			r.Get("/", bookingHandler.ValidateLink)
			r.Get("/slots", bookingHandler.GetSlots)
			r.Get("/availability", bookingHandler.GetAvailability)
			r.Post("/reserve", bookingHandler.Reserve)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/booking-links", func(r chi.Router) {
				r.Post("/", bookingLinkHandler.IssueLink)
				r.Get("/", bookingLinkHandler.ListLinks)
				r.Delete("/{id}", bookingLinkHandler.RevokeLink)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", appointmentHandler.ListByCandidate)
				r.Get("/{id}", appointmentHandler.GetAppointment)
				r.Post("/{id}/resolve", appointmentHandler.ResolveAppointment)
			})

			r.Route("/candidates/{id}", func(r chi.Router) {
				r.Patch("/status", candidateHandler.UpdateStatus)
				r.Get("/facts", candidateHandler.ListFacts)
			})
		})
	})
	return r
}

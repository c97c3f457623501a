package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

func NewRouter(
	regularizationHandler RegularizationHandler,
	attendanceHandler AttendanceHandler,
	checkinHandler CheckinHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "biotrack-hr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/regularizations", func(r chi.Router) {
			r.Get("/", regularizationHandler.ListRequests)
			r.Post("/", regularizationHandler.CreateRequest)
			r.Get("/eligibility", regularizationHandler.CheckEligibility)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", regularizationHandler.GetRequest)
				r.Post("/approve", regularizationHandler.ApproveRequest)
				r.Post("/reject", regularizationHandler.RejectRequest)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/derived", attendanceHandler.GetDerived)
			r.Post("/reconstruct", attendanceHandler.Reconstruct)
			r.Get("/missing-checkins", attendanceHandler.MissingCheckins)
		})

		r.Route("/checkins", func(r chi.Router) {
			r.Post("/import", checkinHandler.Import)
		})
	})

	return r
}

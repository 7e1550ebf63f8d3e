package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayush/edusync-gateway/internal/assessment"
	"github.com/ayush/edusync-gateway/internal/auth"
	"github.com/ayush/edusync-gateway/internal/course"
	"github.com/ayush/edusync-gateway/internal/middleware"
)

func newRouter(allowedOrigins []string, guard middleware.Guard, authHandler *auth.Handler, courseHandler *course.Handler, assessmentHandler *assessment.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.IdempotencyHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// The guard keys on the socket peer, so it sits before RealIP.
	r.Use(middleware.InFlight(guard))
	r.Use(chimw.RealIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
		r.Get("/users/{id}", authHandler.User)

		r.Route("/courses", func(r chi.Router) {
			r.Get("/", courseHandler.List)
			r.Post("/", courseHandler.Create)
			r.Post("/media", courseHandler.UploadMedia)
			r.Put("/{id}", courseHandler.Update)
			r.Delete("/{id}", courseHandler.Delete)
		})

		r.Route("/assessments", func(r chi.Router) {
			r.Get("/", assessmentHandler.List)
			r.Post("/", assessmentHandler.Create)
			r.Get("/{id}", assessmentHandler.Get)
			r.Put("/{id}", assessmentHandler.Update)
			r.Delete("/{id}", assessmentHandler.Delete)
		})

		r.Post("/results", assessmentHandler.Submit)
		r.Get("/results", assessmentHandler.Results)

		r.Route("/students/{id}", func(r chi.Router) {
			r.Get("/courses", courseHandler.Enrolled)
			r.Get("/results", assessmentHandler.Completed)
			r.Get("/average", assessmentHandler.Average)
		})
	})

	return r
}

package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mindverse-hq/taskdeck/pkg/usecase"
	"github.com/mindverse-hq/taskdeck/pkg/utils/logging"
)

type Server struct {
	router    *chi.Mux
	noAuthUID string
}

type Options func(*Server)

// WithNoAuth enables development mode: every request runs as a fabricated
// privileged principal with the given user ID instead of requiring identity
// headers.
func WithNoAuth(uid string) Options {
	return func(s *Server) {
		s.noAuthUID = uid
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	// Everything below requires an identity
	r.Group(func(r chi.Router) {
		r.Use(principalMiddleware(s.noAuthUID))

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", createTaskHandler(uc))
			r.Get("/", listTasksHandler(uc))
			r.Route("/{taskID}", func(r chi.Router) {
				r.Get("/", getTaskHandler(uc))
				r.Patch("/status", updateTaskStatusHandler(uc))
				r.Put("/", updateTaskHandler(uc))
				r.Delete("/", deleteTaskHandler(uc))
			})
		})

		r.Route("/meetings", func(r chi.Router) {
			r.Post("/analyze-task", analyzeTaskHandler(uc))
			r.Post("/schedule", scheduleMeetingHandler(uc))
			r.Get("/", listMeetingsHandler(uc))
			r.Get("/{meetingID}", getMeetingHandler(uc))
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

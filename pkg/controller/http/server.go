package http

import (
	"net/http"
	"time"

	"github.com/gametheory-pro/gtpro/pkg/usecase"
	"github.com/gametheory-pro/gtpro/pkg/utils/async"
	"github.com/gametheory-pro/gtpro/pkg/utils/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	router     *chi.Mux
	uc         *usecase.UseCases
	dispatcher *async.Dispatcher
	keepAlive  time.Duration
}

type Options func(*Server)

// WithKeepAlive sets the interval of comment frames on the event stream
func WithKeepAlive(d time.Duration) Options {
	return func(s *Server) {
		s.keepAlive = d
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:     r,
		uc:         uc,
		dispatcher: &async.Dispatcher{},
		keepAlive:  25 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/health", healthHandler)

	r.Route("/functions/v1", func(r chi.Router) {
		r.Use(authMiddleware(uc))
		r.Post("/scenario-simulation", scenarioSimulationHandler(uc))
		r.Post("/risk-assessment", riskAssessmentHandler(uc))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(uc))

		r.Get("/me", meHandler(uc))
		r.Put("/me", updateProfileHandler(uc))

		r.Route("/risk", func(r chi.Router) {
			r.Get("/history", riskHistoryHandler(uc))
			r.Get("/{region}", riskHandler(uc))
		})

		r.Route("/crisis", func(r chi.Router) {
			r.Get("/alerts", crisisAlertsHandler(uc))
			r.Get("/events", crisisEventsHandler(uc))
			r.Post("/refresh", crisisRefreshHandler(uc, s.dispatcher))
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", listScenariosHandler(uc))
			r.Post("/", createScenarioHandler(uc))
			r.Get("/{scenarioID}", getScenarioHandler(uc))
			r.Post("/{scenarioID}/simulate", simulateScenarioHandler(uc))
			r.Post("/{scenarioID}/archive", archiveScenarioHandler(uc))
		})
		r.Get("/simulations", listSimulationsHandler(uc))

		r.Get("/predictions/{region}", predictionsHandler(uc))
		r.Get("/signals/{region}", signalsHandler(uc))

		r.Route("/workspaces", func(r chi.Router) {
			r.Get("/", listWorkspacesHandler(uc))
			r.Post("/", createWorkspaceHandler(uc))
			r.Route("/{workspaceID}", func(r chi.Router) {
				r.Get("/", getWorkspaceHandler(uc))
				r.Patch("/", updateWorkspaceHandler(uc))
				r.Delete("/", deleteWorkspaceHandler(uc))
				r.Post("/participants", addParticipantHandler(uc))
				r.Delete("/participants/{userID}", removeParticipantHandler(uc))
				r.Post("/tasks", addTaskHandler(uc))
				r.Patch("/tasks/{taskID}", updateTaskHandler(uc))
				r.Post("/discussions", addDiscussionHandler(uc))
				r.Post("/documents", addDocumentHandler(uc))
				r.Get("/insights", workspaceInsightsHandler(uc))
			})
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", listNotificationsHandler(uc))
			r.Post("/{notificationID}/read", markNotificationReadHandler(uc))
			r.Delete("/{notificationID}", deleteNotificationHandler(uc))
		})

		r.Get("/learning", listLearningHandler(uc))
		r.Put("/learning/{moduleID}", saveLearningHandler(uc))

		r.Route("/alert-configs", func(r chi.Router) {
			r.Get("/", listAlertConfigsHandler(uc))
			r.Post("/", saveAlertConfigHandler(uc))
			r.Delete("/{configID}", deleteAlertConfigHandler(uc))
		})

		r.Route("/features/{feature}", func(r chi.Router) {
			r.Get("/", featureHandler(uc))
			r.Post("/dismiss", dismissFeatureHandler(uc))
			r.Delete("/dismiss", restoreFeatureHandler(uc))
		})

		r.Get("/stream", streamHandler(uc, s.keepAlive))
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Wait blocks until background work started by requests has finished
func (s *Server) Wait() {
	s.dispatcher.Wait()
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
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

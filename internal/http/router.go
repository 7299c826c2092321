package http

import (
	"net/http"

	"github.com/lovey25/hobeom-portal-sub001/internal/auth"
	"github.com/lovey25/hobeom-portal-sub001/internal/config"
	"github.com/lovey25/hobeom-portal-sub001/internal/daily"
	"github.com/lovey25/hobeom-portal-sub001/internal/http/handler"
	mw "github.com/lovey25/hobeom-portal-sub001/internal/http/middleware"
	"github.com/lovey25/hobeom-portal-sub001/internal/jobs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, db *gorm.DB, jwtSvc *auth.JWT, resolver *daily.Resolver) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: db, JWT: jwtSvc}
	r.Post("/auth/register", ah.Register)
	r.Post("/auth/login", ah.Login)

	me := &handler.MeHandler{}
	r.With(auth.RequireAuth(jwtSvc)).Get("/me", me.Me)

	store := &daily.PostgresStore{DB: db}
	registry := &daily.Registry{Store: store}
	logbook := &daily.Logbook{Store: store}
	aggregator := &daily.Aggregator{Store: store}
	detector := &daily.Detector{Aggregator: aggregator, Resolver: resolver}
	notifier := &daily.Notifier{Recorder: &jobs.Repo{DB: db}}

	dh := &handler.DailyHandler{
		Registry:   registry,
		Logbook:    logbook,
		Aggregator: aggregator,
		Notifier:   notifier,
	}
	dr := &handler.DailyReadHandler{
		Registry:   registry,
		Logbook:    logbook,
		Detector:   detector,
		Aggregator: aggregator,
	}

	r.Route("/daily", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Get("/today", dr.Today)
		r.Get("/stats", dr.Stats)

		r.Post("/tasks", dh.CreateTask)
		r.Patch("/tasks/{id}", dh.RenameTask)
		r.Delete("/tasks/{id}", dh.DeactivateTask)
		r.Patch("/tasks/{id}/toggle", dh.Toggle)
		r.Patch("/tasks/{id}/reorder", dh.Reorder)
	})

	adm := &handler.AdminHandler{Store: store, Resolver: resolver}
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))
		r.Use(auth.RequireRole(auth.RoleAdmin))

		r.Get("/daily/status", adm.AllUsersStatus)
	})

	return r
}

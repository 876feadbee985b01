// Package httpapi exposes the engine and account service over HTTP/JSON.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retroboard/internal/accounts"
	"retroboard/internal/collab"
	"retroboard/internal/metrics"
)

type Config struct {
	InviteWebURL   string
	AppScheme      string
	PublicBaseURL  string
	UploadDir      string
	PostPictureDir string
	CORSOrigins    []string
}

// Pinger reports database health.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type api struct {
	engine   *collab.Engine
	accounts *accounts.Service
	db       Pinger
	log      *slog.Logger
	cfg      Config

	// rate limiting buckets per IP:key
	rlMu sync.Mutex
	rl   map[string]*rateBucket
}

// New builds the full handler tree, request logging included.
func New(engine *collab.Engine, accts *accounts.Service, db Pinger, log *slog.Logger, cfg Config) http.Handler {
	a := &api{engine: engine, accounts: accts, db: db, log: log, cfg: cfg, rl: map[string]*rateBucket{}}
	return withLogging(log, a.routes())
}

func (a *api) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: a.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	r.Use(metrics.InstrumentHandler)

	r.Get("/healthz", a.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/colors", a.handleColors)

	// accounts
	r.Post("/register", a.withRateLimit("register", 20, time.Minute, a.handleRegister))
	r.Post("/registerLDAP", a.withRateLimit("register", 20, time.Minute, a.handleRegisterDirectory))
	r.Post("/login", a.withRateLimit("login", 30, time.Minute, a.handleLogin))
	r.Post("/forgot", a.withRateLimit("forgot", 10, time.Minute, a.handleForgot))
	r.Get("/me", a.handleMe)
	r.Get("/home/{id}", a.handleHome)
	r.Get("/profile/{id}", a.handleProfile)
	r.Get("/settings/{id}", a.handleGetSettings)
	r.Patch("/settings/{id}", a.handleUpdateSettings)
	r.Delete("/settings/{id}", a.handleDeleteAccount)
	r.Post("/upload-avatar/{id}", a.handleUploadAvatar)
	r.Post("/upload-post-picture", a.handleUploadPostPicture)

	// boards
	r.Post("/boards", a.handleCreateBoard)
	r.Get("/boards/user/{userID}", a.handleBoardsForUser)
	r.Get("/boards/{boardID}", a.handleGetBoard)
	r.Delete("/boards/{boardID}/delete", a.handleDeleteBoard)
	r.Get("/api/boards/{boardID}/members", a.handleListMembers)
	r.Post("/leaveBoard", a.handleLeave)
	r.Post("/kickUserFromBoard", a.handleKick)

	r.Post("/boards/{boardID}/columns", a.handleAddColumn)
	r.Put("/boards/{boardID}/columns/{columnID}", a.handleRenameColumn)
	r.Delete("/boards/{boardID}/columns/{columnID}", a.handleDeleteColumn)
	r.Post("/boards/{boardID}/columns/{columnID}/add", a.handleAddRecord)
	r.Delete("/boards/{boardID}/columns/{columnID}/delete", a.handleDeleteRecord)

	// invites
	r.Post("/boards/{boardID}/invite", a.handleInviteByTag)
	r.Post("/boards/{boardID}/invite-link", a.handleCreateInviteLink)
	r.Get("/invite/{token}", a.handleInvitePage)
	r.Get("/invite/{token}/board-name", a.handleInviteBoardName)
	r.Post("/invite/{token}/respond", a.handleRespondInvite)

	// feed
	r.Get("/posts", a.handleFeed)
	r.Post("/add_posts", a.handleAddPost)
	r.Patch("/posts/{id}/views", a.handleIncrementViews)

	// static uploads
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(a.cfg.UploadDir))))
	r.Handle("/post-pictures/*", http.StripPrefix("/post-pictures/", http.FileServer(http.Dir(a.cfg.PostPictureDir))))
	return r
}

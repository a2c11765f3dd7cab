package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mwestby/choreboard/internal/email"
	"github.com/mwestby/choreboard/internal/handler"
	"github.com/mwestby/choreboard/internal/middleware"
	"github.com/mwestby/choreboard/internal/service"
	"github.com/mwestby/choreboard/internal/store"
	ws "github.com/mwestby/choreboard/internal/websocket"
)

// Config carries the deployment settings main reads from the environment.
type Config struct {
	AdminEmail string
}

type Server struct {
	db            *sql.DB
	hub           *ws.Hub
	authH         *handler.AuthHandler
	householdH    *handler.HouseholdHandler
	categoryH     *handler.CategoryHandler
	taskH         *handler.TaskHandler
	groceryH      *handler.GroceryHandler
	adminH        *handler.AdminHandler
	sessionStore  *store.SessionStore
	profileStore  *store.ProfileStore
	resetStore    *store.PasswordResetStore
	rateLimiter   *middleware.RateLimiter
	logger        *slog.Logger
}

func New(db *sql.DB, mailer *email.Client, cfg Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	profileStore := store.NewProfileStore(db)
	categoryStore := store.NewCategoryStore(db)
	taskStore := store.NewTaskStore(db)
	eventStore := store.NewCompletionEventStore(db)
	groceryStore := store.NewGroceryStore(db)
	sessionStore := store.NewSessionStore(db)
	resetStore := store.NewPasswordResetStore(db)

	authSvc := service.NewAuthService(profileStore, sessionStore, resetStore, mailer, cfg.AdminEmail, logger)
	taskSvc := service.NewTaskService(taskStore, categoryStore, eventStore, logger)
	categorySvc := service.NewCategoryService(categoryStore, taskStore, logger)
	grocerySvc := service.NewGroceryService(groceryStore, logger)
	householdSvc := service.NewHouseholdService(profileStore, categoryStore, taskStore, eventStore, groceryStore, logger)
	adminSvc := service.NewAdminService(profileStore, taskStore, eventStore, sessionStore, logger)

	return &Server{
		db:           db,
		hub:          hub,
		authH:        handler.NewAuthHandler(authSvc, logger.With("component", "auth_handler")),
		householdH:   handler.NewHouseholdHandler(householdSvc, adminSvc, hub, logger.With("component", "household_handler")),
		categoryH:    handler.NewCategoryHandler(categorySvc, hub, logger.With("component", "category_handler")),
		taskH:        handler.NewTaskHandler(taskSvc, hub, logger.With("component", "task_handler")),
		groceryH:     handler.NewGroceryHandler(grocerySvc, hub, logger.With("component", "grocery_handler")),
		adminH:       handler.NewAdminHandler(adminSvc, hub, logger.With("component", "admin_handler")),
		sessionStore: sessionStore,
		profileStore: profileStore,
		resetStore:   resetStore,
		rateLimiter:  middleware.NewRateLimiter(),
		logger:       logger,
	}
}

// SessionStore returns the session store for cleanup tasks.
func (s *Server) SessionStore() *store.SessionStore {
	return s.sessionStore
}

// PasswordResetStore returns the reset store for cleanup tasks.
func (s *Server) PasswordResetStore() *store.PasswordResetStore {
	return s.resetStore
}

// RateLimiter returns the rate limiter for cleanup tasks.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes, rate limited by client IP
	outerMux.HandleFunc("GET /health", s.healthHandler)
	outerMux.HandleFunc("POST /api/register", s.rateLimitedHandler(s.authH.Register))
	outerMux.HandleFunc("POST /api/login", s.rateLimitedHandler(s.authH.Login))
	outerMux.HandleFunc("POST /api/password-reset", s.rateLimitedHandler(s.authH.RequestPasswordReset))
	outerMux.HandleFunc("POST /api/password-reset/confirm", s.rateLimitedHandler(s.authH.ConfirmPasswordReset))

	// Everything else requires a bearer session
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)

	authMiddleware := middleware.RequireAuth(s.sessionStore, s.profileStore)
	outerMux.Handle("/", authMiddleware(protectedMux))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) rateLimitedHandler(h http.HandlerFunc) http.HandlerFunc {
	keyFunc := func(r *http.Request) string {
		return middleware.RealIP(r)
	}
	rl := middleware.RateLimit(s.rateLimiter, keyFunc, 10, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		rl(http.HandlerFunc(h)).ServeHTTP(w, r)
	}
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/logout", s.authH.Logout)

	mux.HandleFunc("GET /api/profile", s.householdH.Profile)
	mux.HandleFunc("GET /api/household", s.householdH.Load)
	mux.Handle("DELETE /api/household/members/{id}", middleware.RequireAdmin(http.HandlerFunc(s.householdH.RemoveMember)))

	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)
	mux.HandleFunc("PUT /api/categories/{id}", s.categoryH.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", s.categoryH.Delete)

	mux.HandleFunc("GET /api/tasks", s.taskH.List)
	mux.HandleFunc("POST /api/tasks", s.taskH.Create)
	mux.HandleFunc("PUT /api/tasks/{id}", s.taskH.Update)
	mux.HandleFunc("DELETE /api/tasks/{id}", s.taskH.Delete)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.taskH.Toggle)

	mux.HandleFunc("GET /api/completions", s.taskH.Completions)
	mux.HandleFunc("GET /api/summary", s.taskH.Summary)

	mux.HandleFunc("GET /api/groceries", s.groceryH.List)
	mux.HandleFunc("POST /api/groceries", s.groceryH.Create)
	mux.HandleFunc("PUT /api/groceries/{id}", s.groceryH.Update)
	mux.HandleFunc("DELETE /api/groceries/{id}", s.groceryH.Delete)
	mux.HandleFunc("POST /api/groceries/clear", s.groceryH.Clear)
	mux.HandleFunc("GET /api/groceries/recent", s.groceryH.Recent)
	mux.HandleFunc("POST /api/groceries/restore", s.groceryH.Restore)

	mux.Handle("POST /api/admin/reset-completions", middleware.RequireAdmin(http.HandlerFunc(s.adminH.ResetCompletions)))
	mux.Handle("POST /api/admin/reset-tasks", middleware.RequireAdmin(http.HandlerFunc(s.adminH.ResetTasks)))

	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.logger.With("component", "websocket")))
}

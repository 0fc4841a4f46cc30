package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/assemblie-checkin/internal/api/handler"
	"github.com/mcoot/assemblie-checkin/internal/api/middleware"
	"github.com/mcoot/assemblie-checkin/internal/api/response"
	"github.com/mcoot/assemblie-checkin/internal/metrics"
	commonmw "github.com/mcoot/assemblie-checkin/internal/middleware"
	"github.com/mcoot/assemblie-checkin/internal/services/attendance"
	"github.com/mcoot/assemblie-checkin/internal/services/auth"
	"github.com/mcoot/assemblie-checkin/internal/services/group"
	"github.com/mcoot/assemblie-checkin/internal/services/household"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	Metrics           *metrics.Metrics
	AuthService       *auth.Service
	HouseholdService  *household.Service
	GroupController   *group.Controller
	AttendanceService *attendance.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	memberHandler := handler.NewMemberHandler(cfg.AuthService, cfg.HouseholdService)
	groupHandler := handler.NewGroupHandler(cfg.GroupController)
	attendanceHandler := handler.NewAttendanceHandler(cfg.AttendanceService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := commonmw.Logging(cfg.Logger, cfg.Metrics)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(commonmw.RequestID)
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Member routes (no auth required for registering/logging in)
	api.HandleFunc("/members/register", memberHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/members/login", memberHandler.Login).Methods(http.MethodPost)

	// Protected member routes
	members := api.PathPrefix("/members").Subrouter()
	members.Use(authMiddleware)
	members.HandleFunc("/me", memberHandler.GetMe).Methods(http.MethodGet)
	members.HandleFunc("/me/dependents", memberHandler.AddDependent).Methods(http.MethodPost)
	members.HandleFunc("/me/dependents", memberHandler.ListDependents).Methods(http.MethodGet)

	// Group routes (all require auth)
	groups := api.PathPrefix("/groups").Subrouter()
	groups.Use(authMiddleware)
	groups.HandleFunc("", groupHandler.Create).Methods(http.MethodPost)
	groups.HandleFunc("", groupHandler.List).Methods(http.MethodGet)
	groups.HandleFunc("/{code}", groupHandler.Get).Methods(http.MethodGet)
	groups.HandleFunc("/{code}/activate", groupHandler.Activate).Methods(http.MethodPost)
	groups.HandleFunc("/{code}/deactivate", groupHandler.Deactivate).Methods(http.MethodPost)

	// Attendance routes
	groups.HandleFunc("/{code}/roster", attendanceHandler.Roster).Methods(http.MethodGet)
	groups.HandleFunc("/{code}/check-in", attendanceHandler.CheckIn).Methods(http.MethodPost)
	groups.HandleFunc("/{code}/check-out", attendanceHandler.CheckOut).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Prometheus scrape endpoint, outside the versioned API
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler()).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.HealthResponse{Status: "ok"})
}

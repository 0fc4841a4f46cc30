package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mcoot/assemblie-checkin/internal/dependencies/clock"
	"github.com/mcoot/assemblie-checkin/internal/dependencies/idgen"
	"github.com/mcoot/assemblie-checkin/internal/dependencies/random"
	"github.com/mcoot/assemblie-checkin/internal/metrics"
	"github.com/mcoot/assemblie-checkin/internal/services/attendance"
	"github.com/mcoot/assemblie-checkin/internal/services/auth"
	"github.com/mcoot/assemblie-checkin/internal/services/group"
	"github.com/mcoot/assemblie-checkin/internal/services/household"
	"github.com/mcoot/assemblie-checkin/internal/storage"
	"github.com/mcoot/assemblie-checkin/internal/storage/memory"
	redisstorage "github.com/mcoot/assemblie-checkin/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    idgen.Generator

	Metrics *metrics.Metrics

	// Services
	AuthService       *auth.Service
	HouseholdService  *household.Service
	GroupController   *group.Controller
	AttendanceService *attendance.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// AttendanceConfig decides the attendance day's timezone (optional)
	// If zero value, days are UTC
	AttendanceConfig attendance.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clock.New(), random.New(), idgen.New(), authCfg, cfg.AttendanceConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	ids idgen.Generator,
	authCfg auth.Config,
	attendanceCfg attendance.Config,
	logger *slog.Logger,
) *App {
	m := metrics.New()

	authService := auth.New(store, clk, ids, logger, authCfg)
	householdService := household.New(store, clk, ids, logger)
	groupController := group.NewController(store, clk, rnd, logger)
	attendanceService := attendance.New(store, householdService, clk, m, logger, attendanceCfg)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		IDs:               ids,
		Metrics:           m,
		AuthService:       authService,
		HouseholdService:  householdService,
		GroupController:   groupController,
		AttendanceService: attendanceService,
	}
}

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/assemblie-checkin/internal/api"
	"github.com/mcoot/assemblie-checkin/internal/factory"
	"github.com/mcoot/assemblie-checkin/internal/services/attendance"
	"github.com/mcoot/assemblie-checkin/internal/services/auth"
	redisstorage "github.com/mcoot/assemblie-checkin/internal/storage/redis"
)

// sessionSweepInterval is how often expired sessions are removed
const sessionSweepInterval = 10 * time.Minute

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		AuthConfig:       auth.DefaultConfig(),
		AttendanceConfig: attendance.DefaultConfig(),
		Logger:           logger,
		StorageType:      os.Getenv("STORAGE_TYPE"),
	}

	if tz := os.Getenv("ATTENDANCE_TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			logger.Error("invalid ATTENDANCE_TIMEZONE", slog.String("timezone", tz), slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg.AttendanceConfig.Location = loc
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:            logger,
		Metrics:           app.Metrics,
		AuthService:       app.AuthService,
		HouseholdService:  app.HouseholdService,
		GroupController:   app.GroupController,
		AttendanceService: app.AttendanceService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	if err := server.Listen(); err != nil {
		logger.Error("failed to listen", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return server.Run(ctx)
	})

	g.Go(func() error {
		ticker := time.NewTicker(sessionSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if n := app.AuthService.CleanExpiredSessions(); n > 0 {
					logger.Info("expired sessions removed", slog.Int("count", n))
				}
			}
		}
	})

	logger.Info("server started", slog.String("addr", server.Addr()))

	if err := g.Wait(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped")
}

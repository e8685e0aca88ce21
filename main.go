package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pollsite/config"
	"pollsite/handlers"
	"pollsite/helper"
	"pollsite/models"
	"pollsite/repositories"
	"pollsite/router"
	"pollsite/services"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pollsite:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	logger := config.NewLogger(cfg, os.Stderr)
	if cfg.JWT.IsDefaultSecret() {
		logger.Warn("using the default JWT secret, set JWT_SECRET in production")
	}
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := config.OpenDB(cfg)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if err := config.Migrate(db); err != nil {
		return err
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger)
	questionRepo := repositories.NewQuestionRepository(db, logger)
	choiceRepo := repositories.NewChoiceRepository(db, logger)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWT, logger)
	pollService := services.NewPollService(questionRepo, choiceRepo, services.PollServiceOptions{
		IndexLimit:    cfg.IndexLimit,
		MaxIndexLimit: cfg.MaxIndexLimit,
		Logger:        logger,
	})

	if cfg.AdminEmail != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail); err != nil {
			if !errors.Is(err, models.ErrUserNotFound) {
				return err
			}
			logger.Warn("admin account not registered yet", "email", cfg.AdminEmail)
		}
	}

	// Initialize handlers
	httpHelper, err := helper.NewHTTPHelper()
	if err != nil {
		return err
	}

	engine := router.NewRouter(router.Deps{
		PollHandler: handlers.NewPollHandler(pollService, httpHelper),
		AuthHandler: handlers.NewAuthHandler(authService, httpHelper),
		Helper:      httpHelper,
		JWTSecret:   cfg.JWT.Secret,
		Logger:      logger,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "database", cfg.DatabaseType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

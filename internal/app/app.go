package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"buildxpert/database"
	"buildxpert/internal/auth"
	"buildxpert/internal/config"
	"buildxpert/internal/handlers"
	"buildxpert/internal/logger"
	"buildxpert/internal/middleware"
	"buildxpert/internal/models"
	"buildxpert/internal/notify"
	"buildxpert/internal/repositories"
	"buildxpert/internal/routes"
	"buildxpert/internal/services"
	"buildxpert/internal/workers"
	"buildxpert/ws"
)

// Run boots the whole application and blocks until shutdown.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}
	if err := seedFirstAdmin(db, cfg); err != nil {
		return err
	}

	router, manager, err := SetupRouter(cfg, db)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go manager.Run()

	// One dedicated LISTEN connection per process; queries go through
	// the gorm pool, notifications come in here.
	listener, err := notify.NewListener(cfg.Database.DSN, manager)
	if err != nil {
		return fmt.Errorf("start notification listener: %w", err)
	}
	go listener.Run(ctx)

	go workers.NewJobWorker(repositories.NewJobRepository(db)).Run(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter builds the gin engine and the WebSocket manager without
// starting any background goroutine. Integration tests drive it
// directly.
func SetupRouter(cfg *config.Config, db *gorm.DB) (*gin.Engine, *ws.Manager, error) {
	sc, err := services.NewServiceContainer(db, cfg)
	if err != nil {
		return nil, nil, err
	}

	manager := ws.NewManager()
	appHandlers := handlers.NewAppHandlers(sc, manager, cfg.Server.FrontendOrigin)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
		middleware.DBMiddleware(db),
	)

	routes.RegisterRoutes(router, appHandlers)

	return router, manager, nil
}

// seedFirstAdmin guarantees one admin account exists so the messaging
// pairing rule has a counterpart from day one.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	users := repositories.NewUserRepository(db)
	if _, err := users.FindByEmail(cfg.FirstAdminEmail); err == nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
	}
	if err := users.Create(admin); err != nil {
		return err
	}

	logger.Info("seeded first admin", "email", cfg.FirstAdminEmail)
	return nil
}

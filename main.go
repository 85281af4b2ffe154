package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/zahid-akhtar7979/wildlife-api/config"
	"github.com/zahid-akhtar7979/wildlife-api/database"
	"github.com/zahid-akhtar7979/wildlife-api/handlers"
	"github.com/zahid-akhtar7979/wildlife-api/helper"
	"github.com/zahid-akhtar7979/wildlife-api/logger"
	"github.com/zahid-akhtar7979/wildlife-api/media"
	"github.com/zahid-akhtar7979/wildlife-api/repositories"
	"github.com/zahid-akhtar7979/wildlife-api/services"
	"github.com/zahid-akhtar7979/wildlife-api/validation"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New(config.LogConfig{})
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(cfg.Log)
	if envErr != nil {
		log.Debug().Msg("No .env file found")
	}

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	db, err := database.Connect(&cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.RunMigrations {
		if err := db.Migrate(); err != nil {
			return err
		}
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	articleRepo := repositories.NewArticleRepository(db.DB)

	gateway := media.Disabled()
	if cfg.Cloudinary.Enabled() {
		cld, err := media.NewCloudinaryGateway(cfg.Cloudinary)
		if err != nil {
			return err
		}
		gateway = cld
	} else {
		log.Warn().Msg("Cloudinary credentials missing, uploads are disabled")
	}
	urls, err := media.NewURLBuilder(cfg.Cloudinary.CloudName)
	if err != nil {
		return err
	}

	// Initialize services
	svc := &services.Services{
		Auth:     services.NewAuthService(userRepo, cfg.JWT),
		Users:    services.NewUserService(userRepo, articleRepo),
		Articles: services.NewArticleService(articleRepo, urls),
		Media:    services.NewMediaService(gateway, urls),
	}

	created, err := svc.Users.EnsureAdmin(context.Background(), cfg.Bootstrap)
	if err != nil {
		return err
	}
	if created {
		log.Info().Str("email", cfg.Bootstrap.AdminEmail).Msg("Bootstrap admin account created")
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	h := helper.NewHTTPHelper(validation.MustNew(), log)
	router := handlers.NewRouter(svc, h, cfg, db, log)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("env", cfg.Env).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/driveeasy/driveeasy-api/internal/config"
	"github.com/driveeasy/driveeasy-api/internal/handler"
	"github.com/driveeasy/driveeasy-api/internal/repository"
	"github.com/driveeasy/driveeasy-api/internal/storage"
	"github.com/driveeasy/driveeasy-api/internal/usecase"
	"github.com/driveeasy/driveeasy-api/shared/auth"
	"github.com/driveeasy/driveeasy-api/shared/mailer"
	"github.com/driveeasy/driveeasy-api/shared/validation"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
		}
	}()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping MongoDB")
	}
	logger.Info().Msg("connected to MongoDB")

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	carRepo := repository.NewCarMongoRepository(db)
	bookingRepo := repository.NewBookingMongoRepository(db)

	store, err := newStore(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize document store")
	}

	var bookingMailer *mailer.Mailer
	if cfg.SMTPHost != "" {
		bookingMailer = mailer.NewMailer(&logger)
	}

	validator, err := validation.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize validator")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenExpiresIn)

	authUsecase := usecase.NewAuthUsecase(userRepo, store, jwtAuth)
	carUsecase := usecase.NewCarUsecase(carRepo, store)
	bookingUsecase := usecase.NewBookingUsecase(
		bookingRepo, carRepo, userRepo, bookingMailer, &logger, cfg.BookingConflictCheck)

	authHandler := handler.NewAuthHandler(authUsecase, validator, &logger)
	carHandler := handler.NewCarHandler(carUsecase, validator, &logger)
	bookingHandler := handler.NewBookingHandler(bookingUsecase, validator, &logger)

	router := handler.NewRouter(jwtAuth, cfg.AllowedOrigin, authHandler, carHandler, bookingHandler)

	server := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.ServerPort).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}

	return storage.NewLocalStore(cfg.UploadDir)
}

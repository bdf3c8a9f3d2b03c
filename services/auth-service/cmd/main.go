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

	"github.com/campusroom/campusroom-api/services/auth-service/internal/config"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/handler"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/usecase"
	"github.com/campusroom/campusroom-api/shared/auth"
	"github.com/campusroom/campusroom-api/shared/notify"
	"github.com/campusroom/campusroom-api/shared/storage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "auth-service").Logger()

	cfg := config.New(&logger)

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

	db := client.Database(cfg.MongoDatabase)

	userRepo := repository.NewUserMongoRepository(ctx, &logger, db)
	studentRepo := repository.NewStudentMongoRepository(db)
	parentRepo := repository.NewParentProfileMongoRepository(db)
	prefsRepo := repository.NewNotificationPreferencesMongoRepository(db)
	documentRepo := repository.NewStudentDocumentsMongoRepository(db)
	codeRepo := repository.NewResetCodeMongoRepository(ctx, &logger, db)

	// The TTL index reaps codes in the background from here on; this sweep
	// only clears codes that expired while the service was down.
	if deleted, err := codeRepo.DeleteExpiredCodes(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to delete expired reset codes")
	} else if deleted > 0 {
		logger.Info().Int64("deleted", deleted).Msg("deleted expired reset codes")
	}

	uploader, err := storage.NewGCSUploader(ctx, cfg.StorageBucket)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create object storage uploader")
	}

	jwtAuth := auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer)
	mailer := notify.NewMailer(&logger)
	smsSender := notify.NewLogSMSSender(&logger)

	authUsecase := usecase.NewAuthUsecase(userRepo, jwtAuth, cfg)
	registrationUsecase := usecase.NewRegistrationUsecase(
		userRepo, studentRepo, parentRepo, prefsRepo, documentRepo, uploader, &logger,
	)
	codesUsecase := usecase.NewVerificationCodeUsecase(codeRepo)
	passwordResetUsecase := usecase.NewPasswordResetUsecase(
		userRepo, codesUsecase, jwtAuth, smsSender, mailer, cfg, &logger,
	)

	h := handler.NewHandler(
		authUsecase, registrationUsecase, passwordResetUsecase,
		userRepo, jwtAuth, cfg, &logger,
	)

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("address", cfg.ServerAddress).Msg("auth service listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shut down http server")
	}

	logger.Info().Msg("auth service stopped")
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/rs/zerolog"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/config"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/usecase"
	"github.com/campusroom/campusroom-api/shared/auth"
)

// Handler exposes the account service over HTTP.
type Handler struct {
	authUsecase          usecase.AuthUsecase
	registrationUsecase  usecase.RegistrationUsecase
	passwordResetUsecase usecase.PasswordResetUsecase
	userRepo             repository.UserRepository
	jwtAuth              auth.JWTAuthenticator
	authServiceCfg       *config.AuthServiceConfig
	validate             *validator.Validate
	trans                ut.Translator
	logger               *zerolog.Logger
}

func NewHandler(
	authUsecase usecase.AuthUsecase,
	registrationUsecase usecase.RegistrationUsecase,
	passwordResetUsecase usecase.PasswordResetUsecase,
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	authServiceCfg *config.AuthServiceConfig,
	logger *zerolog.Logger,
) *Handler {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := entranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		logger.Fatal().Err(err).Msg("failed to register validator translations")
	}

	return &Handler{
		authUsecase:          authUsecase,
		registrationUsecase:  registrationUsecase,
		passwordResetUsecase: passwordResetUsecase,
		userRepo:             userRepo,
		jwtAuth:              jwtAuth,
		authServiceCfg:       authServiceCfg,
		validate:             validate,
		trans:                trans,
		logger:               logger,
	}
}

// Routes builds the service router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/confirm-code", h.ConfirmCode)
		r.Post("/reset-password", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(h.sessionAuth)
			r.Get("/me", h.Me)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(h.sessionAuth)
		r.Get("/users", h.ListUsers)
	})

	return r
}

package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/config"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
	authtypes "github.com/campusroom/campusroom-api/services/auth-service/pkg/types"
	"github.com/campusroom/campusroom-api/shared/auth"
	"github.com/campusroom/campusroom-api/shared/security"
)

// AuthUsecase defines the interface for session issuance.
type AuthUsecase interface {
	Login(ctx context.Context, params LoginParams) (string, error)
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Phone    string
	Password string
}

// ErrInvalidCredentials is returned for both an unknown phone and a wrong
// password, so login failures do not reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

type authUsecase struct {
	userRepo       repository.UserRepository
	jwtAuth        auth.JWTAuthenticator
	authServiceCfg *config.AuthServiceConfig
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	jwtAuth auth.JWTAuthenticator,
	authServiceCfg *config.AuthServiceConfig,
) AuthUsecase {
	return &authUsecase{
		userRepo:       userRepo,
		jwtAuth:        jwtAuth,
		authServiceCfg: authServiceCfg,
	}
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (string, error) {
	user, err := u.userRepo.GetUserByPhone(ctx, params.Phone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrInvalidCredentials
		}

		return "", err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return "", err
	} else if !ok {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		LastLoginAt: &now,
	}); err != nil {
		return "", err
	}

	claims := authtypes.SessionClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.authServiceCfg.Token.SessionTokenExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    u.authServiceCfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{u.authServiceCfg.Token.Issuer},
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.authServiceCfg.Token.SessionTokenSecret)
}

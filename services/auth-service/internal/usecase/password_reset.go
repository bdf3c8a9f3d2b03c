package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/config"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
	authtypes "github.com/campusroom/campusroom-api/services/auth-service/pkg/types"
	"github.com/campusroom/campusroom-api/shared/auth"
	"github.com/campusroom/campusroom-api/shared/notify"
	"github.com/campusroom/campusroom-api/shared/security"
)

// PasswordResetUsecase drives the three-phase credential recovery flow:
// a one-time code is issued to the phone, confirming the code yields a
// short-lived reset token, and only that token authorizes the credential
// update.
type PasswordResetUsecase interface {
	// RequestReset issues a one-time code for the phone and delivers it
	// out-of-band.
	RequestReset(ctx context.Context, phone string) error

	// ConfirmCode consumes the code and returns a signed reset token.
	ConfirmCode(ctx context.Context, phone, code string) (string, error)

	// ResetPassword validates the reset token and updates the stored
	// credential of the account it was minted for.
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

var (
	ErrInvalidPhoneNumber = errors.New("invalid phone number format")
	ErrAccountNotFound    = errors.New("no account exists for this phone number")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
	ErrInvalidResetToken  = errors.New("invalid or expired password reset token")
)

type passwordResetUsecase struct {
	userRepo       repository.UserRepository
	codes          VerificationCodeUsecase
	jwtAuth        auth.JWTAuthenticator
	smsSender      notify.SMSSender
	mailer         *notify.Mailer
	phonePattern   *regexp.Regexp
	authServiceCfg *config.AuthServiceConfig
	logger         *zerolog.Logger
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
// The mailer may be nil when no SMTP transport is configured; the email
// notification is then skipped.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	codes VerificationCodeUsecase,
	jwtAuth auth.JWTAuthenticator,
	smsSender notify.SMSSender,
	mailer *notify.Mailer,
	authServiceCfg *config.AuthServiceConfig,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:       userRepo,
		codes:          codes,
		jwtAuth:        jwtAuth,
		smsSender:      smsSender,
		mailer:         mailer,
		phonePattern:   regexp.MustCompile(authServiceCfg.PhonePattern),
		authServiceCfg: authServiceCfg,
		logger:         logger,
	}
}

func (u *passwordResetUsecase) RequestReset(ctx context.Context, phone string) error {
	if !u.phonePattern.MatchString(phone) {
		return ErrInvalidPhoneNumber
	}

	user, err := u.userRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}

	code, err := u.codes.Issue(ctx, phone)
	if err != nil {
		return err
	}

	message := fmt.Sprintf("Your CampusRoom verification code is %s. It expires in %d minutes.",
		code, int(codeTTL.Minutes()))
	if err := u.smsSender.SendSMS(ctx, phone, message); err != nil {
		return err
	}

	// Heads-up on the email channel; the code itself only travels by SMS.
	if u.mailer != nil && user.Email != "" {
		body := fmt.Sprintf(`
			<p>Hi %s,</p>
			<p>A password reset was requested for your account. A verification
			code has been sent to your phone number.</p>
			<p>If you did not request this, you can ignore this message.</p>
		`, user.FirstName)

		if err := u.mailer.SendHTML([]string{user.Email}, "Password Reset Requested", body); err != nil {
			u.logger.Warn().Err(err).Msg("failed to send password reset email notification")
		}
	}

	return nil
}

func (u *passwordResetUsecase) ConfirmCode(ctx context.Context, phone, code string) (string, error) {
	ok, err := u.codes.Verify(ctx, phone, code)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCode
	}

	now := time.Now()
	claims := authtypes.PasswordResetClaims{
		Phone: phone,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   phone,
			Issuer:    u.authServiceCfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{u.authServiceCfg.Token.Issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(u.authServiceCfg.Token.PasswordResetTokenExpiresIn)),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	return u.jwtAuth.GenerateToken(claims, u.authServiceCfg.Token.PasswordResetTokenSecret)
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	claims := &authtypes.PasswordResetClaims{}
	if _, err := u.jwtAuth.ValidateTokenWithClaims(
		resetToken,
		u.authServiceCfg.Token.PasswordResetTokenSecret,
		claims,
	); err != nil {
		return ErrInvalidResetToken
	}

	user, err := u.userRepo.GetUserByPhone(ctx, claims.Phone)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrAccountNotFound
		}
		return err
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if _, err := u.userRepo.UpdateUser(ctx, user.ID.Hex(), repository.UpdateUserParams{
		PasswordHash: &passwordHash,
	}); err != nil {
		return err
	}

	u.logger.Info().Str("user_id", user.ID.Hex()).Msg("password reset completed")

	return nil
}

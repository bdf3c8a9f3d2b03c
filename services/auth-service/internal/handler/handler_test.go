package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/config"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/usecase"
	authtypes "github.com/campusroom/campusroom-api/services/auth-service/pkg/types"
	"github.com/campusroom/campusroom-api/shared/auth"
)

func testConfig() *config.AuthServiceConfig {
	return &config.AuthServiceConfig{
		PhonePattern: `^\+237[0-9]{9}$`,
		Token: config.TokenConfig{
			Issuer:                      "campusroom-test",
			SessionTokenSecret:          "session-secret",
			SessionTokenExpiresIn:       720 * time.Hour,
			PasswordResetTokenSecret:    "reset-secret",
			PasswordResetTokenExpiresIn: 15 * time.Minute,
		},
	}
}

type stubAuthUsecase struct {
	token string
	err   error
}

func (s *stubAuthUsecase) Login(context.Context, usecase.LoginParams) (string, error) {
	return s.token, s.err
}

type stubRegistrationUsecase struct {
	result *usecase.RegistrationResult
	err    error
}

func (s *stubRegistrationUsecase) RegisterStudent(
	context.Context,
	usecase.RegisterStudentParams,
) (*usecase.RegistrationResult, error) {
	return s.result, s.err
}

type stubPasswordResetUsecase struct {
	requestErr error
	resetToken string
	confirmErr error
	resetErr   error
}

func (s *stubPasswordResetUsecase) RequestReset(context.Context, string) error {
	return s.requestErr
}

func (s *stubPasswordResetUsecase) ConfirmCode(context.Context, string, string) (string, error) {
	return s.resetToken, s.confirmErr
}

func (s *stubPasswordResetUsecase) ResetPassword(context.Context, string, string) error {
	return s.resetErr
}

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) CreateUser(context.Context, *model.User) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	if s.user == nil || s.user.ID.Hex() != id {
		return nil, mongo.ErrNoDocuments
	}
	return s.user, nil
}

func (s *stubUserRepo) GetUserByEmail(context.Context, string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) GetUserByPhone(context.Context, string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) UpdateUser(context.Context, string, repository.UpdateUserParams) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) DeleteUser(context.Context, string) (*model.User, error) {
	return nil, mongo.ErrNoDocuments
}

func (s *stubUserRepo) ListUsers(context.Context, repository.FilterUsersParams) ([]*model.User, error) {
	if s.user == nil {
		return nil, nil
	}
	return []*model.User{s.user}, nil
}

type handlerFixture struct {
	auth     *stubAuthUsecase
	reg      *stubRegistrationUsecase
	reset    *stubPasswordResetUsecase
	userRepo *stubUserRepo
	jwtAuth  auth.JWTAuthenticator
	cfg      *config.AuthServiceConfig
	router   http.Handler
}

func newHandlerFixture() *handlerFixture {
	cfg := testConfig()
	f := &handlerFixture{
		auth:     &stubAuthUsecase{},
		reg:      &stubRegistrationUsecase{},
		reset:    &stubPasswordResetUsecase{},
		userRepo: &stubUserRepo{},
		jwtAuth:  auth.NewJWTAuthenticator(cfg.Token.Issuer, cfg.Token.Issuer),
		cfg:      cfg,
	}
	logger := zerolog.Nop()
	h := NewHandler(f.auth, f.reg, f.reset, f.userRepo, f.jwtAuth, cfg, &logger)
	f.router = h.Routes()
	return f
}

func (f *handlerFixture) sessionCookie(t *testing.T, user *model.User) *http.Cookie {
	t.Helper()

	now := time.Now()
	claims := authtypes.SessionClaims{
		UserID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			Issuer:    f.cfg.Token.Issuer,
			Audience:  jwt.ClaimStrings{f.cfg.Token.Issuer},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := f.jwtAuth.GenerateToken(claims, f.cfg.Token.SessionTokenSecret)
	require.NoError(t, err)

	return &http.Cookie{Name: sessionCookieName, Value: token}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	f := newHandlerFixture()
	f.auth.token = "signed-token"

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"phone":"+237600000000","password":"hunter2hunter2"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signed-token")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookieName, cookies[0].Name)
	assert.Equal(t, "signed-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newHandlerFixture()
	f.auth.err = usecase.ErrInvalidCredentials

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"phone":"+237600000000","password":"hunter2hunter2"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginValidationFailure(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"phone":"+237600000000"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation failed")
}

func TestRegisterRejectsNonMultipartRequest(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"a@x.com"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestForgotPasswordUnknownAccount(t *testing.T) {
	f := newHandlerFixture()
	f.reset.requestErr = usecase.ErrAccountNotFound

	req := httptest.NewRequest(http.MethodPost, "/auth/forgot-password",
		strings.NewReader(`{"phone":"+237600000000"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfirmCodeInvalid(t *testing.T) {
	f := newHandlerFixture()
	f.reset.confirmErr = usecase.ErrInvalidCode

	req := httptest.NewRequest(http.MethodPost, "/auth/confirm-code",
		strings.NewReader(`{"phone":"+237600000000","code":"123456"}`))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRequiresSession(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeReturnsAuthenticatedUser(t *testing.T) {
	f := newHandlerFixture()
	f.userRepo.user = &model.User{
		ID:        bson.NewObjectID(),
		Email:     "a@x.com",
		Phone:     "+237600000000",
		FirstName: "Ama",
		Role:      model.RoleStudent,
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(f.sessionCookie(t, f.userRepo.user))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

func TestListUsersRequiresSession(t *testing.T) {
	f := newHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListUsers(t *testing.T) {
	f := newHandlerFixture()
	f.userRepo.user = &model.User{
		ID:    bson.NewObjectID(),
		Email: "a@x.com",
		Role:  model.RoleStudent,
	}

	req := httptest.NewRequest(http.MethodGet, "/users?limit=5", nil)
	req.AddCookie(f.sessionCookie(t, f.userRepo.user))
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "a@x.com")
}

package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
)

// codeTTL is the fixed validity window of a one-time code.
const codeTTL = 2 * time.Minute

// codeSpace is the number of possible 6-digit codes.
var codeSpace = big.NewInt(1_000_000)

// VerificationCodeUsecase issues and consumes one-time verification codes
// tied to a phone number. A code verifies successfully at most once; any
// verification attempt removes the matched record.
type VerificationCodeUsecase interface {
	Issue(ctx context.Context, phone string) (string, error)
	Verify(ctx context.Context, phone, code string) (bool, error)
}

type verificationCodeUsecase struct {
	codeRepo repository.ResetCodeRepository
}

func NewVerificationCodeUsecase(codeRepo repository.ResetCodeRepository) VerificationCodeUsecase {
	return &verificationCodeUsecase{codeRepo: codeRepo}
}

// Issue persists a fresh 6-digit code for the phone and returns it for
// out-of-band delivery. Earlier codes for the same phone stay untouched;
// the store does not promise uniqueness per phone.
func (u *verificationCodeUsecase) Issue(ctx context.Context, phone string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}

	now := time.Now()
	if _, err := u.codeRepo.CreateCode(ctx, &model.ResetCode{
		Phone:     phone,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(codeTTL),
	}); err != nil {
		return "", err
	}

	return code, nil
}

// Verify consumes the matching code record. It returns false when no record
// matches or the matched record had expired; the record is gone afterwards
// in both the expired and the successful case.
func (u *verificationCodeUsecase) Verify(ctx context.Context, phone, code string) (bool, error) {
	record, err := u.codeRepo.ConsumeCode(ctx, phone, code)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}

		return false, err
	}

	if record.Expired(time.Now()) {
		return false, nil
	}

	return true, nil
}

// generateCode returns a uniformly random 6-digit numeric string, leading
// zeros included.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
	"github.com/campusroom/campusroom-api/shared/security"
	"github.com/campusroom/campusroom-api/shared/storage"
)

// RegistrationUsecase creates a student account with all of its linked
// records as one logical unit. On any failure past the first insert the
// already persisted records are compensated, so an account either exists
// fully linked or not at all.
type RegistrationUsecase interface {
	RegisterStudent(ctx context.Context, params RegisterStudentParams) (*RegistrationResult, error)
}

// FileUpload is a binary payload received with the registration request.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParentProfileParams carries the optional parent or guardian contact.
type ParentProfileParams struct {
	Name    string
	Kinship string
	Phone   string
}

// NotificationPreferencesParams carries the delivery channel flags supplied
// at registration. When nil, defaults apply.
type NotificationPreferencesParams struct {
	Email       bool
	Push        bool
	Newsletter  bool
	PriceAlerts bool
}

// StudentParams carries the student profile fields of a registration.
type StudentParams struct {
	Sex                     string
	BirthDate               time.Time
	DocumentType            string
	CityOfStudy             string
	Favorites               int
	Searches                int
	Verified                bool
	Parent                  *ParentProfileParams
	NotificationPreferences *NotificationPreferencesParams
}

// RegisterStudentParams is the full registration request.
type RegisterStudentParams struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	Phone            string
	Role             string
	TermsAccepted    bool
	Student          StudentParams
	IdentityPhoto    FileUpload
	IdentityDocument FileUpload
}

// RegistrationResult identifies the created records.
type RegistrationResult struct {
	UserID    string
	StudentID string
}

var (
	ErrAccountAlreadyExists = errors.New("an account with this email or phone already exists")
	ErrFileMissing          = errors.New("identity photo and identity document are required")
	ErrPhotoNotImage        = errors.New("the identity photo must be an image")
	ErrDocumentBadType      = errors.New("the identity document must be an image or a PDF")
)

// Registration step names used in RegistrationError and compensation logs.
const (
	stepUploadFiles      = "upload_files"
	stepNotificationPref = "notification_preferences"
	stepParentProfile    = "parent_profile"
	stepStudent          = "student"
	stepStudentDocuments = "student_documents"
	stepUser             = "user"
)

type registrationUsecase struct {
	userRepo     repository.UserRepository
	studentRepo  repository.StudentRepository
	parentRepo   repository.ParentProfileRepository
	prefsRepo    repository.NotificationPreferencesRepository
	documentRepo repository.StudentDocumentsRepository
	uploader     storage.Uploader
	logger       *zerolog.Logger
}

func NewRegistrationUsecase(
	userRepo repository.UserRepository,
	studentRepo repository.StudentRepository,
	parentRepo repository.ParentProfileRepository,
	prefsRepo repository.NotificationPreferencesRepository,
	documentRepo repository.StudentDocumentsRepository,
	uploader storage.Uploader,
	logger *zerolog.Logger,
) RegistrationUsecase {
	return &registrationUsecase{
		userRepo:     userRepo,
		studentRepo:  studentRepo,
		parentRepo:   parentRepo,
		prefsRepo:    prefsRepo,
		documentRepo: documentRepo,
		uploader:     uploader,
		logger:       logger,
	}
}

func (u *registrationUsecase) RegisterStudent(
	ctx context.Context,
	params RegisterStudentParams,
) (*RegistrationResult, error) {
	if err := validateFiles(params.IdentityPhoto, params.IdentityDocument); err != nil {
		return nil, err
	}

	// Advisory only: it saves the uploads in the common case, but the unique
	// index on the users collection is what actually rejects duplicates.
	if _, err := u.userRepo.GetUserByEmail(ctx, params.Email); err == nil {
		return nil, ErrAccountAlreadyExists
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	// Nothing has been persisted before the uploads, so a failure here needs
	// no compensation.
	photoURL, documentURL, err := u.uploadIdentityFiles(ctx, params)
	if err != nil {
		return nil, &RegistrationError{Step: stepUploadFiles, Compensated: true, Err: err}
	}

	sg := newSaga(u.logger, uuid.NewString())

	prefs := params.Student.NotificationPreferences.toModel()
	prefs, err = u.prefsRepo.CreatePreferences(ctx, prefs)
	if err != nil {
		return nil, &RegistrationError{Step: stepNotificationPref, Compensated: true, Err: err}
	}
	prefsID := prefs.ID
	sg.completed(stepNotificationPref, func(ctx context.Context) error {
		return u.prefsRepo.DeletePreferences(ctx, prefsID.Hex())
	})

	var parentID *bson.ObjectID
	if p := params.Student.Parent; p != nil {
		parent, err := u.parentRepo.CreateParentProfile(ctx, &model.ParentProfile{
			Name:    p.Name,
			Kinship: p.Kinship,
			Phone:   p.Phone,
		})
		if err != nil {
			return nil, &RegistrationError{Step: stepParentProfile, Compensated: sg.abort(ctx), Err: err}
		}
		parentID = &parent.ID
		sg.completed(stepParentProfile, func(ctx context.Context) error {
			return u.parentRepo.DeleteParentProfile(ctx, parent.ID.Hex())
		})
	}

	student, err := u.studentRepo.CreateStudent(ctx, &model.Student{
		Sex:                       params.Student.Sex,
		BirthDate:                 params.Student.BirthDate,
		DocumentType:              params.Student.DocumentType,
		CityOfStudy:               params.Student.CityOfStudy,
		Favorites:                 params.Student.Favorites,
		Searches:                  params.Student.Searches,
		Verified:                  params.Student.Verified,
		ParentProfileID:           parentID,
		NotificationPreferencesID: prefsID,
	})
	if err != nil {
		return nil, &RegistrationError{Step: stepStudent, Compensated: sg.abort(ctx), Err: err}
	}
	sg.completed(stepStudent, func(ctx context.Context) error {
		return u.studentRepo.DeleteStudent(ctx, student.ID.Hex())
	})

	docs, err := u.documentRepo.CreateDocuments(ctx, &model.StudentDocuments{
		StudentID:           student.ID,
		IdentityPhotoURL:    photoURL,
		IdentityDocumentURL: documentURL,
	})
	if err != nil {
		return nil, &RegistrationError{Step: stepStudentDocuments, Compensated: sg.abort(ctx), Err: err}
	}
	sg.completed(stepStudentDocuments, func(ctx context.Context) error {
		return u.documentRepo.DeleteDocuments(ctx, docs.ID.Hex())
	})

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:         params.Email,
		Phone:         params.Phone,
		PasswordHash:  passwordHash,
		FirstName:     params.FirstName,
		LastName:      params.LastName,
		Role:          params.Role,
		TermsAccepted: params.TermsAccepted,
		StudentID:     student.ID,
	})
	if err != nil {
		// Two concurrent registrations can both pass the existence check;
		// the unique index decides the race here.
		if mongo.IsDuplicateKeyError(err) {
			err = ErrAccountAlreadyExists
		}
		return nil, &RegistrationError{Step: stepUser, Compensated: sg.abort(ctx), Err: err}
	}

	u.logger.Info().
		Str("user_id", user.ID.Hex()).
		Str("student_id", student.ID.Hex()).
		Msg("student registered")

	return &RegistrationResult{
		UserID:    user.ID.Hex(),
		StudentID: student.ID.Hex(),
	}, nil
}

// uploadIdentityFiles stores both identity files under a per-account folder
// keyed by email. Objects left behind by a later saga failure are not
// removed; re-registration overwrites them.
func (u *registrationUsecase) uploadIdentityFiles(
	ctx context.Context,
	params RegisterStudentParams,
) (photoURL, documentURL string, err error) {
	photoPath := fmt.Sprintf("%s/photoIdentite.%s",
		params.Email, fileExtension(params.IdentityPhoto))
	documentPath := fmt.Sprintf("%s/pieceIdentite.%s",
		params.Email, fileExtension(params.IdentityDocument))

	photoURL, err = u.uploader.Upload(ctx, photoPath, params.IdentityPhoto.Data, params.IdentityPhoto.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload identity photo: %w", err)
	}

	documentURL, err = u.uploader.Upload(ctx, documentPath, params.IdentityDocument.Data, params.IdentityDocument.ContentType)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload identity document: %w", err)
	}

	return photoURL, documentURL, nil
}

func validateFiles(photo, document FileUpload) error {
	if len(photo.Data) == 0 || len(document.Data) == 0 {
		return ErrFileMissing
	}
	if !strings.HasPrefix(photo.ContentType, "image/") {
		return ErrPhotoNotImage
	}
	if !strings.HasPrefix(document.ContentType, "image/") && document.ContentType != "application/pdf" {
		return ErrDocumentBadType
	}
	return nil
}

// fileExtension derives the stored object's extension from the original
// filename, falling back to the MIME subtype.
func fileExtension(f FileUpload) string {
	if ext := strings.TrimPrefix(filepath.Ext(f.Filename), "."); ext != "" {
		return ext
	}
	if _, subtype, ok := strings.Cut(f.ContentType, "/"); ok && subtype != "" {
		return subtype
	}
	return "bin"
}

func (p *NotificationPreferencesParams) toModel() *model.NotificationPreferences {
	if p == nil {
		return model.DefaultNotificationPreferences()
	}
	return &model.NotificationPreferences{
		Email:       p.Email,
		Push:        p.Push,
		Newsletter:  p.Newsletter,
		PriceAlerts: p.PriceAlerts,
	}
}

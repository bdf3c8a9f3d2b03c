package usecase

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/campusroom/campusroom-api/services/auth-service/internal/model"
	"github.com/campusroom/campusroom-api/services/auth-service/internal/repository"
	"github.com/campusroom/campusroom-api/shared/storage"
)

// duplicateKeyErr mirrors the write error the driver surfaces when a unique
// index rejects an insert.
func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

type fakeUserRepo struct {
	mu        sync.Mutex
	users     map[string]*model.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Phone == user.Phone {
			return nil, duplicateKeyErr()
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID.Hex()] = &stored
	return user, nil
}

func (r *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) GetUserByPhone(_ context.Context, phone string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Phone == phone {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) UpdateUser(
	_ context.Context,
	id string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	if params.LastLoginAt != nil {
		user.LastLoginAt = *params.LastLoginAt
	}
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(r.users, id)
	return user, nil
}

func (r *fakeUserRepo) ListUsers(_ context.Context, _ repository.FilterUsersParams) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := make([]*model.User, 0, len(r.users))
	for _, user := range r.users {
		copied := *user
		users = append(users, &copied)
	}
	return users, nil
}

type fakeStudentRepo struct {
	mu        sync.Mutex
	students  map[string]*model.Student
	createErr error
}

func newFakeStudentRepo() *fakeStudentRepo {
	return &fakeStudentRepo{students: make(map[string]*model.Student)}
}

func (r *fakeStudentRepo) CreateStudent(_ context.Context, student *model.Student) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}
	student.ID = bson.NewObjectID()
	stored := *student
	r.students[student.ID.Hex()] = &stored
	return student, nil
}

func (r *fakeStudentRepo) GetStudent(_ context.Context, id string) (*model.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	student, ok := r.students[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *student
	return &copied, nil
}

func (r *fakeStudentRepo) DeleteStudent(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.students, id)
	return nil
}

type fakeParentRepo struct {
	mu        sync.Mutex
	profiles  map[string]*model.ParentProfile
	createErr error
}

func newFakeParentRepo() *fakeParentRepo {
	return &fakeParentRepo{profiles: make(map[string]*model.ParentProfile)}
}

func (r *fakeParentRepo) CreateParentProfile(
	_ context.Context,
	profile *model.ParentProfile,
) (*model.ParentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}
	profile.ID = bson.NewObjectID()
	stored := *profile
	r.profiles[profile.ID.Hex()] = &stored
	return profile, nil
}

func (r *fakeParentRepo) GetParentProfile(_ context.Context, id string) (*model.ParentProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeParentRepo) DeleteParentProfile(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.profiles, id)
	return nil
}

type fakePrefsRepo struct {
	mu        sync.Mutex
	prefs     map[string]*model.NotificationPreferences
	createErr error
}

func newFakePrefsRepo() *fakePrefsRepo {
	return &fakePrefsRepo{prefs: make(map[string]*model.NotificationPreferences)}
}

func (r *fakePrefsRepo) CreatePreferences(
	_ context.Context,
	prefs *model.NotificationPreferences,
) (*model.NotificationPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}
	prefs.ID = bson.NewObjectID()
	stored := *prefs
	r.prefs[prefs.ID.Hex()] = &stored
	return prefs, nil
}

func (r *fakePrefsRepo) GetPreferences(_ context.Context, id string) (*model.NotificationPreferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prefs, ok := r.prefs[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *prefs
	return &copied, nil
}

func (r *fakePrefsRepo) DeletePreferences(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.prefs, id)
	return nil
}

type fakeDocumentsRepo struct {
	mu        sync.Mutex
	documents map[string]*model.StudentDocuments
	createErr error
}

func newFakeDocumentsRepo() *fakeDocumentsRepo {
	return &fakeDocumentsRepo{documents: make(map[string]*model.StudentDocuments)}
}

func (r *fakeDocumentsRepo) CreateDocuments(
	_ context.Context,
	docs *model.StudentDocuments,
) (*model.StudentDocuments, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}
	docs.ID = bson.NewObjectID()
	stored := *docs
	r.documents[docs.ID.Hex()] = &stored
	return docs, nil
}

func (r *fakeDocumentsRepo) GetDocumentsByStudent(
	_ context.Context,
	studentID string,
) (*model.StudentDocuments, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, docs := range r.documents {
		if docs.StudentID.Hex() == studentID {
			copied := *docs
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeDocumentsRepo) DeleteDocuments(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.documents, id)
	return nil
}

type fakeCodeRepo struct {
	mu    sync.Mutex
	codes []*model.ResetCode
}

func newFakeCodeRepo() *fakeCodeRepo {
	return &fakeCodeRepo{}
}

func (r *fakeCodeRepo) CreateCode(_ context.Context, code *model.ResetCode) (*model.ResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}
	code.ID = bson.NewObjectID()
	stored := *code
	r.codes = append(r.codes, &stored)
	return code, nil
}

func (r *fakeCodeRepo) ConsumeCode(_ context.Context, phone, code string) (*model.ResetCode, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, record := range r.codes {
		if record.Phone == phone && record.Code == code {
			r.codes = append(r.codes[:i], r.codes[i+1:]...)
			return record, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeCodeRepo) DeleteExpiredCodes(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var kept []*model.ResetCode
	var deleted int64
	now := time.Now()
	for _, record := range r.codes {
		if record.Expired(now) {
			deleted++
			continue
		}
		kept = append(kept, record)
	}
	r.codes = kept
	return deleted, nil
}

type uploadedObject struct {
	Path        string
	ContentType string
	Size        int
}

type fakeUploader struct {
	mu        sync.Mutex
	uploads   []uploadedObject
	uploadErr error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{}
}

func (u *fakeUploader) Upload(_ context.Context, path string, data []byte, contentType string) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.uploadErr != nil {
		return "", u.uploadErr
	}
	u.uploads = append(u.uploads, uploadedObject{
		Path:        path,
		ContentType: contentType,
		Size:        len(data),
	})
	return storage.ObjectURL("student", path), nil
}

type sentSMS struct {
	Phone   string
	Message string
}

type fakeSMSSender struct {
	mu      sync.Mutex
	sent    []sentSMS
	sendErr error
}

func newFakeSMSSender() *fakeSMSSender {
	return &fakeSMSSender{}
}

func (s *fakeSMSSender) SendSMS(_ context.Context, phone, message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, sentSMS{Phone: phone, Message: message})
	return nil
}

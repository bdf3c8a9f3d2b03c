package payload

import "time"

type LoginRequest struct {
	Phone    string `json:"phone"    validate:"required,min=8,max=13"`
	Password string `json:"password" validate:"required,min=8,max=255"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// RegisterUserData is the JSON carried in the "userData" field of the
// multipart registration request. The two identity files travel as separate
// form parts.
type RegisterUserData struct {
	Email         string      `json:"email"         validate:"required,email"`
	Password      string      `json:"password"      validate:"required,min=8,max=255"`
	FirstName     string      `json:"firstName"     validate:"required,min=2,max=50"`
	LastName      string      `json:"lastName"      validate:"required,min=2,max=50"`
	Phone         string      `json:"phone"         validate:"required,min=10,max=20"`
	Role          string      `json:"role"          validate:"required,oneof=STUDENT OWNER ADMIN"`
	TermsAccepted bool        `json:"termsAccepted" validate:"required"`
	Student       StudentData `json:"student"       validate:"required"`
}

type StudentData struct {
	Sex                     string                       `json:"sex"          validate:"omitempty,oneof=M F"`
	BirthDate               time.Time                    `json:"birthDate"`
	DocumentType            string                       `json:"documentType" validate:"omitempty,oneof=CNI PASSPORT STUDENT_CARD"`
	CityOfStudy             string                       `json:"cityOfStudy"`
	Favorites               int                          `json:"favorites"    validate:"min=0"`
	Searches                int                          `json:"searches"     validate:"min=0"`
	Parent                  *ParentProfileData           `json:"parentProfile"`
	NotificationPreferences *NotificationPreferencesData `json:"notificationPreferences"`
}

type ParentProfileData struct {
	Name    string `json:"name"    validate:"required,min=2,max=50"`
	Kinship string `json:"kinship" validate:"required,oneof=FATHER MOTHER GUARDIAN"`
	Phone   string `json:"phone"   validate:"required,min=10,max=20"`
}

type NotificationPreferencesData struct {
	Email       bool `json:"email"`
	Push        bool `json:"push"`
	Newsletter  bool `json:"newsletter"`
	PriceAlerts bool `json:"priceAlerts"`
}

type RegisterResponse struct {
	Message   string `json:"message"`
	UserID    string `json:"userId"`
	StudentID string `json:"studentId"`
}

type ForgotPasswordRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type ConfirmCodeRequest struct {
	Phone string `json:"phone" validate:"required"`
	Code  string `json:"code"  validate:"required,len=6,numeric"`
}

type ConfirmCodeResponse struct {
	ResetToken string `json:"resetToken"`
}

type ResetPasswordRequest struct {
	ResetToken  string `json:"resetToken"  validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=255"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Role      string    `json:"role"`
	StudentID string    `json:"studentId"`
	CreatedAt time.Time `json:"createdAt"`
}

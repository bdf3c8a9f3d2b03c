package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Identity document types accepted for student verification.
const (
	DocumentTypeNationalID = "CNI"
	DocumentTypePassport   = "PASSPORT"
	DocumentTypeStudentID  = "STUDENT_CARD"
)

// Student is the domain profile behind a user account. It always references
// a notification preferences record; the parent profile is optional.
type Student struct {
	ID                        bson.ObjectID  `bson:"_id,omitempty"`
	Sex                       string         `bson:"sex"`
	BirthDate                 time.Time      `bson:"birth_date"`
	DocumentType              string         `bson:"document_type"`
	CityOfStudy               string         `bson:"city_of_study"`
	Favorites                 int            `bson:"favorites"`
	Searches                  int            `bson:"searches"`
	Verified                  bool           `bson:"verified"`
	ParentProfileID           *bson.ObjectID `bson:"parent_profile_id,omitempty"`
	NotificationPreferencesID bson.ObjectID  `bson:"notification_preferences_id"`
	CreatedAt                 time.Time      `bson:"created_at"`
	UpdatedAt                 time.Time      `bson:"updated_at"`
}

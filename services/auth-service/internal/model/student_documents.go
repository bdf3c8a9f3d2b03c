package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// StudentDocuments records the identity documents uploaded during
// registration. The URLs point at the object store and are only written
// after both uploads succeeded.
type StudentDocuments struct {
	ID                  bson.ObjectID `bson:"_id,omitempty"`
	StudentID           bson.ObjectID `bson:"student_id"`
	IdentityPhotoURL    string        `bson:"identity_photo_url"`
	IdentityDocumentURL string        `bson:"identity_document_url"`
	Verified            bool          `bson:"verified"`
	VerifiedAt          *time.Time    `bson:"verified_at,omitempty"`
	RejectionReason     *string       `bson:"rejection_reason,omitempty"`
	CreatedAt           time.Time     `bson:"created_at"`
	UpdatedAt           time.Time     `bson:"updated_at"`
}

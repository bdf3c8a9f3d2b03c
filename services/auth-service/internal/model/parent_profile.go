package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Kinship links accepted on a parent profile.
const (
	KinshipFather   = "FATHER"
	KinshipMother   = "MOTHER"
	KinshipGuardian = "GUARDIAN"
)

// ParentProfile holds the contact details of a student's parent or guardian.
// It only exists when registration supplied parental data.
type ParentProfile struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Kinship   string        `bson:"kinship"`
	Phone     string        `bson:"phone"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

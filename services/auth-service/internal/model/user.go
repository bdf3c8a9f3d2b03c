package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Roles a user account can carry. Only students self-register; the other
// roles are provisioned by operators.
const (
	RoleStudent = "STUDENT"
	RoleOwner   = "OWNER"
	RoleAdmin   = "ADMIN"
)

// User is the identity and credential holder. Email and phone are each
// globally unique, and a user is never persisted without a fully linked
// student profile.
type User struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	Email         string        `bson:"email"`
	Phone         string        `bson:"phone"`
	PasswordHash  string        `bson:"password_hash"`
	FirstName     string        `bson:"first_name"`
	LastName      string        `bson:"last_name"`
	Role          string        `bson:"role"`
	TermsAccepted bool          `bson:"terms_accepted"`
	StudentID     bson.ObjectID `bson:"student_id"`
	LastLoginAt   time.Time     `bson:"last_login_at"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}

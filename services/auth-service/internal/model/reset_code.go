package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// ResetCode is a short-lived, single-use numeric code proving control of a
// phone number. A phone may have several outstanding codes; consumption is
// first-match and deletes the record.
type ResetCode struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Phone     string        `bson:"phone"`
	Code      string        `bson:"code"`
	CreatedAt time.Time     `bson:"created_at"`
	ExpiresAt time.Time     `bson:"expires_at"`
}

// Expired reports whether the code is past its validity window at the given
// instant.
func (c *ResetCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

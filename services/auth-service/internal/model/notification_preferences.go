package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// NotificationPreferences holds the per-student delivery channel flags.
type NotificationPreferences struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Email       bool          `bson:"email"`
	Push        bool          `bson:"push"`
	Newsletter  bool          `bson:"newsletter"`
	PriceAlerts bool          `bson:"price_alerts"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

// DefaultNotificationPreferences returns the channel flags applied when
// registration does not supply any.
func DefaultNotificationPreferences() *NotificationPreferences {
	return &NotificationPreferences{
		Email:       true,
		Push:        true,
		Newsletter:  false,
		PriceAlerts: true,
	}
}

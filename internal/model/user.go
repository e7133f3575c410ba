package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. Identity documents are stored in the
// blob store and referenced here by storage key.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string        `bson:"email" json:"email"`
	PasswordHash string        `bson:"password_hash" json:"-"`
	Verified     bool          `bson:"verified" json:"verified"`
	License      string        `bson:"license" json:"license"`
	Pin          string        `bson:"pin" json:"pin"`
	Images       []string      `bson:"images" json:"images"`
	CreatedAt    time.Time     `bson:"created_at" json:"createdAt"`
}

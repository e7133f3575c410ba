package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Car represents a listing made available for booking by its owner.
// Uploaded images and documents are referenced by their storage keys.
type Car struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID            bson.ObjectID `bson:"owner_id" json:"ownerId"`
	Model              string        `bson:"model" json:"model"`
	Type               string        `bson:"type" json:"type"`
	Passengers         int           `bson:"passengers" json:"passengers"`
	Rate               float64       `bson:"rate" json:"rate"`
	Location           string        `bson:"location" json:"location"`
	Description        string        `bson:"description" json:"description"`
	RegistrationNumber string        `bson:"registration_number" json:"registrationNumber"`
	Color              string        `bson:"color" json:"color"`
	Year               int           `bson:"year" json:"year"`
	Availability       bool          `bson:"availability" json:"availability"`
	OwnerPhone         string        `bson:"owner_phone" json:"ownerPhone"`
	Verified           bool          `bson:"verified" json:"verified"`
	CarImages          []string      `bson:"car_images" json:"carImages"`
	DriverLicense      string        `bson:"driver_license" json:"driverLicense"`
	NationalID         string        `bson:"national_id" json:"nationalId"`
	CreatedAt          time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `bson:"updated_at" json:"updatedAt"`
}

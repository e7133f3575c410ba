package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Booking represents a confirmed reservation of a car for a time range.
// Bookings are immutable once created.
type Booking struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	CarID     bson.ObjectID `bson:"car_id" json:"carId"`
	RenterID  bson.ObjectID `bson:"renter_id" json:"renterId"`
	StartTime time.Time     `bson:"start_time" json:"startTime"`
	EndTime   time.Time     `bson:"end_time" json:"endTime"`
	TotalCost float64       `bson:"total_cost" json:"totalCost"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}

// BookingWithCar is a booking joined with its car record.
type BookingWithCar struct {
	Booking `bson:",inline"`
	Car     Car `bson:"car" json:"car"`
}

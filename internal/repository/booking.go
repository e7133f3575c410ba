package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/driveeasy/driveeasy-api/internal/model"
)

// BookingRepository defines the interface for booking-related database operations.
type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	GetBookingWithCar(ctx context.Context, id string) (*model.BookingWithCar, error)
	ListBookingsWithCarByRenter(ctx context.Context, renterID string) ([]model.BookingWithCar, error)
	CountOverlapping(ctx context.Context, carID string, start, end time.Time) (int64, error)
}

const bookingCollection = "bookings"

type bookingMongoRepository struct {
	db *mongo.Database
}

func NewBookingMongoRepository(db *mongo.Database) BookingRepository {
	return &bookingMongoRepository{db: db}
}

func (r *bookingMongoRepository) CreateBooking(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.CreatedAt = time.Now()

	result, err := r.db.Collection(bookingCollection).InsertOne(ctx, booking)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		booking.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return booking, nil
}

// carLookupStages joins each booking with its car record from the cars
// collection, embedding the car inline under "car".
func carLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         carCollection,
			"localField":   "car_id",
			"foreignField": "_id",
			"as":           "car",
		}}},
		{{Key: "$unwind", Value: "$car"}},
	}
}

func (r *bookingMongoRepository) GetBookingWithCar(ctx context.Context, id string) (*model.BookingWithCar, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{"_id": objectID}}},
	}, carLookupStages()...)

	cursor, err := r.db.Collection(bookingCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var bookings []model.BookingWithCar
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}

	if len(bookings) == 0 {
		return nil, mongo.ErrNoDocuments
	}

	return &bookings[0], nil
}

func (r *bookingMongoRepository) ListBookingsWithCarByRenter(
	ctx context.Context,
	renterID string,
) ([]model.BookingWithCar, error) {
	objectID, err := bson.ObjectIDFromHex(renterID)
	if err != nil {
		return nil, err
	}

	pipeline := append([]bson.D{
		{{Key: "$match", Value: bson.M{"renter_id": objectID}}},
	}, carLookupStages()...)

	cursor, err := r.db.Collection(bookingCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	var bookings []model.BookingWithCar
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *bookingMongoRepository) CountOverlapping(
	ctx context.Context,
	carID string,
	start, end time.Time,
) (int64, error) {
	objectID, err := bson.ObjectIDFromHex(carID)
	if err != nil {
		return 0, err
	}

	return r.db.Collection(bookingCollection).CountDocuments(ctx, bson.M{
		"car_id":     objectID,
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	})
}

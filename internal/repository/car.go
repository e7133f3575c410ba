package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/driveeasy/driveeasy-api/internal/model"
)

// CarRepository defines the interface for car-related database operations.
type CarRepository interface {
	CreateCar(ctx context.Context, car *model.Car) (*model.Car, error)
	GetCar(ctx context.Context, id string) (*model.Car, error)
	ListCars(ctx context.Context) ([]model.Car, error)
	ListCarsByOwner(ctx context.Context, ownerID string) ([]model.Car, error)
	UpdateCar(ctx context.Context, id string, params UpdateCarParams) (*model.Car, error)
	DeleteCar(ctx context.Context, id string) (*model.Car, error)
}

// UpdateCarParams defines the parameters for updating a car listing.
// File reference fields are pointers so that only re-uploaded documents
// replace the stored ones.
type UpdateCarParams struct {
	Model              string
	Type               string
	Passengers         int
	Rate               float64
	Location           string
	Description        string
	RegistrationNumber string
	Color              string
	Year               int
	Availability       bool
	OwnerPhone         string
	CarImages          *[]string
	DriverLicense      *string
	NationalID         *string
}

const carCollection = "cars"

type carMongoRepository struct {
	db *mongo.Database
}

func NewCarMongoRepository(db *mongo.Database) CarRepository {
	return &carMongoRepository{db: db}
}

func (r *carMongoRepository) CreateCar(ctx context.Context, car *model.Car) (*model.Car, error) {
	now := time.Now()
	car.CreatedAt = now
	car.UpdatedAt = now

	result, err := r.db.Collection(carCollection).InsertOne(ctx, car)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		car.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return car, nil
}

func (r *carMongoRepository) GetCar(ctx context.Context, id string) (*model.Car, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(carCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var car model.Car
	if err := result.Decode(&car); err != nil {
		return nil, err
	}

	return &car, nil
}

func (r *carMongoRepository) ListCars(ctx context.Context) ([]model.Car, error) {
	cursor, err := r.db.Collection(carCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var cars []model.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}

	return cars, nil
}

func (r *carMongoRepository) ListCarsByOwner(ctx context.Context, ownerID string) ([]model.Car, error) {
	objectID, err := bson.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, err
	}

	cursor, err := r.db.Collection(carCollection).Find(ctx, bson.M{"owner_id": objectID})
	if err != nil {
		return nil, err
	}

	var cars []model.Car
	if err := cursor.All(ctx, &cars); err != nil {
		return nil, err
	}

	return cars, nil
}

func (r *carMongoRepository) UpdateCar(
	ctx context.Context,
	id string,
	params UpdateCarParams,
) (*model.Car, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	updateMap := bson.M{
		"model":               params.Model,
		"type":                params.Type,
		"passengers":          params.Passengers,
		"rate":                params.Rate,
		"location":            params.Location,
		"description":         params.Description,
		"registration_number": params.RegistrationNumber,
		"color":               params.Color,
		"year":                params.Year,
		"availability":        params.Availability,
		"owner_phone":         params.OwnerPhone,
		"updated_at":          time.Now(),
	}
	if params.CarImages != nil {
		updateMap["car_images"] = *params.CarImages
	}
	if params.DriverLicense != nil {
		updateMap["driver_license"] = *params.DriverLicense
	}
	if params.NationalID != nil {
		updateMap["national_id"] = *params.NationalID
	}

	result := r.db.Collection(carCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": updateMap},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var car model.Car
	if err := result.Decode(&car); err != nil {
		return nil, err
	}

	return &car, nil
}

func (r *carMongoRepository) DeleteCar(ctx context.Context, id string) (*model.Car, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(carCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var car model.Car
	if err := result.Decode(&car); err != nil {
		return nil, err
	}

	return &car, nil
}

package usecase

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/driveeasy/driveeasy-api/internal/model"
	"github.com/driveeasy/driveeasy-api/internal/payload"
	"github.com/driveeasy/driveeasy-api/internal/repository"
	"github.com/driveeasy/driveeasy-api/internal/storage"
)

// CarUsecase defines the interface for car listing use cases.
type CarUsecase interface {
	ListCars(ctx context.Context) ([]model.Car, error)
	GetCar(ctx context.Context, id string) (*model.Car, error)
	ListCarsByOwner(ctx context.Context, callerID, ownerID string) ([]model.Car, error)
	CreateCar(ctx context.Context, callerID string, params CreateCarParams) (*model.Car, error)
	UpdateCar(ctx context.Context, callerID, id string, params UpdateCarParams) (*model.Car, error)
	DeleteCar(ctx context.Context, callerID, id string) error
}

// CreateCarParams defines the parameters for creating a car listing.
type CreateCarParams struct {
	Fields        payload.CarFields
	OwnerID       string
	CarImages     []payload.File
	DriverLicense payload.File
	NationalID    payload.File
}

// UpdateCarParams defines the parameters for updating a car listing. File
// fields left nil keep the stored documents untouched.
type UpdateCarParams struct {
	Fields        payload.CarFields
	CarImages     []payload.File
	DriverLicense *payload.File
	NationalID    *payload.File
}

var (
	ErrCarNotFound  = errors.New("car not found")
	ErrInvalidCarID = errors.New("invalid car id")
	ErrNotCarOwner  = errors.New("caller does not own this car")
	ErrNotSelf      = errors.New("caller can only act on their own resources")
)

type carUsecase struct {
	carRepo repository.CarRepository
	store   storage.Store
}

func NewCarUsecase(carRepo repository.CarRepository, store storage.Store) CarUsecase {
	return &carUsecase{
		carRepo: carRepo,
		store:   store,
	}
}

func (u *carUsecase) ListCars(ctx context.Context) ([]model.Car, error) {
	return u.carRepo.ListCars(ctx)
}

func (u *carUsecase) GetCar(ctx context.Context, id string) (*model.Car, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrInvalidCarID
	}

	car, err := u.carRepo.GetCar(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCarNotFound
		}

		return nil, err
	}

	return car, nil
}

func (u *carUsecase) ListCarsByOwner(ctx context.Context, callerID, ownerID string) ([]model.Car, error) {
	if _, err := bson.ObjectIDFromHex(ownerID); err != nil {
		return nil, ErrInvalidCarID
	}

	if ownerID != callerID {
		return nil, ErrNotSelf
	}

	return u.carRepo.ListCarsByOwner(ctx, ownerID)
}

func (u *carUsecase) CreateCar(ctx context.Context, callerID string, params CreateCarParams) (*model.Car, error) {
	ownerID, err := bson.ObjectIDFromHex(params.OwnerID)
	if err != nil {
		return nil, ErrInvalidCarID
	}

	if params.OwnerID != callerID {
		return nil, ErrNotSelf
	}

	imageKeys := make([]string, 0, len(params.CarImages))
	for _, image := range params.CarImages {
		key, err := u.store.Save(ctx, image.Name, image.Data)
		if err != nil {
			return nil, err
		}
		imageKeys = append(imageKeys, key)
	}

	licenseKey, err := u.store.Save(ctx, params.DriverLicense.Name, params.DriverLicense.Data)
	if err != nil {
		return nil, err
	}

	nationalIDKey, err := u.store.Save(ctx, params.NationalID.Name, params.NationalID.Data)
	if err != nil {
		return nil, err
	}

	fields := params.Fields

	return u.carRepo.CreateCar(ctx, &model.Car{
		OwnerID:            ownerID,
		Model:              fields.Model,
		Type:               fields.Type,
		Passengers:         fields.Passengers,
		Rate:               fields.Rate,
		Location:           fields.Location,
		Description:        fields.Description,
		RegistrationNumber: fields.RegistrationNumber,
		Color:              fields.Color,
		Year:               fields.Year,
		Availability:       fields.Availability,
		OwnerPhone:         fields.OwnerPhone,
		Verified:           false,
		CarImages:          imageKeys,
		DriverLicense:      licenseKey,
		NationalID:         nationalIDKey,
	})
}

func (u *carUsecase) UpdateCar(
	ctx context.Context,
	callerID, id string,
	params UpdateCarParams,
) (*model.Car, error) {
	car, err := u.GetCar(ctx, id)
	if err != nil {
		return nil, err
	}

	if car.OwnerID.Hex() != callerID {
		return nil, ErrNotCarOwner
	}

	fields := params.Fields
	updateParams := repository.UpdateCarParams{
		Model:              fields.Model,
		Type:               fields.Type,
		Passengers:         fields.Passengers,
		Rate:               fields.Rate,
		Location:           fields.Location,
		Description:        fields.Description,
		RegistrationNumber: fields.RegistrationNumber,
		Color:              fields.Color,
		Year:               fields.Year,
		Availability:       fields.Availability,
		OwnerPhone:         fields.OwnerPhone,
	}

	if len(params.CarImages) > 0 {
		imageKeys := make([]string, 0, len(params.CarImages))
		for _, image := range params.CarImages {
			key, err := u.store.Save(ctx, image.Name, image.Data)
			if err != nil {
				return nil, err
			}
			imageKeys = append(imageKeys, key)
		}
		updateParams.CarImages = &imageKeys
	}

	if params.DriverLicense != nil {
		key, err := u.store.Save(ctx, params.DriverLicense.Name, params.DriverLicense.Data)
		if err != nil {
			return nil, err
		}
		updateParams.DriverLicense = &key
	}

	if params.NationalID != nil {
		key, err := u.store.Save(ctx, params.NationalID.Name, params.NationalID.Data)
		if err != nil {
			return nil, err
		}
		updateParams.NationalID = &key
	}

	updated, err := u.carRepo.UpdateCar(ctx, id, updateParams)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCarNotFound
		}

		return nil, err
	}

	return updated, nil
}

func (u *carUsecase) DeleteCar(ctx context.Context, callerID, id string) error {
	car, err := u.GetCar(ctx, id)
	if err != nil {
		return err
	}

	if car.OwnerID.Hex() != callerID {
		return ErrNotCarOwner
	}

	if _, err := u.carRepo.DeleteCar(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrCarNotFound
		}

		return err
	}

	return nil
}

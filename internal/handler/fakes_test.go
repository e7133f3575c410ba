package handler

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/driveeasy/driveeasy-api/internal/model"
	"github.com/driveeasy/driveeasy-api/internal/repository"
)

// In-memory repositories backing the handler tests.

type fakeUserRepo struct {
	byID    map[string]*model.User
	byEmail map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*model.User{}, byEmail: map[string]*model.User{}}
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if _, exists := f.byEmail[user.Email]; exists {
		return nil, mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}
	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now()
	f.byID[user.ID.Hex()] = user
	f.byEmail[user.Email] = user
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (*model.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return user, nil
}

type fakeCarRepo struct {
	cars map[string]*model.Car
}

func newFakeCarRepo() *fakeCarRepo {
	return &fakeCarRepo{cars: map[string]*model.Car{}}
}

func (f *fakeCarRepo) CreateCar(_ context.Context, car *model.Car) (*model.Car, error) {
	car.ID = bson.NewObjectID()
	f.cars[car.ID.Hex()] = car
	return car, nil
}

func (f *fakeCarRepo) GetCar(_ context.Context, id string) (*model.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return car, nil
}

func (f *fakeCarRepo) ListCars(context.Context) ([]model.Car, error) {
	var out []model.Car
	for _, car := range f.cars {
		out = append(out, *car)
	}
	return out, nil
}

func (f *fakeCarRepo) ListCarsByOwner(_ context.Context, ownerID string) ([]model.Car, error) {
	var out []model.Car
	for _, car := range f.cars {
		if car.OwnerID.Hex() == ownerID {
			out = append(out, *car)
		}
	}
	return out, nil
}

func (f *fakeCarRepo) UpdateCar(_ context.Context, id string, params repository.UpdateCarParams) (*model.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	car.Model = params.Model
	car.Type = params.Type
	car.Passengers = params.Passengers
	car.Rate = params.Rate
	car.Location = params.Location
	car.Description = params.Description
	car.RegistrationNumber = params.RegistrationNumber
	car.Color = params.Color
	car.Year = params.Year
	car.Availability = params.Availability
	car.OwnerPhone = params.OwnerPhone
	if params.CarImages != nil {
		car.CarImages = *params.CarImages
	}
	if params.DriverLicense != nil {
		car.DriverLicense = *params.DriverLicense
	}
	if params.NationalID != nil {
		car.NationalID = *params.NationalID
	}
	return car, nil
}

func (f *fakeCarRepo) DeleteCar(_ context.Context, id string) (*model.Car, error) {
	car, ok := f.cars[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	delete(f.cars, id)
	return car, nil
}

type fakeBookingRepo struct {
	bookings map[string]*model.Booking
	cars     *fakeCarRepo
}

func newFakeBookingRepo(cars *fakeCarRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[string]*model.Booking{}, cars: cars}
}

func (f *fakeBookingRepo) CreateBooking(_ context.Context, booking *model.Booking) (*model.Booking, error) {
	booking.ID = bson.NewObjectID()
	f.bookings[booking.ID.Hex()] = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetBookingWithCar(_ context.Context, id string) (*model.BookingWithCar, error) {
	booking, ok := f.bookings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	car := f.cars.cars[booking.CarID.Hex()]
	return &model.BookingWithCar{Booking: *booking, Car: *car}, nil
}

func (f *fakeBookingRepo) ListBookingsWithCarByRenter(_ context.Context, renterID string) ([]model.BookingWithCar, error) {
	var out []model.BookingWithCar
	for _, booking := range f.bookings {
		if booking.RenterID.Hex() == renterID {
			car := f.cars.cars[booking.CarID.Hex()]
			out = append(out, model.BookingWithCar{Booking: *booking, Car: *car})
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CountOverlapping(_ context.Context, carID string, start, end time.Time) (int64, error) {
	var count int64
	for _, booking := range f.bookings {
		if booking.CarID.Hex() == carID && booking.StartTime.Before(end) && booking.EndTime.After(start) {
			count++
		}
	}
	return count, nil
}

type fakeStore struct {
	saved map[string][]byte
}

func (f *fakeStore) Save(_ context.Context, name string, data []byte) (string, error) {
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	key := fmt.Sprintf("stored-%d-%s", len(f.saved), name)
	f.saved[key] = data
	return key, nil
}

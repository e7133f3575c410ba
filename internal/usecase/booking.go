package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/driveeasy/driveeasy-api/internal/model"
	"github.com/driveeasy/driveeasy-api/internal/repository"
	"github.com/driveeasy/driveeasy-api/shared/mailer"
)

// BookingUsecase defines the interface for booking use cases.
type BookingUsecase interface {
	CreateBooking(ctx context.Context, callerID string, params CreateBookingParams) (*model.Booking, error)
	ListBookingsForUser(ctx context.Context, callerID string) ([]model.BookingWithCar, error)
	GetBooking(ctx context.Context, callerID, id string) (*model.BookingWithCar, error)
}

// CreateBookingParams defines the parameters for creating a booking.
type CreateBookingParams struct {
	CarID     string
	RenterID  string
	StartTime time.Time
	EndTime   time.Time
	TotalCost float64
}

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrNotBookingRenter = errors.New("caller is not the renter of this booking")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrCostMismatch     = errors.New("total cost does not match the car rate for the selected time range")
	ErrCarUnavailable   = errors.New("car is not available for the selected dates")
)

// costTolerance absorbs rounding differences between the client's and the
// server's cost computation.
const costTolerance = 0.01

type bookingUsecase struct {
	bookingRepo   repository.BookingRepository
	carRepo       repository.CarRepository
	userRepo      repository.UserRepository
	mailer        *mailer.Mailer
	logger        *zerolog.Logger
	conflictCheck bool
}

func NewBookingUsecase(
	bookingRepo repository.BookingRepository,
	carRepo repository.CarRepository,
	userRepo repository.UserRepository,
	bookingMailer *mailer.Mailer,
	logger *zerolog.Logger,
	conflictCheck bool,
) BookingUsecase {
	return &bookingUsecase{
		bookingRepo:   bookingRepo,
		carRepo:       carRepo,
		userRepo:      userRepo,
		mailer:        bookingMailer,
		logger:        logger,
		conflictCheck: conflictCheck,
	}
}

// ExpectedCost computes the booking cost from the car's hourly rate and the
// booked time range, rounded to cents.
func ExpectedCost(rate float64, start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	return math.Round(rate*hours*100) / 100
}

func (u *bookingUsecase) CreateBooking(
	ctx context.Context,
	callerID string,
	params CreateBookingParams,
) (*model.Booking, error) {
	if params.RenterID != callerID {
		return nil, ErrNotSelf
	}

	if !params.EndTime.After(params.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	carID, err := bson.ObjectIDFromHex(params.CarID)
	if err != nil {
		return nil, ErrCarNotFound
	}

	renterID, err := bson.ObjectIDFromHex(params.RenterID)
	if err != nil {
		return nil, ErrNotSelf
	}

	car, err := u.carRepo.GetCar(ctx, params.CarID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCarNotFound
		}

		return nil, err
	}

	totalCost := ExpectedCost(car.Rate, params.StartTime, params.EndTime)
	if math.Abs(totalCost-params.TotalCost) > costTolerance {
		return nil, ErrCostMismatch
	}

	if u.conflictCheck {
		count, err := u.bookingRepo.CountOverlapping(ctx, params.CarID, params.StartTime, params.EndTime)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrCarUnavailable
		}
	}

	booking, err := u.bookingRepo.CreateBooking(ctx, &model.Booking{
		CarID:     carID,
		RenterID:  renterID,
		StartTime: params.StartTime,
		EndTime:   params.EndTime,
		TotalCost: totalCost,
	})
	if err != nil {
		return nil, err
	}

	u.sendConfirmation(ctx, booking, car)

	return booking, nil
}

func (u *bookingUsecase) ListBookingsForUser(ctx context.Context, callerID string) ([]model.BookingWithCar, error) {
	return u.bookingRepo.ListBookingsWithCarByRenter(ctx, callerID)
}

func (u *bookingUsecase) GetBooking(ctx context.Context, callerID, id string) (*model.BookingWithCar, error) {
	if _, err := bson.ObjectIDFromHex(id); err != nil {
		return nil, ErrBookingNotFound
	}

	booking, err := u.bookingRepo.GetBookingWithCar(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrBookingNotFound
		}

		return nil, err
	}

	if booking.RenterID.Hex() != callerID {
		return nil, ErrNotBookingRenter
	}

	return booking, nil
}

// sendConfirmation emails the renter a booking confirmation. Best effort: a
// mail failure never fails the booking.
func (u *bookingUsecase) sendConfirmation(ctx context.Context, booking *model.Booking, car *model.Car) {
	if u.mailer == nil {
		return
	}

	renter, err := u.userRepo.GetUser(ctx, booking.RenterID.Hex())
	if err != nil {
		u.logger.Warn().Err(err).Str("booking_id", booking.ID.Hex()).
			Msg("failed to load renter for booking confirmation email")
		return
	}

	err = u.mailer.Send(mailer.Email{
		To:      []string{renter.Email},
		Subject: "Your DriveEasy booking is confirmed",
		Body: fmt.Sprintf(
			"Your booking of the %s from %s to %s is confirmed. Total cost: %.2f.",
			car.Model,
			booking.StartTime.Format(time.RFC1123),
			booking.EndTime.Format(time.RFC1123),
			booking.TotalCost,
		),
	})
	if err != nil {
		u.logger.Warn().Err(err).Str("booking_id", booking.ID.Hex()).
			Msg("failed to send booking confirmation email")
	}
}

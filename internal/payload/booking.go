package payload

import "time"

type CreateBookingRequest struct {
	CarID     string    `json:"carId"     validate:"required"`
	RenterID  string    `json:"renterId"  validate:"required"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime"   validate:"required"`
	TotalCost float64   `json:"totalCost" validate:"required"`
}

type CreateBookingResponse struct {
	Message   string `json:"message"`
	BookingID string `json:"bookingId"`
}

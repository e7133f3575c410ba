package payload

// CarFields are the listing fields shared by create and update, coerced from
// the multipart form once at the boundary.
type CarFields struct {
	Model              string  `validate:"required"`
	Type               string  `validate:"required"`
	Passengers         int     `validate:"required,gt=0"`
	Rate               float64 `validate:"required,gt=0"`
	Location           string  `validate:"required"`
	Description        string  `validate:"required"`
	RegistrationNumber string  `validate:"required"`
	Color              string  `validate:"required"`
	Year               int     `validate:"required"`
	Availability       bool
	OwnerPhone         string `validate:"required"`
}

type CreateCarRequest struct {
	CarFields
	OwnerID string `validate:"required"`
}

type CreateCarResponse struct {
	Message string `json:"message"`
	CarID   string `json:"carId"`
}

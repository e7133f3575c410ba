package payload

// File is an uploaded document decoded at the HTTP boundary.
type File struct {
	Name string
	Data []byte
}

type SignUpRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by signup and signin. Expiry is the token expiry
// as milliseconds since the Unix epoch.
type AuthResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"`
}

type RefreshResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"`
}

package usecase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/driveeasy/driveeasy-api/internal/model"
	"github.com/driveeasy/driveeasy-api/internal/payload"
	"github.com/driveeasy/driveeasy-api/internal/repository"
	"github.com/driveeasy/driveeasy-api/internal/storage"
	"github.com/driveeasy/driveeasy-api/shared/auth"
	"github.com/driveeasy/driveeasy-api/shared/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	SignUp(ctx context.Context, params SignUpParams) (*model.User, *Session, error)
	SignIn(ctx context.Context, params SignInParams) (*model.User, *Session, error)
	Refresh(ctx context.Context, userID string) (*Session, error)
}

// SignUpParams defines the parameters for user registration. License and Pin
// are the required identity documents; Images are optional supplements.
type SignUpParams struct {
	Email    string
	Password string
	License  payload.File
	Pin      payload.File
	Images   []payload.File
}

// SignInParams defines the parameters for user login.
type SignInParams struct {
	Email    string
	Password string
}

// Session is a freshly issued token together with its expiry time.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type authUsecase struct {
	userRepo repository.UserRepository
	store    storage.Store
	jwtAuth  auth.JWTAuthenticator
}

func NewAuthUsecase(
	userRepo repository.UserRepository,
	store storage.Store,
	jwtAuth auth.JWTAuthenticator,
) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		store:    store,
		jwtAuth:  jwtAuth,
	}
}

func (u *authUsecase) SignUp(ctx context.Context, params SignUpParams) (*model.User, *Session, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, nil, err
	}

	licenseKey, err := u.store.Save(ctx, params.License.Name, params.License.Data)
	if err != nil {
		return nil, nil, err
	}

	pinKey, err := u.store.Save(ctx, params.Pin.Name, params.Pin.Data)
	if err != nil {
		return nil, nil, err
	}

	imageKeys := make([]string, 0, len(params.Images))
	for _, image := range params.Images {
		key, err := u.store.Save(ctx, image.Name, image.Data)
		if err != nil {
			return nil, nil, err
		}
		imageKeys = append(imageKeys, key)
	}

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:        params.Email,
		PasswordHash: passwordHash,
		Verified:     false,
		License:      licenseKey,
		Pin:          pinKey,
		Images:       imageKeys,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, nil, ErrUserAlreadyExists
		}

		return nil, nil, err
	}

	session, err := u.createSession(user.ID.Hex())
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

func (u *authUsecase) SignIn(ctx context.Context, params SignInParams) (*model.User, *Session, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil, ErrInvalidCredentials
		}

		return nil, nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, nil, err
	} else if !ok {
		return nil, nil, ErrInvalidCredentials
	}

	session, err := u.createSession(user.ID.Hex())
	if err != nil {
		return nil, nil, err
	}

	return user, session, nil
}

func (u *authUsecase) Refresh(ctx context.Context, userID string) (*Session, error) {
	user, err := u.userRepo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return u.createSession(user.ID.Hex())
}

func (u *authUsecase) createSession(userID string) (*Session, error) {
	token, expiresAt, err := u.jwtAuth.GenerateToken(userID)
	if err != nil {
		return nil, err
	}

	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

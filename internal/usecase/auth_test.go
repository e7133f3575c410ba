package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/driveeasy/driveeasy-api/internal/model"
	"github.com/driveeasy/driveeasy-api/internal/payload"
	"github.com/driveeasy/driveeasy-api/shared/auth"
	"github.com/driveeasy/driveeasy-api/shared/security"
)

// --- fakes ---

type fakeUserRepo struct {
	createErr error
	created   *model.User

	byEmail    *model.User
	byEmailErr error

	byID    *model.User
	byIDErr error
}

func (f *fakeUserRepo) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user.ID = bson.NewObjectID()
	f.created = user
	return user, nil
}

func (f *fakeUserRepo) GetUser(context.Context, string) (*model.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeUserRepo) GetUserByEmail(context.Context, string) (*model.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmail, nil
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

func testJWTAuth() auth.JWTAuthenticator {
	return auth.NewJWTAuthenticator("test-secret", "driveeasy", 24*time.Hour)
}

func duplicateKeyErr() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
}

func signUpParams() SignUpParams {
	return SignUpParams{
		Email:    "a@b.com",
		Password: "secret1",
		License:  payload.File{Name: "license.png", Data: []byte("license")},
		Pin:      payload.File{Name: "pin.png", Data: []byte("pin")},
		Images:   []payload.File{{Name: "car.jpg", Data: []byte("img")}},
	}
}

// --- tests ---

func TestSignUpSuccess(t *testing.T) {
	repo := &fakeUserRepo{}
	store := &fakeStore{}
	u := NewAuthUsecase(repo, store, testJWTAuth())

	user, session, err := u.SignUp(context.Background(), signUpParams())
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", user.Email)
	assert.False(t, user.Verified)
	assert.NotEmpty(t, user.License)
	assert.NotEmpty(t, user.Pin)
	assert.Len(t, user.Images, 1)
	assert.Len(t, store.saved, 3)

	// password is stored hashed, never verbatim
	assert.NotEqual(t, "secret1", user.PasswordHash)
	ok, err := security.VerifyPassword("secret1", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)

	assert.NotEmpty(t, session.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), session.ExpiresAt, time.Minute)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{createErr: duplicateKeyErr()}
	u := NewAuthUsecase(repo, &fakeStore{}, testJWTAuth())

	_, _, err := u.SignUp(context.Background(), signUpParams())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestSignInSuccess(t *testing.T) {
	hash, err := security.HashPassword("secret1")
	require.NoError(t, err)

	repo := &fakeUserRepo{byEmail: &model.User{
		ID:           bson.NewObjectID(),
		Email:        "a@b.com",
		PasswordHash: hash,
	}}
	u := NewAuthUsecase(repo, &fakeStore{}, testJWTAuth())

	user, session, err := u.SignIn(context.Background(), SignInParams{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.NotEmpty(t, session.Token)
}

func TestSignInUnknownEmail(t *testing.T) {
	repo := &fakeUserRepo{byEmailErr: mongo.ErrNoDocuments}
	u := NewAuthUsecase(repo, &fakeStore{}, testJWTAuth())

	_, _, err := u.SignIn(context.Background(), SignInParams{Email: "nobody@b.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInWrongPassword(t *testing.T) {
	hash, err := security.HashPassword("secret1")
	require.NoError(t, err)

	repo := &fakeUserRepo{byEmail: &model.User{
		ID:           bson.NewObjectID(),
		Email:        "a@b.com",
		PasswordHash: hash,
	}}
	u := NewAuthUsecase(repo, &fakeStore{}, testJWTAuth())

	_, _, err = u.SignIn(context.Background(), SignInParams{Email: "a@b.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshSuccess(t *testing.T) {
	userID := bson.NewObjectID()
	repo := &fakeUserRepo{byID: &model.User{ID: userID, Email: "a@b.com"}}
	u := NewAuthUsecase(repo, &fakeStore{}, testJWTAuth())

	session, err := u.Refresh(context.Background(), userID.Hex())
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
}

func TestRefreshUserGone(t *testing.T) {
	repo := &fakeUserRepo{byIDErr: mongo.ErrNoDocuments}
	u := NewAuthUsecase(repo, &fakeStore{}, testJWTAuth())

	_, err := u.Refresh(context.Background(), bson.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

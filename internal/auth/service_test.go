package auth_test

import (
	"context"
	"errors"
	"testing"

	"bus-ticketing/internal/auth"
	"bus-ticketing/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserDB struct {
	mock.Mock
}

func (m *MockUserDB) CreateUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserDB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestRegisterHashesPassword(t *testing.T) {
	mockDB := new(MockUserDB)
	svc := auth.NewAuthService(mockDB, nil, nil)

	mockDB.On("GetUserByEmail", mock.Anything, "maria@example.com").Return(nil, errors.New("no rows"))
	mockDB.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Email == "maria@example.com" &&
			u.PasswordHash != "senha-secreta" &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("senha-secreta")) == nil
	})).Return(nil)

	user, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "  Maria@Example.com ",
		Password: "senha-secreta",
		FullName: "Maria da Silva",
	})

	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", user.Email, "email is normalized")
	assert.NotEmpty(t, user.ID)
	mockDB.AssertExpectations(t)
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	mockDB := new(MockUserDB)
	svc := auth.NewAuthService(mockDB, nil, nil)

	mockDB.On("GetUserByEmail", mock.Anything, "maria@example.com").
		Return(&models.User{ID: "existing"}, nil)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Email:    "maria@example.com",
		Password: "senha-secreta",
		FullName: "Maria da Silva",
	})

	assert.ErrorIs(t, err, auth.ErrEmailTaken)
	mockDB.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegisterValidation(t *testing.T) {
	mockDB := new(MockUserDB)
	svc := auth.NewAuthService(mockDB, nil, nil)

	cases := []models.RegisterRequest{
		{Email: "not-an-email", Password: "senha-secreta", FullName: "Maria da Silva"},
		{Email: "", Password: "senha-secreta", FullName: "Maria da Silva"},
		{Email: "maria@example.com", Password: "curta", FullName: "Maria da Silva"},
		{Email: "maria@example.com", Password: "senha-secreta", FullName: "Jo"},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		assert.Error(t, err, "request %+v should be rejected", req)
	}
	mockDB.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	mockDB := new(MockUserDB)
	svc := auth.NewAuthService(mockDB, nil, nil)

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-secreta"), bcrypt.MinCost)
	require.NoError(t, err)
	mockDB.On("GetUserByEmail", mock.Anything, "maria@example.com").
		Return(&models.User{ID: "user-1", Email: "maria@example.com", PasswordHash: string(hash)}, nil)

	_, err = svc.Login(context.Background(), models.LoginRequest{
		Email:    "maria@example.com",
		Password: "senha-errada",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	mockDB := new(MockUserDB)
	svc := auth.NewAuthService(mockDB, nil, nil)

	mockDB.On("GetUserByEmail", mock.Anything, "nobody@example.com").Return(nil, errors.New("no rows"))

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@example.com",
		Password: "senha-secreta",
	})

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bus-ticketing/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserDBLayer interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// AuthService handles registration and login. Passwords are stored as
// bcrypt hashes; sessions live in the redis SessionStore until logout
// or expiry.
type AuthService struct {
	DB       UserDBLayer
	Tokens   *TokenIssuer
	Sessions *SessionStore
}

func NewAuthService(db UserDBLayer, tokens *TokenIssuer, sessions *SessionStore) *AuthService {
	return &AuthService{DB: db, Tokens: tokens, Sessions: sessions}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("invalid email")
	}
	if len(req.Password) < 6 {
		return nil, errors.New("password must be at least 6 characters")
	}
	if len(strings.TrimSpace(req.FullName)) < 3 {
		return nil, errors.New("name must be at least 3 characters")
	}

	if existing, err := s.DB.GetUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.DB.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// Login verifies credentials, issues a token and opens a session.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.DB.GetUserByEmail(ctx, email)
	if err != nil || user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.Tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	if err := s.Sessions.Save(ctx, token, *user); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.Sessions.Delete(ctx, token)
}

// CurrentUser resolves a token to its session user. Returns nil when
// the token is invalid or the session was closed.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if _, err := s.Tokens.Verify(token); err != nil {
		return nil, nil
	}
	return s.Sessions.Get(ctx, token)
}

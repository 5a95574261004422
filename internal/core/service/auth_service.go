package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/martijn/papertrade/internal/core/domain"
	"github.com/martijn/papertrade/internal/core/repository"
)

const BcryptCost = 10

type AuthService struct {
	userRepo     repository.UserRepository
	jwtSecret    string
	jwtAlgorithm string
	sessionTTL   time.Duration
	startingCash decimal.Decimal
}

func NewAuthService(
	userRepo repository.UserRepository,
	jwtSecret string,
	jwtAlgorithm string,
	sessionTTL time.Duration,
	startingCash decimal.Decimal,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		jwtSecret:    jwtSecret,
		jwtAlgorithm: jwtAlgorithm,
		sessionTTL:   sessionTTL,
		startingCash: startingCash,
	}
}

// HashPassword hashes a password using bcrypt
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword verifies a password against a hash
func (s *AuthService) VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// Register validates the registration input, hashes the password and
// creates the user with the configured starting cash balance.
func (s *AuthService) Register(ctx context.Context, username, password, confirmation string) (*domain.User, error) {
	if username == "" {
		return nil, NewServiceError(http.StatusBadRequest, "missing username")
	}
	if password == "" {
		return nil, NewServiceError(http.StatusBadRequest, "missing password")
	}
	if password != confirmation {
		return nil, NewServiceError(http.StatusBadRequest, "passwords don't match")
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(username, hash, s.startingCash)
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user by username and password. Absent user and
// wrong password both map to ErrInvalidCredentials so the response does
// not reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" {
		return nil, NewServiceError(http.StatusForbidden, "must provide username")
	}
	if password == "" {
		return nil, NewServiceError(http.StatusForbidden, "must provide password")
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.VerifyPassword(password, user.Hash) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// IssueSessionToken generates a signed session JWT bound to the user id
func (s *AuthService) IssueSessionToken(user *domain.User) (string, error) {
	now := time.Now()

	claims := SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "papertrade",
		},
	}

	var signingMethod jwt.SigningMethod
	switch s.jwtAlgorithm {
	case "HS256":
		signingMethod = jwt.SigningMethodHS256
	case "HS384":
		signingMethod = jwt.SigningMethodHS384
	case "HS512":
		signingMethod = jwt.SigningMethodHS512
	default:
		signingMethod = jwt.SigningMethodHS256
	}

	token := jwt.NewWithClaims(signingMethod, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// ValidateSessionToken validates a session JWT and returns the claims
func (s *AuthService) ValidateSessionToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if token.Method.Alg() != s.jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid session claims")
}

// SessionClaims represents the session JWT claims
type SessionClaims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/googleauth"
	"storefront/pkg/rabbitmq"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the caller cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidGoogleToken is returned when Google token validation fails.
	ErrInvalidGoogleToken = errors.New("invalid google token")
	// ErrEmailTaken is returned when registering an already known email.
	ErrEmailTaken = errors.New("email already registered")
)

const bcryptCost = 12

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo       repositories.UserRepository
	googleVerifier googleauth.Verifier
	mqClient       *rabbitmq.Client
	jwtSecret      []byte
	tokenTTL       time.Duration
}

// NewAuthService creates a new AuthService. mqClient may be nil when no
// broker is configured; events are then skipped.
func NewAuthService(userRepo repositories.UserRepository, googleVerifier googleauth.Verifier, mqClient *rabbitmq.Client, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		googleVerifier: googleVerifier,
		mqClient:       mqClient,
		jwtSecret:      []byte(jwtSecret),
		tokenTTL:       15 * 24 * time.Hour,
	}
}

// TokenTTL returns the session token validity window.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// RegisterUser registers a new account with a hashed password.
func (s *AuthService) RegisterUser(ctx context.Context, userName, email, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		UserName: userName,
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.publishEvent("account.registered", map[string]interface{}{
		"userId": user.ID,
		"email":  user.Email,
	})

	return user, nil
}

// VerifyPassword authenticates an email/password pair and returns the
// account. Unknown email and wrong password produce the same error.
func (s *AuthService) VerifyPassword(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	// Google-only accounts carry no password hash and cannot log in this way.
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// VerifyGoogleToken validates a Google ID token and resolves it to an
// account, creating the account on first sign-in.
func (s *AuthService) VerifyGoogleToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.googleVerifier.Verify(ctx, token)
	if err != nil {
		log.Printf("Google token verification failed: %v", err)
		return nil, ErrInvalidGoogleToken
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = &models.User{
		UserName: claims.Name,
		Email:    claims.Email,
		GoogleID: claims.Subject,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user from google token: %w", err)
	}

	s.publishEvent("account.registered", map[string]interface{}{
		"userId":   user.ID,
		"email":    user.Email,
		"provider": "google",
	})

	return user, nil
}

// IssueSessionToken signs a session JWT carrying the account identity.
func (s *AuthService) IssueSessionToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       user.ID,
		"role":     user.Role,
		"email":    user.Email,
		"userName": user.UserName,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a session JWT, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func (s *AuthService) publishEvent(kind string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", kind, err)
		return
	}
	if err := s.mqClient.Publish(kind, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", kind, err)
	}
}

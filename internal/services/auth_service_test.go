package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/googleauth"
)

// MockUserRepository is a mock implementation of repositories.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	args := m.Called(ctx, page, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id, role string) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubVerifier is a canned googleauth.Verifier for tests.
type stubVerifier struct {
	claims *googleauth.Claims
	err    error
}

func (s stubVerifier) Verify(_ context.Context, _ string) (*googleauth.Claims, error) {
	return s.claims, s.err
}

func TestAuthService_RegisterUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, stubVerifier{}, nil, "test_jwt_secret")

	// Successful registration hashes the password and assigns the user role.
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.NotEqual(t, "password123", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	}).Return(nil).Once()

	user, err := authService.RegisterUser(ctx, "testuser", "test@example.com", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "test@example.com", user.Email)
	mockRepo.AssertExpectations(t)

	// Duplicate email is rejected.
	mockRepo.On("GetByEmail", ctx, "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.RegisterUser(ctx, "testuser", "test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrEmailTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyPassword(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, stubVerifier{}, nil, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		UserName: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}

	// Successful login.
	mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	got, err := authService.VerifyPassword(ctx, user.Email, "password123")
	assert.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	mockRepo.AssertExpectations(t)

	// Wrong password.
	mockRepo.On("GetByEmail", ctx, user.Email).Return(user, nil).Once()
	_, err = authService.VerifyPassword(ctx, user.Email, "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Unknown email collapses to the same error as a wrong password.
	mockRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, repositories.ErrUserNotFound).Once()
	_, err = authService.VerifyPassword(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Google-only accounts have no password hash and cannot log in this way.
	googleOnly := &models.User{ID: "user-456", Email: "g@example.com", GoogleID: "sub-1", Role: models.RoleUser}
	mockRepo.On("GetByEmail", ctx, googleOnly.Email).Return(googleOnly, nil).Once()
	_, err = authService.VerifyPassword(ctx, googleOnly.Email, "anything")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_VerifyGoogleToken(t *testing.T) {
	ctx := context.Background()

	// Invalid token.
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, stubVerifier{err: fmt.Errorf("bad signature")}, nil, "test_jwt_secret")
	_, err := authService.VerifyGoogleToken(ctx, "garbage")
	assert.ErrorIs(t, err, services.ErrInvalidGoogleToken)

	claims := &googleauth.Claims{Email: "g@example.com", Name: "G User", Subject: "sub-42"}

	// Existing account is returned untouched.
	mockRepo = new(MockUserRepository)
	authService = services.NewAuthService(mockRepo, stubVerifier{claims: claims}, nil, "test_jwt_secret")
	existing := &models.User{ID: "user-789", Email: claims.Email, UserName: "G User", Role: models.RoleAdmin}
	mockRepo.On("GetByEmail", ctx, claims.Email).Return(existing, nil).Once()

	got, err := authService.VerifyGoogleToken(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, existing.ID, got.ID)
	assert.Equal(t, models.RoleAdmin, got.Role)
	mockRepo.AssertExpectations(t)

	// First sign-in creates exactly one account: role user, no password,
	// subject id recorded.
	mockRepo = new(MockUserRepository)
	authService = services.NewAuthService(mockRepo, stubVerifier{claims: claims}, nil, "test_jwt_secret")
	mockRepo.On("GetByEmail", ctx, claims.Email).Return(nil, repositories.ErrUserNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*models.User)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Empty(t, user.Password)
		assert.Equal(t, "sub-42", user.GoogleID)
		assert.Equal(t, "G User", user.UserName)
	}).Return(nil).Once()

	got, err = authService.VerifyGoogleToken(ctx, "token")
	assert.NoError(t, err)
	assert.Equal(t, claims.Email, got.Email)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_SessionToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, stubVerifier{}, nil, testJWTSecret)

	user := &models.User{
		ID:       "user-123",
		UserName: "testuser",
		Email:    "test@example.com",
		Role:     models.RoleUser,
	}

	token, err := authService.IssueSessionToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims["id"])
	assert.Equal(t, user.Role, claims["role"])
	assert.Equal(t, user.Email, claims["email"])
	assert.Equal(t, user.UserName, claims["userName"])

	// Expiry sits 15 days out.
	exp := int64(claims["exp"].(float64))
	expected := time.Now().Add(15 * 24 * time.Hour).Unix()
	assert.InDelta(t, expected, exp, 60)

	// Tokens signed with another secret fail validation.
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	forged, _ := other.SignedString([]byte("other_secret"))
	_, err = authService.ValidateToken(forged)
	assert.Error(t, err)

	// Expired tokens fail validation.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredString)
	assert.Error(t, err)
}

package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrackr/fintrackr_backend/internal/apperrors"
	"github.com/fintrackr/fintrackr_backend/internal/core/domain"
	portssvc "github.com/fintrackr/fintrackr_backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr_backend/internal/core/services"
	"github.com/fintrackr/fintrackr_backend/internal/dto"
)

const testJWTSecret = "test-secret-key"

// MockUserRepository is a mock type for the UserRepository interface.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo, testJWTSecret, time.Hour)
}

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Name:     "Alex",
		Email:    "  Alex@Example.COM ",
		Password: "correct-horse",
	}

	var saved domain.User
	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).
		Return(nil).Once()

	created, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(created.UserID)
	// Email is normalized before storage
	suite.Equal("alex@example.com", created.Email)
	// Password is stored hashed, never verbatim
	suite.NotEqual(req.Password, saved.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte(req.Password)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_ShortPassword() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "short"}

	created, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(created)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser")
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Name: "Alex", Email: "alex@example.com", Password: "correct-horse"}
	conflict := fmt.Errorf("%w: email already registered", apperrors.ErrConflict)

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(conflict).Once()

	created, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Nil(created)
}

func (suite *UserServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	password := "correct-horse"
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &domain.User{
		UserID:       uuid.NewString(),
		Name:         "Alex",
		Email:        "alex@example.com",
		PasswordHash: string(hash),
	}

	suite.mockRepo.On("FindUserByEmail", ctx, "alex@example.com").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "Alex@Example.com", Password: password})

	suite.Require().NoError(err)
	suite.Equal(user.UserID, resp.User.UserID)
	suite.NotEmpty(resp.Token)

	// The token must carry the user ID as subject and verify with the secret
	parsed, err := jwt.ParseWithClaims(resp.Token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(testJWTSecret), nil
	})
	suite.Require().NoError(err)
	claims := parsed.Claims.(*jwt.RegisteredClaims)
	suite.Equal(user.UserID, claims.Subject)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	suite.Require().NoError(err)

	user := &domain.User{UserID: uuid.NewString(), Email: "alex@example.com", PasswordHash: string(hash)}
	suite.mockRepo.On("FindUserByEmail", ctx, "alex@example.com").Return(user, nil).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "alex@example.com", Password: "wrong"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(resp)
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmail() {
	ctx := context.Background()
	notFound := fmt.Errorf("%w: user", apperrors.ErrNotFound)

	suite.mockRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, notFound).Once()

	resp, err := suite.service.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "whatever"})

	// Same error as a wrong password so the email's existence is not revealed
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(resp)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

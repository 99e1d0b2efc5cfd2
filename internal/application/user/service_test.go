package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/pantrywizard/v2/internal/domain/user"
	"github.com/pantrywizard/v2/internal/infrastructure/persistence/memory"
	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/pkg/errors"
	"github.com/pantrywizard/v2/test/testutils"
)

type UserServiceTestSuite struct {
	suite.Suite
	userRepo *testutils.MockUserRepository
	tokens   *testutils.MockTokenService
	service  inbound.UserService
	ctx      context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.userRepo = new(testutils.MockUserRepository)
	suite.tokens = new(testutils.MockTokenService)
	suite.service = NewUserService(
		suite.userRepo,
		suite.tokens,
		memory.NewCacheRepository(),
		zaptest.NewLogger(suite.T()),
	)
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) registerCommand() inbound.RegisterCommand {
	return inbound.RegisterCommand{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "password123",
		HeightCm: 170,
		WeightKg: 65,
	}
}

func (suite *UserServiceTestSuite) TestRegister_NewEmail_IssuesBearerToken() {
	suite.userRepo.On("ExistsByEmail", mock.Anything, "dana@example.com").Return(false, nil)
	suite.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*user.User")).Return(nil)
	suite.tokens.On("Generate", mock.AnythingOfType("uuid.UUID")).Return("signed-token", nil)

	token, err := suite.service.Register(suite.ctx, suite.registerCommand())

	suite.Require().NoError(err)
	suite.Equal("signed-token", token.AccessToken)
	suite.Equal("bearer", token.TokenType)
	suite.userRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail_Returns400() {
	suite.userRepo.On("ExistsByEmail", mock.Anything, "dana@example.com").Return(true, nil)

	_, err := suite.service.Register(suite.ctx, suite.registerCommand())

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeEmailAlreadyExists))
	suite.Equal(400, err.(*errors.AppError).StatusCode())
	suite.userRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegister_ShortPassword_FailsValidation() {
	cmd := suite.registerCommand()
	cmd.Password = "short"
	suite.userRepo.On("ExistsByEmail", mock.Anything, "dana@example.com").Return(false, nil)

	_, err := suite.service.Register(suite.ctx, cmd)

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeValidationFailed))
}

func (suite *UserServiceTestSuite) TestLogin_WrongPassword_Returns401() {
	account, err := user.NewUser("Dana", "dana@example.com", "password123", user.HealthProfile{})
	suite.Require().NoError(err)
	suite.userRepo.On("FindByEmail", mock.Anything, "dana@example.com").Return(account, nil)

	_, err = suite.service.Login(suite.ctx, inbound.LoginCommand{
		Email:    "dana@example.com",
		Password: "not-the-password",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeInvalidCredentials))
	suite.Equal(401, err.(*errors.AppError).StatusCode())
}

func (suite *UserServiceTestSuite) TestLogin_UnknownEmail_Returns401() {
	suite.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, err := suite.service.Login(suite.ctx, inbound.LoginCommand{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeInvalidCredentials))
}

func (suite *UserServiceTestSuite) TestLogin_CorrectPassword_IssuesToken() {
	account, err := user.NewUser("Dana", "dana@example.com", "password123", user.HealthProfile{})
	suite.Require().NoError(err)
	suite.userRepo.On("FindByEmail", mock.Anything, "dana@example.com").Return(account, nil)
	suite.tokens.On("Generate", account.ID()).Return("signed-token", nil)

	token, err := suite.service.Login(suite.ctx, inbound.LoginCommand{
		Email:    "dana@example.com",
		Password: "password123",
	})

	suite.Require().NoError(err)
	suite.Equal("signed-token", token.AccessToken)
}

func (suite *UserServiceTestSuite) TestProfile_SecondCall_ServedFromCache() {
	account, err := user.NewUser("Dana", "dana@example.com", "password123", user.HealthProfile{
		HeightCm: 170,
		WeightKg: 65,
	})
	suite.Require().NoError(err)
	suite.userRepo.On("FindByID", mock.Anything, account.ID()).Return(account, nil).Once()

	first, err := suite.service.Profile(suite.ctx, account.ID())
	suite.Require().NoError(err)
	second, err := suite.service.Profile(suite.ctx, account.ID())
	suite.Require().NoError(err)

	suite.Equal(first.Email, second.Email)
	suite.Require().NotNil(first.HeightCm)
	suite.Equal(170.0, *first.HeightCm)
	suite.Nil(first.Age, "unset profile fields render as null")
	suite.userRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestProfile_UnknownUser_Returns404() {
	unknown := uuid.New()
	suite.userRepo.On("FindByID", mock.Anything, unknown).Return(nil, nil)

	_, err := suite.service.Profile(suite.ctx, unknown)

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeUserNotFound))
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

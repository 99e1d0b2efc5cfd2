// Package user provides the application layer for accounts and authentication
package user

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/domain/user"
	"github.com/pantrywizard/v2/internal/infrastructure/monitoring"
	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/internal/ports/outbound"
	"github.com/pantrywizard/v2/pkg/errors"
)

// profileCacheTTL bounds staleness of the cached profile response. Profiles
// are written once at registration, so a short TTL is purely defensive.
const profileCacheTTL = 5 * time.Minute

// UserService implements the account and authentication use cases
type UserService struct {
	userRepo outbound.UserRepository
	tokens   outbound.TokenService
	cache    outbound.CacheRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo outbound.UserRepository,
	tokens outbound.TokenService,
	cache outbound.CacheRepository,
	logger *zap.Logger,
) inbound.UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		cache:    cache,
		logger:   logger.Named("user-service"),
	}
}

// Register creates a new account and issues its first access token
func (s *UserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.TokenDTO, error) {
	s.logger.Info("Registering new user", zap.String("email", cmd.Email))

	exists, err := s.userRepo.ExistsByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("check email existence", err)
	}
	if exists {
		return nil, errors.NewEmailAlreadyExistsError(cmd.Email)
	}

	account, err := user.NewUser(cmd.Name, cmd.Email, cmd.Password, user.HealthProfile{
		HeightCm:  cmd.HeightCm,
		WeightKg:  cmd.WeightKg,
		Age:       cmd.Age,
		DietType:  cmd.DietType,
		Allergies: cmd.Allergies,
		Goal:      cmd.Goal,
	})
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.userRepo.Create(ctx, account); err != nil {
		return nil, errors.NewDatabaseError("create user", err)
	}

	monitoring.RecordUserRegistered()
	s.logger.Info("User registered",
		zap.String("user_id", account.ID().String()),
		zap.String("email", account.Email()),
	)

	return s.issueToken(account)
}

// Login authenticates an account by email and password. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, cmd inbound.LoginCommand) (*inbound.TokenDTO, error) {
	account, err := s.userRepo.FindByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, errors.NewDatabaseError("find user by email", err)
	}
	if account == nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := account.CheckPassword(cmd.Password); err != nil {
		s.logger.Warn("Invalid password attempt", zap.String("email", account.Email()))
		return nil, errors.NewInvalidCredentialsError()
	}

	s.logger.Info("User logged in", zap.String("user_id", account.ID().String()))

	return s.issueToken(account)
}

// Profile returns the account profile, serving from cache when possible
func (s *UserService) Profile(ctx context.Context, userID uuid.UUID) (*inbound.UserProfileDTO, error) {
	cacheKey := profileCacheKey(userID)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var dto inbound.UserProfileDTO
		if err := json.Unmarshal(cached, &dto); err == nil {
			return &dto, nil
		}
	}

	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if account == nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}

	dto := entityToProfileDTO(account)

	if payload, err := json.Marshal(dto); err == nil {
		if err := s.cache.Set(ctx, cacheKey, payload, profileCacheTTL); err != nil {
			s.logger.Debug("Profile cache write failed", zap.Error(err))
		}
	}

	return dto, nil
}

func (s *UserService) issueToken(account *user.User) (*inbound.TokenDTO, error) {
	token, err := s.tokens.Generate(account.ID())
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	return &inbound.TokenDTO{
		AccessToken: token,
		TokenType:   "bearer",
	}, nil
}

// entityToProfileDTO converts the entity to the profile response. Health
// fields the user never provided become nil so they render as JSON null.
func entityToProfileDTO(account *user.User) *inbound.UserProfileDTO {
	profile := account.Profile()
	return &inbound.UserProfileDTO{
		ID:        account.ID(),
		Name:      account.Name(),
		Email:     account.Email(),
		HeightCm:  optionalFloat(profile.HeightCm),
		WeightKg:  optionalFloat(profile.WeightKg),
		Age:       optionalInt(profile.Age),
		DietType:  optionalString(profile.DietType),
		Allergies: optionalString(profile.Allergies),
		Goal:      optionalString(profile.Goal),
		CreatedAt: account.CreatedAt(),
	}
}

func profileCacheKey(userID uuid.UUID) string {
	return "profile:" + userID.String()
}

func optionalFloat(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

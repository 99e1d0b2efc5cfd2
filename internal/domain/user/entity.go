// Package user defines the user domain entity
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pantrywizard/v2/pkg/nutrition"
)

// User represents a registered account with an optional health profile.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	profile      HealthProfile
	createdAt    time.Time
	updatedAt    time.Time
}

// HealthProfile carries the optional health attributes used to tailor
// generated recipes. Zero values mean "not provided".
type HealthProfile struct {
	HeightCm  float64
	WeightKg  float64
	Age       int
	DietType  string
	Allergies string
	Goal      string
}

// NewUser creates a new user with validation and a hashed password
func NewUser(name, email, password string, profile HealthProfile) (*User, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: string(hashedPassword),
		profile:      profile,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a user from persisted state. It performs no
// validation: the stored row is the source of truth.
func Reconstruct(
	id uuid.UUID,
	name, email, passwordHash string,
	profile HealthProfile,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		profile:      profile,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ID returns the user's ID
func (u *User) ID() uuid.UUID {
	return u.id
}

// Name returns the user's display name
func (u *User) Name() string {
	return u.name
}

// Email returns the user's email
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the bcrypt hash of the user's password
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// Profile returns the user's health profile
func (u *User) Profile() HealthProfile {
	return u.profile
}

// CreatedAt returns when the user was created
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time {
	return u.updatedAt
}

// CheckPassword verifies that the provided password matches the stored hash
func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password))
}

// UpdateHealthProfile replaces the user's health profile
func (u *User) UpdateHealthProfile(profile HealthProfile) {
	u.profile = profile
	u.updatedAt = time.Now().UTC()
}

// BMI derives the body mass index from the health profile, rounded to one
// decimal. Returns 0 when height or weight is missing.
func (u *User) BMI() float64 {
	return nutrition.BMI(u.profile.HeightCm, u.profile.WeightKg)
}

func validateName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}

	if len(name) > 100 {
		return errors.New("name too long")
	}

	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return errors.New("invalid email format")
	}

	if len(email) > 255 {
		return errors.New("email too long")
	}

	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return errors.New("password too long")
	}

	return nil
}

package store

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/confessly-dev/confessly/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const identityMaxLen = 150

// UserStore persists user identities. Plaintext passwords never leave
// Register and Verify.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateIdentity(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(value) > identityMaxLen {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d characters", identityMaxLen)}
	}
	return nil
}

// Register hashes the password and creates the user. A username or email
// that is already taken fails with ErrDuplicateIdentity; the uniqueness
// constraint catches the case where two registrations race past the
// pre-check.
func (s *UserStore) Register(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = NormalizeEmail(email)

	if err := validateIdentity("username", username); err != nil {
		return nil, err
	}
	if err := validateIdentity("email", email); err != nil {
		return nil, err
	}
	if password == "" {
		return nil, &ValidationError{Field: "password", Reason: "must not be empty"}
	}

	var existing models.User

	err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error

	if err == nil {
		return nil, ErrDuplicateIdentity
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(passwordHash),
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	return &user, nil
}

// Verify checks the password against the stored hash. An unknown email and a
// wrong password both fail with ErrInvalidCredentials so callers cannot tell
// whether the account exists.
func (s *UserStore) Verify(email, password string) (*models.User, error) {
	var user models.User

	err := s.db.Where("email = ?", NormalizeEmail(email)).First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func (s *UserStore) Get(id uint) (*models.User, error) {
	var user models.User

	err := s.db.First(&user, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &user, nil
}

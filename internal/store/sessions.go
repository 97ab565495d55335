package store

import (
	"errors"
	"time"

	"github.com/confessly-dev/confessly/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionTTL bounds how long a login session stays valid.
const SessionTTL = 7 * 24 * time.Hour

type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Create(userID uint) (*models.Session, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(SessionTTL),
	}

	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}

	return &session, nil
}

// Get returns the session only while it exists and has not expired.
func (s *SessionStore) Get(id string) (*models.Session, error) {
	var session models.Session

	err := s.db.Where("id = ?", id).First(&session).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, ErrNotFound
	}

	return &session, nil
}

func (s *SessionStore) Delete(id string) error {
	result := s.db.Where("id = ?", id).Delete(&models.Session{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

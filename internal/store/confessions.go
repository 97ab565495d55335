package store

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/confessly-dev/confessly/internal/models"
	"gorm.io/gorm"
)

const confessionMaxLen = 1000

// ConfessionStore persists confessions. Ownership is not checked here;
// callers run the authorization guard after loading the record.
type ConfessionStore struct {
	db *gorm.DB
}

func NewConfessionStore(db *gorm.DB) *ConfessionStore {
	return &ConfessionStore{db: db}
}

func validateText(text string) error {
	if text == "" {
		return &ValidationError{Field: "confession", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(text) > confessionMaxLen {
		return &ValidationError{Field: "confession", Reason: fmt.Sprintf("must be at most %d characters", confessionMaxLen)}
	}
	return nil
}

func (s *ConfessionStore) Create(ownerID uint, text string) (*models.Confession, error) {
	if err := validateText(text); err != nil {
		return nil, err
	}

	confession := models.Confession{
		OwnerID: ownerID,
		Text:    text,
	}

	if err := s.db.Create(&confession).Error; err != nil {
		return nil, err
	}

	return &confession, nil
}

func (s *ConfessionStore) Get(id uint) (*models.Confession, error) {
	var confession models.Confession

	err := s.db.First(&confession, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &confession, nil
}

func (s *ConfessionStore) ListAll() ([]models.Confession, error) {
	var confessions []models.Confession

	if err := s.db.Order("id ASC").Find(&confessions).Error; err != nil {
		return nil, err
	}

	return confessions, nil
}

func (s *ConfessionStore) Update(id uint, text string) (*models.Confession, error) {
	confession, err := s.Get(id)

	if err != nil {
		return nil, err
	}

	if err := validateText(text); err != nil {
		return nil, err
	}

	if err := s.db.Model(confession).Update("text", text).Error; err != nil {
		return nil, err
	}

	return confession, nil
}

func (s *ConfessionStore) Delete(id uint) error {
	confession, err := s.Get(id)

	if err != nil {
		return err
	}

	return s.db.Delete(confession).Error
}

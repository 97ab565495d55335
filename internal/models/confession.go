package models

import "gorm.io/gorm"

type Confession struct {
	gorm.Model

	OwnerID uint   `gorm:"not null;index"`
	Text    string `gorm:"size:1000;not null"`

	// Relationships
	Owner User `gorm:"foreignKey:OwnerID"`
}

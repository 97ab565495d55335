package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Username     string `gorm:"size:150;uniqueIndex;not null"`
	Email        string `gorm:"size:150;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	// Relationships
	Confessions []Confession `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade"`
	Sessions    []Session    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

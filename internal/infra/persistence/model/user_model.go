// Package model holds the GORM persistence models.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table. IDs are UUIDv7, assigned before insert.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex:users_email_key;not null"`
	Name            string    `gorm:"type:varchar(100);not null"`
	Phone           *string   `gorm:"type:varchar(32)"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	ExternalID      *string   `gorm:"type:varchar(255);uniqueIndex:users_external_id_key"`
	Role            string    `gorm:"type:varchar(20);not null"`
	IsActive        bool      `gorm:"not null"`
	WalletAddress   *string   `gorm:"type:varchar(255)"`
	WalletCreatedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered id when the caller did not set one.
func (m *UserModel) BeforeCreate(*gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}

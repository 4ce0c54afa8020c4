package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a delivery address owned by a user. Guest orders may reference any
// existing address; authenticated orders only the caller's own.
type Address struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Line1     string         `gorm:"not null" json:"line1"`
	Line2     string         `json:"line2,omitempty"`
	City      string         `gorm:"not null" json:"city"`
	PostCode  string         `json:"post_code"`
	Country   string         `json:"country"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

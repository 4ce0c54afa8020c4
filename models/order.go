package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusActive    OrderStatus = "ACTIVE"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order links a checked-out cart to a delivery address. UserID is nil for guest
// orders, which are identified by Email alone.
type Order struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Email         string         `gorm:"not null;index" json:"email"`
	Status        OrderStatus    `gorm:"type:varchar(20);not null;default:ACTIVE" json:"status"`
	UserID        *uuid.UUID     `gorm:"type:uuid;index" json:"user_id"`
	CartID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"cart_id"`
	Cart          *Cart          `gorm:"foreignKey:CartID" json:"cart,omitempty"`
	AddressID     uuid.UUID      `gorm:"type:uuid;not null" json:"address_id"`
	Address       *Address       `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	TransactionID string         `gorm:"not null" json:"transaction_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusActive
	}
	return nil
}

// IsGuest reports whether the order was placed without an authenticated user.
func (o Order) IsGuest() bool {
	return o.UserID == nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartStatus string

const (
	CartStatusInProgress   CartStatus = "IN_PROGRESS"
	CartStatusMoveToOrders CartStatus = "MOVE_TO_ORDERS"
)

// Cart holds a user's pending purchase. At most one IN_PROGRESS cart exists per
// user; MOVE_TO_ORDERS is terminal.
type Cart struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID     *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_carts_active_user,where:status = 'IN_PROGRESS'" json:"user_id"`
	Status     CartStatus      `gorm:"type:varchar(20);not null;default:IN_PROGRESS;index" json:"status"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_price"`
	Lines      []CartProduct   `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CartStatusInProgress
	}
	return nil
}

// Editable reports whether lines may still be added to or removed from the cart.
func (c Cart) Editable() bool {
	return c.Status == CartStatusInProgress
}

// CartProduct is one line of a cart. Rows are hard-deleted when the quantity
// would drop to zero, so (cart_id, product_id) stays unique.
type CartProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (cp *CartProduct) BeforeCreate(tx *gorm.DB) error {
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	if cp.Quantity == 0 {
		cp.Quantity = 1
	}
	return nil
}

// SumLines returns Σ price × quantity over lines. Each line's Product must be loaded.
func SumLines(lines []CartProduct) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Product.LineTotal(line.Quantity))
	}
	return total
}

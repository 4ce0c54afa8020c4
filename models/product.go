package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Title       string          `gorm:"not null;index" json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Rating      float64         `gorm:"default:0" json:"rating"`
	BrandID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"brand_id"`
	Brand       *Brand          `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	CategoryID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Images      []ProductImage  `gorm:"foreignKey:ProductID" json:"images,omitempty"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// LineTotal is the price of quantity units of p.
func (p Product) LineTotal(quantity int) decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

package repository

import (
	"context"

	"storefront-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	// FindForUser returns the address only when userID owns it.
	FindForUser(ctx context.Context, id, userID uuid.UUID) (*models.Address, error)
}

type addressRepository struct {
	db *gorm.DB
}

func (r *addressRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	var address models.Address
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&address).Error; err != nil {
		return nil, translate(err, "find address")
	}
	return &address, nil
}

func (r *addressRepository) FindForUser(ctx context.Context, id, userID uuid.UUID) (*models.Address, error) {
	var address models.Address
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&address).Error
	if err != nil {
		return nil, translate(err, "find address")
	}
	return &address, nil
}

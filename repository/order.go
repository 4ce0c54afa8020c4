package repository

import (
	"context"

	"storefront-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	// ListByUser returns the user's orders with their addresses, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error, "create order")
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	orders := []models.Order{}
	err := r.db.WithContext(ctx).
		Preload("Address", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("user_id = ?", userID).
		Order("created_at DESC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, translate(err, "list orders")
	}
	return orders, nil
}

func (r *orderRepository) FindForUser(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if err != nil {
		return nil, translate(err, "find order")
	}
	return &order, nil
}

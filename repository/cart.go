package repository

import (
	"context"

	"storefront-api/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	// LockByID reads the cart with SELECT ... FOR UPDATE. Only meaningful inside
	// Store.Transaction.
	LockByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error
	UpdateStatus(ctx context.Context, cartID uuid.UUID, status models.CartStatus) error

	Line(ctx context.Context, cartID, productID uuid.UUID) (*models.CartProduct, error)
	CreateLine(ctx context.Context, line *models.CartProduct) error
	IncrementLine(ctx context.Context, lineID uuid.UUID) error
	DecrementLine(ctx context.Context, lineID uuid.UUID) error
	DeleteLine(ctx context.Context, lineID uuid.UUID) error
	// Lines returns the cart's lines with their products, soft-deleted
	// products included.
	Lines(ctx context.Context, cartID uuid.UUID) ([]models.CartProduct, error)
	CountLines(ctx context.Context, cartID uuid.UUID) (int64, error)
}

type cartRepository struct {
	db *gorm.DB
}

func (r *cartRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartStatusInProgress).
		First(&cart).Error
	if err != nil {
		return nil, translate(err, "find active cart")
	}
	return &cart, nil
}

func (r *cartRepository) Create(ctx context.Context, cart *models.Cart) error {
	return translate(r.db.WithContext(ctx).Create(cart).Error, "create cart")
}

func (r *cartRepository) LockByID(ctx context.Context, id uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&cart).Error
	if err != nil {
		return nil, translate(err, "lock cart")
	}
	return &cart, nil
}

func (r *cartRepository) UpdateTotal(ctx context.Context, cartID uuid.UUID, total decimal.Decimal) error {
	err := r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("total_price", total).Error
	return translate(err, "update cart total")
}

func (r *cartRepository) UpdateStatus(ctx context.Context, cartID uuid.UUID, status models.CartStatus) error {
	err := r.db.WithContext(ctx).Model(&models.Cart{}).
		Where("id = ?", cartID).
		Update("status", status).Error
	return translate(err, "update cart status")
}

func (r *cartRepository) Line(ctx context.Context, cartID, productID uuid.UUID) (*models.CartProduct, error) {
	var line models.CartProduct
	err := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		First(&line).Error
	if err != nil {
		return nil, translate(err, "find cart line")
	}
	return &line, nil
}

func (r *cartRepository) CreateLine(ctx context.Context, line *models.CartProduct) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(line).Error, "create cart line")
}

func (r *cartRepository) IncrementLine(ctx context.Context, lineID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&models.CartProduct{}).
		Where("id = ?", lineID).
		Update("quantity", gorm.Expr("quantity + 1")).Error
	return translate(err, "increment cart line")
}

func (r *cartRepository) DecrementLine(ctx context.Context, lineID uuid.UUID) error {
	// quantity > 1 keeps the check constraint satisfied if two removals race.
	err := r.db.WithContext(ctx).Model(&models.CartProduct{}).
		Where("id = ? AND quantity > 1", lineID).
		Update("quantity", gorm.Expr("quantity - 1")).Error
	return translate(err, "decrement cart line")
}

func (r *cartRepository) DeleteLine(ctx context.Context, lineID uuid.UUID) error {
	err := r.db.WithContext(ctx).Where("id = ?", lineID).Delete(&models.CartProduct{}).Error
	return translate(err, "delete cart line")
}

func (r *cartRepository) Lines(ctx context.Context, cartID uuid.UUID) ([]models.CartProduct, error) {
	var lines []models.CartProduct
	err := r.db.WithContext(ctx).
		Preload("Product", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Product.Images").
		Where("cart_id = ?", cartID).
		Order("created_at ASC, id ASC").
		Find(&lines).Error
	if err != nil {
		return nil, translate(err, "load cart lines")
	}
	return lines, nil
}

func (r *cartRepository) CountLines(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.CartProduct{}).Where("cart_id = ?", cartID).Count(&n).Error
	return n, translate(err, "count cart lines")
}

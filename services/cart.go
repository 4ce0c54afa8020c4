package services

import (
	"context"

	"storefront-api/apperror"
	"storefront-api/models"
	"storefront-api/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

var (
	ErrProductNotFound  = apperror.NotFound("There is no product with this ID")
	ErrProductNotInCart = apperror.NotFound("This product is not in your cart")
)

// CartService manages the caller's single IN_PROGRESS cart. Every mutation
// recomputes the cart total before returning.
type CartService struct {
	store repository.Store
}

func NewCartService(store repository.Store) *CartService {
	return &CartService{store: store}
}

// GetOrCreateCart returns the user's IN_PROGRESS cart, creating it on first use.
func (s *CartService) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	carts := s.store.Carts()
	cart, err := carts.FindActiveByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	cart = &models.Cart{UserID: &userID, Status: models.CartStatusInProgress, TotalPrice: decimal.Zero}
	if err := carts.Create(ctx, cart); err != nil {
		if repository.IsDuplicate(err) {
			// Lost the race with a concurrent request for the same user.
			return carts.FindActiveByUser(ctx, userID)
		}
		return nil, err
	}
	log.WithFields(log.Fields{"cart_id": cart.ID, "user_id": userID}).Debug("cart created")
	return cart, nil
}

func (s *CartService) AddProduct(ctx context.Context, principal models.Principal, productID uuid.UUID) error {
	cart, err := s.GetOrCreateCart(ctx, principal.UserID)
	if err != nil {
		return err
	}
	if _, err := s.findProduct(ctx, productID); err != nil {
		return err
	}

	carts := s.store.Carts()
	line, err := carts.Line(ctx, cart.ID, productID)
	switch {
	case err == nil:
		err = carts.IncrementLine(ctx, line.ID)
	case errors.Is(err, repository.ErrNotFound):
		line = &models.CartProduct{CartID: cart.ID, ProductID: productID, Quantity: 1}
		err = carts.CreateLine(ctx, line)
		if repository.IsDuplicate(err) {
			line, err = carts.Line(ctx, cart.ID, productID)
			if err == nil {
				err = carts.IncrementLine(ctx, line.ID)
			}
		}
	}
	if err != nil {
		return err
	}

	_, err = s.RecomputeTotal(ctx, cart.ID)
	return err
}

func (s *CartService) RemoveProduct(ctx context.Context, principal models.Principal, productID uuid.UUID) error {
	cart, err := s.GetOrCreateCart(ctx, principal.UserID)
	if err != nil {
		return err
	}
	if _, err := s.findProduct(ctx, productID); err != nil {
		return err
	}

	carts := s.store.Carts()
	line, err := carts.Line(ctx, cart.ID, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotInCart
		}
		return err
	}

	if line.Quantity <= 1 {
		err = carts.DeleteLine(ctx, line.ID)
	} else {
		err = carts.DecrementLine(ctx, line.ID)
	}
	if err != nil {
		return err
	}

	_, err = s.RecomputeTotal(ctx, cart.ID)
	return err
}

// RecomputeTotal sums price × quantity over the cart's lines and stores it.
func (s *CartService) RecomputeTotal(ctx context.Context, cartID uuid.UUID) (decimal.Decimal, error) {
	lines, err := s.store.Carts().Lines(ctx, cartID)
	if err != nil {
		return decimal.Zero, err
	}
	total := models.SumLines(lines)
	if err := s.store.Carts().UpdateTotal(ctx, cartID, total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// GetCartWithProducts returns the caller's cart with its lines loaded.
func (s *CartService) GetCartWithProducts(ctx context.Context, principal models.Principal) (*models.Cart, error) {
	cart, err := s.GetOrCreateCart(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	lines, err := s.store.Carts().Lines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Lines = lines
	return cart, nil
}

func (s *CartService) findProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	product, err := s.store.Products().FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

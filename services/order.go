package services

import (
	"context"
	"strings"

	"storefront-api/apperror"
	"storefront-api/models"
	"storefront-api/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	ErrCartNotFound     = apperror.NotFound("Cart does not exist")
	ErrCartEmpty        = apperror.Unprocessable("Your cart is Empty")
	ErrAddressNotFound  = apperror.NotFound("There is no address with this ID")
	ErrGuestEmailNeeded = apperror.Unprocessable("Email address can not be null or login please")
	ErrUnknownUser      = apperror.Unauthorized("User does not exist")

	// ErrOrderNotFound is returned by GetOrderDetail. It carries no HTTP status;
	// the order detail handler renders it itself.
	ErrOrderNotFound = errors.New("there is no order with this ID")
)

// OrderRequest identifies the cart being checked out and where it ships.
type OrderRequest struct {
	CartID        uuid.UUID
	AddressID     uuid.UUID
	TransactionID string
}

func (r OrderRequest) validate() error {
	switch {
	case r.CartID == uuid.Nil:
		return apperror.Unprocessable("cartId is required")
	case r.AddressID == uuid.Nil:
		return apperror.Unprocessable("addressId is required")
	case strings.TrimSpace(r.TransactionID) == "":
		return apperror.Unprocessable("transactionId is required")
	}
	return nil
}

type GuestOrderRequest struct {
	Email string
	OrderRequest
}

// OrderService turns carts into orders. The cart check, the status change and
// the order insert share one transaction with the cart row locked.
type OrderService struct {
	store repository.Store
}

func NewOrderService(store repository.Store) *OrderService {
	return &OrderService{store: store}
}

// ValidateCartForCheckout locks the cart, requires it to be IN_PROGRESS and
// non-empty, and moves it to MOVE_TO_ORDERS. tx must be a transactional Store.
func (s *OrderService) ValidateCartForCheckout(ctx context.Context, tx repository.Store, cartID uuid.UUID) (*models.Cart, error) {
	cart, err := tx.Carts().LockByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	if !cart.Editable() {
		return nil, ErrCartNotFound
	}

	n, err := tx.Carts().CountLines(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrCartEmpty
	}

	if err := tx.Carts().UpdateStatus(ctx, cart.ID, models.CartStatusMoveToOrders); err != nil {
		return nil, err
	}
	cart.Status = models.CartStatusMoveToOrders
	return cart, nil
}

func (s *OrderService) PlaceOrderForUser(ctx context.Context, principal models.Principal, req OrderRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		// The order email comes from the user row; token claims may omit it.
		user, err := tx.Users().FindByID(ctx, principal.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnknownUser
			}
			return err
		}
		if _, err := tx.Addresses().FindForUser(ctx, req.AddressID, principal.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrAddressNotFound
			}
			return err
		}
		if _, err := s.ValidateCartForCheckout(ctx, tx, req.CartID); err != nil {
			return err
		}

		order = &models.Order{
			Email:         user.Email,
			Status:        models.OrderStatusActive,
			UserID:        &user.ID,
			CartID:        req.CartID,
			AddressID:     req.AddressID,
			TransactionID: req.TransactionID,
		}
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"order_id": order.ID, "cart_id": order.CartID, "user_id": principal.UserID}).Info("order placed")
	return order, nil
}

// PlaceGuestOrder checks out a cart without an authenticated user. The address
// only has to exist.
func (s *OrderService) PlaceGuestOrder(ctx context.Context, req GuestOrderRequest) (*models.Order, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, ErrGuestEmailNeeded
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		if _, err := tx.Addresses().FindByID(ctx, req.AddressID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrAddressNotFound
			}
			return err
		}
		if _, err := s.ValidateCartForCheckout(ctx, tx, req.CartID); err != nil {
			return err
		}

		order = &models.Order{
			Email:         req.Email,
			Status:        models.OrderStatusActive,
			CartID:        req.CartID,
			AddressID:     req.AddressID,
			TransactionID: req.TransactionID,
		}
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"order_id": order.ID, "cart_id": order.CartID}).Info("guest order placed")
	return order, nil
}

func (s *OrderService) GetOrdersForUser(ctx context.Context, principal models.Principal) ([]models.Order, error) {
	return s.store.Orders().ListByUser(ctx, principal.UserID)
}

// GetOrderDetail returns the lines of the cart behind one of the caller's
// orders.
func (s *OrderService) GetOrderDetail(ctx context.Context, principal models.Principal, orderID uuid.UUID) ([]models.CartProduct, error) {
	order, err := s.store.Orders().FindForUser(ctx, orderID, principal.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return s.store.Carts().Lines(ctx, order.CartID)
}

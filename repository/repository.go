// Package repository is the only place that talks to gorm. Services depend on
// the interfaces declared here and receive a Store at construction time.
package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// Store groups the repositories and runs them inside a transaction when needed.
type Store interface {
	Carts() CartRepository
	Products() ProductRepository
	Orders() OrderRepository
	Addresses() AddressRepository
	Users() UserRepository
	// Transaction calls fn with a Store bound to a single database transaction.
	// Returning an error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Carts() CartRepository { return &cartRepository{db: s.db} }
func (s *GormStore) Products() ProductRepository { return &productRepository{db: s.db} }
func (s *GormStore) Orders() OrderRepository { return &orderRepository{db: s.db} }
func (s *GormStore) Addresses() AddressRepository { return &addressRepository{db: s.db} }
func (s *GormStore) Users() UserRepository { return &userRepository{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

// translate maps gorm's not-found error onto ErrNotFound and annotates
// everything else with the failing operation.
func translate(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(ErrNotFound, op)
	}
	return errors.Wrap(err, op)
}

// IsDuplicate reports whether err is a unique constraint violation. The
// connection must be opened with TranslateError enabled.
func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

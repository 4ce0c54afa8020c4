package services

import (
	"fmt"
	"testing"
	"time"

	"storefront-api/apperror"
	"storefront-api/models"
	"storefront-api/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*gorm.DB, repository.Store) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// Transactions must not wait on a second connection to the same memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db, repository.NewStore(db)
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.Principal {
	t.Helper()
	user := models.User{Email: email, Password: "hash", Name: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	return models.Principal{UserID: user.ID, Email: user.Email}
}

func seedAddress(t *testing.T, db *gorm.DB, owner uuid.UUID) models.Address {
	t.Helper()
	addr := models.Address{UserID: owner, Line1: "221B Baker Street", City: "London", Country: "UK"}
	require.NoError(t, db.Create(&addr).Error)
	return addr
}

func seedBrand(t *testing.T, db *gorm.DB, title string) models.Brand {
	t.Helper()
	brand := models.Brand{Title: title}
	require.NoError(t, db.Create(&brand).Error)
	return brand
}

func seedCategory(t *testing.T, db *gorm.DB, title string) models.Category {
	t.Helper()
	category := models.Category{Title: title}
	require.NoError(t, db.Create(&category).Error)
	return category
}

type productOpts struct {
	title     string
	price     string
	rating    float64
	brand     models.Brand
	category  models.Category
	createdAt time.Time
}

func seedProduct(t *testing.T, db *gorm.DB, o productOpts) models.Product {
	t.Helper()
	p := models.Product{
		Title:      o.title,
		Price:      decimal.RequireFromString(o.price),
		Rating:     o.rating,
		BrandID:    o.brand.ID,
		CategoryID: o.category.ID,
		CreatedAt:  o.createdAt,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, status, apperror.StatusOf(err), "error: %v", err)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

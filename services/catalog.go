package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"storefront-api/apperror"
	"storefront-api/models"
	"storefront-api/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeNewArrivals = "new-arrivals"
	TypeHandpicked  = "handpicked"
)

var (
	handpickedMinRating = 4.5
	handpickedMaxPrice  = decimal.NewFromInt(100)
)

// CatalogQuery is the raw /products query string. Every field is optional and
// all supplied fields narrow the result together.
type CatalogQuery struct {
	Category  string `form:"category"`
	Brand     string `form:"brand"`
	Q         string `form:"q"`
	Type      string `form:"type"`
	MinPrice  string `form:"min_price"`
	MaxPrice  string `form:"max_price"`
	MinRating string `form:"min_rating"`
	Page      string `form:"page"`
}

type ProductListing struct {
	Products []models.Product `json:"products"`
	// Brands is only set when the query had a search term.
	Brands []models.Brand `json:"brands,omitempty"`
}

type CatalogService struct {
	store repository.Store
	now   func() time.Time
}

// NewCatalogService builds the catalog reader. now defaults to time.Now.
func NewCatalogService(store repository.Store, now func() time.Time) *CatalogService {
	if now == nil {
		now = time.Now
	}
	return &CatalogService{store: store, now: now}
}

func (s *CatalogService) ListProducts(ctx context.Context, query CatalogQuery) (*ProductListing, error) {
	page, err := ParsePage(query.Page)
	if err != nil {
		return nil, err
	}
	filter, err := BuildFilter(query, s.now())
	if err != nil {
		return nil, err
	}

	products, err := s.store.Products().Search(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	listing := &ProductListing{Products: products}

	if term := strings.TrimSpace(query.Q); term != "" {
		listing.Brands, err = s.store.Products().SearchBrands(ctx, term, page)
		if err != nil {
			return nil, err
		}
	}
	return listing, nil
}

// ParsePage reads the zero-based page number. Empty means the first page.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, apperror.Unprocessable("page must be a non-negative integer")
	}
	return page, nil
}

// BuildFilter turns the query into a conjunction of product predicates.
// new-arrivals is relative to now: anything created at or after now minus
// three calendar months.
func BuildFilter(query CatalogQuery, now time.Time) (repository.ProductFilter, error) {
	var filter repository.ProductFilter

	if query.Category != "" {
		id, err := uuid.Parse(query.Category)
		if err != nil {
			return filter, apperror.Unprocessable("category must be a valid ID")
		}
		filter.And("products.category_id = ?", id)
	}

	if query.Brand != "" {
		id, err := uuid.Parse(query.Brand)
		if err != nil {
			return filter, apperror.Unprocessable("brand must be a valid ID")
		}
		filter.And("products.brand_id = ?", id)
	}

	if term := strings.TrimSpace(query.Q); term != "" {
		pattern := repository.ContainsPattern(term)
		filter.And("(LOWER(products.title) LIKE ? "+repository.LikeEscape+" OR LOWER(brands.title) LIKE ? "+repository.LikeEscape+")", pattern, pattern)
	}

	switch query.Type {
	case "":
	case TypeNewArrivals:
		filter.And("products.created_at >= ?", now.AddDate(0, -3, 0))
	case TypeHandpicked:
		filter.And("products.rating >= ?", handpickedMinRating)
		filter.And("products.price <= ?", handpickedMaxPrice)
	default:
		return filter, apperror.Unprocessable("type must be one of new-arrivals, handpicked")
	}

	if query.MinPrice != "" {
		price, err := decimal.NewFromString(query.MinPrice)
		if err != nil {
			return filter, apperror.Unprocessable("min_price must be a number")
		}
		filter.And("products.price >= ?", price)
	}

	if query.MaxPrice != "" {
		price, err := decimal.NewFromString(query.MaxPrice)
		if err != nil {
			return filter, apperror.Unprocessable("max_price must be a number")
		}
		filter.And("products.price <= ?", price)
	}

	if query.MinRating != "" {
		rating, err := strconv.ParseFloat(query.MinRating, 64)
		if err != nil {
			return filter, apperror.Unprocessable("min_rating must be a number")
		}
		filter.And("products.rating >= ?", rating)
	}

	return filter, nil
}

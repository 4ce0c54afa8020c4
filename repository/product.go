package repository

import (
	"context"
	"strings"

	"storefront-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PageSize is the fixed number of rows returned per catalog page.
const PageSize = 20

// Condition is one SQL predicate over products joined with brands. Columns must
// be table-qualified.
type Condition struct {
	SQL  string
	Args []interface{}
}

// ProductFilter is a conjunction of conditions. The zero value matches every
// product.
type ProductFilter struct {
	Conditions []Condition
}

func (f *ProductFilter) And(sql string, args ...interface{}) {
	f.Conditions = append(f.Conditions, Condition{SQL: sql, Args: args})
}

type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	// Search returns one page of products matching filter, newest first.
	Search(ctx context.Context, filter ProductFilter, page int) ([]models.Product, error)
	// SearchBrands returns one page of brands whose title contains term,
	// compared case-insensitively.
	SearchBrands(ctx context.Context, term string, page int) ([]models.Brand, error)
}

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		return nil, translate(err, "find product")
	}
	return &product, nil
}

func (r *productRepository) Search(ctx context.Context, filter ProductFilter, page int) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).
		Joins("LEFT JOIN brands ON brands.id = products.brand_id")
	for _, cond := range filter.Conditions {
		query = query.Where(cond.SQL, cond.Args...)
	}

	products := []models.Product{}
	err := query.
		Preload("Images").
		Preload("Brand").
		Preload("Category").
		Order("products.created_at DESC, products.id ASC").
		Offset(page * PageSize).
		Limit(PageSize).
		Find(&products).Error
	if err != nil {
		return nil, translate(err, "search products")
	}
	return products, nil
}

func (r *productRepository) SearchBrands(ctx context.Context, term string, page int) ([]models.Brand, error) {
	brands := []models.Brand{}
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? "+LikeEscape, ContainsPattern(term)).
		Order("title ASC, id ASC").
		Offset(page * PageSize).
		Limit(PageSize).
		Find(&brands).Error
	if err != nil {
		return nil, translate(err, "search brands")
	}
	return brands, nil
}

// LikeEscape must follow every LIKE whose pattern comes from ContainsPattern.
const LikeEscape = `ESCAPE '\'`

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds a LIKE pattern for a case-insensitive substring
// match against a LOWER(...) column. Wildcards in term match literally.
func ContainsPattern(term string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(term)) + "%"
}

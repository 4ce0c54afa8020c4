package database

import (
	"context"
	"fmt"
	"time"

	"storefront-api/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	DemoEmail    = "demo@storefront.local"
	DemoPassword = "storefront-demo"
)

type demoProduct struct {
	title, description, price, brand, category string
	rating                                     float64
	ageDays                                    int
	images                                     []string
}

var demoProducts = []demoProduct{
	{"Trail Runner 2", "Lightweight running shoe with a grippy outsole.", "89.99", "Northpeak", "Footwear", 4.7, 5, []string{"https://cdn.storefront.local/trail-runner-2.jpg"}},
	{"City Sneaker", "Everyday leather sneaker.", "64.50", "Urbanline", "Footwear", 4.1, 120, []string{"https://cdn.storefront.local/city-sneaker.jpg"}},
	{"Hiking Boot GTX", "Waterproof mid-height hiking boot.", "149.00", "Northpeak", "Footwear", 4.8, 200, []string{"https://cdn.storefront.local/hiking-boot-front.jpg", "https://cdn.storefront.local/hiking-boot-side.jpg"}},
	{"Merino Base Layer", "Long sleeve merino wool top.", "59.95", "Northpeak", "Apparel", 4.6, 12, []string{"https://cdn.storefront.local/merino-base.jpg"}},
	{"Rain Shell", "Packable rain jacket.", "119.00", "Urbanline", "Apparel", 3.9, 40, []string{"https://cdn.storefront.local/rain-shell.jpg"}},
	{"Cotton Tee", "Classic crew neck tee.", "19.99", "Basics Co", "Apparel", 4.0, 300, []string{"https://cdn.storefront.local/cotton-tee.jpg"}},
	{"Day Pack 20L", "Twenty litre daypack with laptop sleeve.", "74.00", "Urbanline", "Accessories", 4.5, 2, []string{"https://cdn.storefront.local/day-pack.jpg"}},
	{"Wool Beanie", "Ribbed wool beanie.", "24.00", "Basics Co", "Accessories", 4.2, 150, []string{"https://cdn.storefront.local/wool-beanie.jpg"}},
	{"Steel Bottle 750ml", "Insulated stainless steel bottle.", "29.50", "Basics Co", "Accessories", 4.9, 60, []string{"https://cdn.storefront.local/steel-bottle.jpg"}},
}

// Seed inserts demo brands, categories, products, a demo user and their
// address. It does nothing when the catalog already has products, and returns
// a one-line summary either way.
func Seed(ctx context.Context, db *gorm.DB) (string, error) {
	var existing int64
	if err := db.WithContext(ctx).Model(&models.Product{}).Count(&existing).Error; err != nil {
		return "", errors.Wrap(err, "count products")
	}
	if existing > 0 {
		summary := fmt.Sprintf("seed skipped: catalog already has %d products", existing)
		log.Info(summary)
		return summary, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash demo password")
	}

	now := time.Now().UTC()
	brands := map[string]*models.Brand{}
	categories := map[string]*models.Category{}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := models.User{Email: DemoEmail, Password: string(hashed), Name: "Demo Customer"}
		if err := tx.Where("email = ?", DemoEmail).FirstOrCreate(&user).Error; err != nil {
			return errors.Wrap(err, "create demo user")
		}
		address := models.Address{
			UserID:   user.ID,
			Line1:    "1 Market Street",
			City:     "London",
			PostCode: "EC1A 1AA",
			Country:  "GB",
		}
		if err := tx.Create(&address).Error; err != nil {
			return errors.Wrap(err, "create demo address")
		}

		for _, p := range demoProducts {
			brand, ok := brands[p.brand]
			if !ok {
				brand = &models.Brand{Title: p.brand}
				if err := tx.Where("title = ?", p.brand).FirstOrCreate(brand).Error; err != nil {
					return errors.Wrapf(err, "create brand %s", p.brand)
				}
				brands[p.brand] = brand
			}
			category, ok := categories[p.category]
			if !ok {
				category = &models.Category{Title: p.category}
				if err := tx.Where("title = ?", p.category).FirstOrCreate(category).Error; err != nil {
					return errors.Wrapf(err, "create category %s", p.category)
				}
				categories[p.category] = category
			}

			created := now.AddDate(0, 0, -p.ageDays)
			product := models.Product{
				Title:       p.title,
				Description: p.description,
				Price:       decimal.RequireFromString(p.price),
				Rating:      p.rating,
				BrandID:     brand.ID,
				CategoryID:  category.ID,
				CreatedAt:   created,
				UpdatedAt:   created,
			}
			for _, url := range p.images {
				product.Images = append(product.Images, models.ProductImage{URL: url})
			}
			if err := tx.Create(&product).Error; err != nil {
				return errors.Wrapf(err, "create product %s", p.title)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	summary := fmt.Sprintf("seeded %d products, %d brands, %d categories and demo user %s",
		len(demoProducts), len(brands), len(categories), DemoEmail)
	log.Info(summary)
	return summary, nil
}

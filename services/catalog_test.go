package services

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"storefront-api/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var catalogNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

func titles(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Title
	}
	return out
}

func TestBuildFilterRejectsMalformedInput(t *testing.T) {
	cases := map[string]CatalogQuery{
		"unknown type":   {Type: "bestsellers"},
		"bad category":   {Category: "42"},
		"bad brand":      {Brand: "not-a-uuid"},
		"bad min price":  {MinPrice: "cheap"},
		"bad max price":  {MaxPrice: "1,000"},
		"bad min rating": {MinRating: "five"},
	}
	for name, query := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildFilter(query, catalogNow)
			assertStatus(t, err, http.StatusUnprocessableEntity)
		})
	}
}

func TestBuildFilterComposesConditions(t *testing.T) {
	filter, err := BuildFilter(CatalogQuery{}, catalogNow)
	require.NoError(t, err)
	assert.Empty(t, filter.Conditions)

	filter, err = BuildFilter(CatalogQuery{
		Category: uuid.NewString(),
		Brand:    uuid.NewString(),
		Q:        "drill",
		Type:     TypeHandpicked,
		MinPrice: "1.50",
	}, catalogNow)
	require.NoError(t, err)
	// category, brand, q, rating and price from handpicked, min_price
	assert.Len(t, filter.Conditions, 6)
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage("")
	require.NoError(t, err)
	assert.Zero(t, page)

	page, err = ParsePage("3")
	require.NoError(t, err)
	assert.Equal(t, 3, page)

	for _, raw := range []string{"-1", "two", "1.5"} {
		_, err := ParsePage(raw)
		assertStatus(t, err, http.StatusUnprocessableEntity)
	}
}

func TestListProducts(t *testing.T) {
	ctx := context.Background()
	db, store := newTestStore(t)
	svc := NewCatalogService(store, func() time.Time { return catalogNow })

	acme := seedBrand(t, db, "Acme")
	globex := seedBrand(t, db, "Globex")
	tools := seedCategory(t, db, "Tools")
	garden := seedCategory(t, db, "Garden")
	boundary := catalogNow.AddDate(0, -3, 0)

	seedProduct(t, db, productOpts{title: "Boundary Hammer", price: "20", rating: 3, brand: acme, category: tools, createdAt: boundary})
	seedProduct(t, db, productOpts{title: "Old Hammer", price: "20", rating: 3, brand: acme, category: tools, createdAt: boundary.Add(-time.Second)})
	seedProduct(t, db, productOpts{title: "Golden Rake", price: "99.99", rating: 4.8, brand: globex, category: garden, createdAt: boundary.AddDate(-1, 0, 0)})
	seedProduct(t, db, productOpts{title: "Diamond Rake", price: "150", rating: 4.9, brand: globex, category: garden, createdAt: boundary.AddDate(-1, 0, 0)})
	seedProduct(t, db, productOpts{title: "Plain Rake", price: "15", rating: 4.4, brand: globex, category: garden, createdAt: boundary.AddDate(-1, 0, 0)})

	t.Run("new arrivals include the boundary instant", func(t *testing.T) {
		listing, err := svc.ListProducts(ctx, CatalogQuery{Type: TypeNewArrivals})
		require.NoError(t, err)
		assert.Equal(t, []string{"Boundary Hammer"}, titles(listing.Products))
	})

	t.Run("handpicked", func(t *testing.T) {
		listing, err := svc.ListProducts(ctx, CatalogQuery{Type: TypeHandpicked})
		require.NoError(t, err)
		assert.Equal(t, []string{"Golden Rake"}, titles(listing.Products))
	})

	t.Run("category and brand narrow together", func(t *testing.T) {
		listing, err := svc.ListProducts(ctx, CatalogQuery{Category: garden.ID.String(), Brand: acme.ID.String()})
		require.NoError(t, err)
		assert.Empty(t, listing.Products)

		listing, err = svc.ListProducts(ctx, CatalogQuery{Category: tools.ID.String(), Brand: acme.ID.String()})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Boundary Hammer", "Old Hammer"}, titles(listing.Products))
	})

	t.Run("search matches brand titles and returns brands", func(t *testing.T) {
		listing, err := svc.ListProducts(ctx, CatalogQuery{Q: "GLOB"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Golden Rake", "Diamond Rake", "Plain Rake"}, titles(listing.Products))
		require.Len(t, listing.Brands, 1)
		assert.Equal(t, "Globex", listing.Brands[0].Title)
	})

	t.Run("search matches product titles", func(t *testing.T) {
		listing, err := svc.ListProducts(ctx, CatalogQuery{Q: "hammer", MaxPrice: "25"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Boundary Hammer", "Old Hammer"}, titles(listing.Products))
		assert.Empty(t, listing.Brands)
	})

	t.Run("wildcard characters are not wildcards", func(t *testing.T) {
		for _, q := range []string{"%", "_"} {
			listing, err := svc.ListProducts(ctx, CatalogQuery{Q: q})
			require.NoError(t, err)
			assert.Empty(t, listing.Products, "q=%s", q)
			assert.Empty(t, listing.Brands, "q=%s", q)
		}
	})

	t.Run("price and rating bounds", func(t *testing.T) {
		listing, err := svc.ListProducts(ctx, CatalogQuery{MinPrice: "50", MinRating: "4.85"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Diamond Rake"}, titles(listing.Products))
	})

	t.Run("no search term means no brands", func(t *testing.T) {
		listing, err := svc.ListProducts(ctx, CatalogQuery{})
		require.NoError(t, err)
		assert.Len(t, listing.Products, 5)
		assert.Nil(t, listing.Brands)
	})
}

func TestListProductsPagination(t *testing.T) {
	ctx := context.Background()
	db, store := newTestStore(t)
	svc := NewCatalogService(store, func() time.Time { return catalogNow })
	brand := seedBrand(t, db, "Acme")
	category := seedCategory(t, db, "Tools")

	// Item 01 is the newest, so ordering by created_at DESC yields Item 01..Item 50.
	for i := 1; i <= 50; i++ {
		seedProduct(t, db, productOpts{
			title:     fmt.Sprintf("Item %02d", i),
			price:     "1",
			brand:     brand,
			category:  category,
			createdAt: catalogNow.Add(-time.Duration(i) * time.Minute),
		})
	}

	listing, err := svc.ListProducts(ctx, CatalogQuery{Page: "1"})
	require.NoError(t, err)
	require.Len(t, listing.Products, 20)
	assert.Equal(t, "Item 21", listing.Products[0].Title)
	assert.Equal(t, "Item 40", listing.Products[19].Title)

	listing, err = svc.ListProducts(ctx, CatalogQuery{Page: "2"})
	require.NoError(t, err)
	assert.Len(t, listing.Products, 10)

	listing, err = svc.ListProducts(ctx, CatalogQuery{Page: "9"})
	require.NoError(t, err)
	assert.Empty(t, listing.Products)

	_, err = svc.ListProducts(ctx, CatalogQuery{Page: "-1"})
	assertStatus(t, err, http.StatusUnprocessableEntity)
}

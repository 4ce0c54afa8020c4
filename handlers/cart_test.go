package handlers

import (
	"net/http"
	"testing"

	"storefront-api/models"

	"github.com/google/uuid"
)

func TestAddToCartSuccess(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	_, token := seedTestUser(db, "cart@test.com")
	prod := seedProduct(db, "Cart Product", "5.99")

	w := serve(router, authRequest("POST", "/cart/"+prod.ID.String(), nil, token))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(w)
	if resp["error"] != false || resp["status"] != float64(http.StatusCreated) {
		t.Errorf("unexpected envelope: %s", w.Body.String())
	}
	if msg := responseMessage(w); msg != "Item added successfully" {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestAddSameProductTwice(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	_, token := seedTestUser(db, "twice@test.com")
	prod := seedProduct(db, "Twice Product", "5.99")

	for i := 0; i < 2; i++ {
		w := serve(router, authRequest("POST", "/cart/"+prod.ID.String(), nil, token))
		if w.Code != http.StatusCreated {
			t.Fatalf("add %d: expected 201, got %d: %s", i+1, w.Code, w.Body.String())
		}
	}

	w := serve(router, authRequest("GET", "/cart", nil, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	cart, _ := responseData(w)["cart"].(map[string]interface{})
	if cart["total_price"] != "11.98" {
		t.Errorf("expected total 11.98, got %v", cart["total_price"])
	}
	lines, _ := cart["products"].([]interface{})
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0].(map[string]interface{})
	if line["quantity"] != float64(2) {
		t.Errorf("expected quantity 2, got %v", line["quantity"])
	}
	product, _ := line["product"].(map[string]interface{})
	if product["title"] != "Twice Product" {
		t.Errorf("expected product details on the line, got %v", line["product"])
	}
}

func TestAddUnknownProduct(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	_, token := seedTestUser(db, "unknown@test.com")

	w := serve(router, authRequest("POST", "/cart/"+uuid.New().String(), nil, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
	if msg := responseMessage(w); msg != "There is no product with this ID" {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestAddMalformedProductID(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	_, token := seedTestUser(db, "malformed@test.com")

	w := serve(router, authRequest("POST", "/cart/42", nil, token))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCartRequiresAuth(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	prod := seedProduct(db, "No Auth", "1.00")

	w := serve(router, jsonRequest("POST", "/cart/"+prod.ID.String(), nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d: %s", w.Code, w.Body.String())
	}
	var count int64
	db.Model(&models.Cart{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no cart to be created, got %d", count)
	}
}

func TestRemoveFromCartDeletesLastUnit(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	_, token := seedTestUser(db, "remove@test.com")
	prod := seedProduct(db, "Remove Product", "3.50")
	serve(router, authRequest("POST", "/cart/"+prod.ID.String(), nil, token))

	w := serve(router, authRequest("DELETE", "/cart/"+prod.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if msg := responseMessage(w); msg != "product removed from cart successfully" {
		t.Errorf("unexpected message: %s", msg)
	}

	var count int64
	db.Model(&models.CartProduct{}).Count(&count)
	if count != 0 {
		t.Errorf("expected line to be deleted, %d remain", count)
	}
}

func TestRemoveProductNotInCart(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	_, token := seedTestUser(db, "notincart@test.com")
	prod := seedProduct(db, "Elsewhere", "3.50")

	w := serve(router, authRequest("DELETE", "/cart/"+prod.ID.String(), nil, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
	if msg := responseMessage(w); msg != "This product is not in your cart" {
		t.Errorf("unexpected message: %s", msg)
	}
}

func TestGetCartCreatesEmptyCart(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)
	user, token := seedTestUser(db, "empty@test.com")

	w := serve(router, authRequest("GET", "/cart", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	cart, _ := responseData(w)["cart"].(map[string]interface{})
	if cart["status"] != string(models.CartStatusInProgress) {
		t.Errorf("expected IN_PROGRESS cart, got %v", cart["status"])
	}
	if cart["user_id"] != user.ID.String() {
		t.Errorf("expected cart of %s, got %v", user.ID, cart["user_id"])
	}
}

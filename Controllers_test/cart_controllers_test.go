package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/cart"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/controllers"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
)

func setupTestDBForCart(t *testing.T) *gorm.DB {
	db := openTestDB(t, &models.MenuCategory{}, &models.Dish{})
	db.Create(&models.MenuCategory{ID: 1, Name: "Noodles"})
	db.Create(&models.Dish{ID: 1, CategoryID: 1, Name: "Pho bo", Price: 10000})
	return db
}

func setupCartRouter(db *gorm.DB, carts *cart.Manager, sessionID string) *gin.Engine {
	router := gin.New()
	cartCtrl := controllers.NewCartController(db, carts)

	grp := router.Group("/", asUser(7, "customer", sessionID))
	grp.GET("/cart", cartCtrl.GetCart)
	grp.POST("/cart/items", cartCtrl.AddItem)
	grp.PATCH("/cart/items/:dish_id", cartCtrl.UpdateQuantity)
	grp.DELETE("/cart/items/:dish_id", cartCtrl.RemoveItem)
	grp.DELETE("/cart", cartCtrl.ClearCart)
	return router
}

func addToCart(t *testing.T, router *gin.Engine, dishID uint, qty int) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(map[string]interface{}{"dish_id": dishID, "quantity": qty})
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddItemSnapshotsAndMerges(t *testing.T) {
	db := setupTestDBForCart(t)
	carts := cart.NewManager()
	router := setupCartRouter(db, carts, "sess-1")

	w := addToCart(t, router, 1, 2)
	assert.Equal(t, http.StatusOK, w.Code)

	// Same dish again: one entry, summed quantity
	w = addToCart(t, router, 1, 3)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			Items []struct {
				DishID    uint    `json:"dish_id"`
				Name      string  `json:"name"`
				UnitPrice float64 `json:"unit_price"`
				Quantity  int     `json:"quantity"`
			} `json:"items"`
			Total float64 `json:"total"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data.Items, 1)
	assert.Equal(t, 5, response.Data.Items[0].Quantity)
	assert.Equal(t, 10000.0, response.Data.Items[0].UnitPrice)
	assert.Equal(t, 50000.0, response.Data.Total)
}

func TestAddUnknownDish(t *testing.T) {
	db := setupTestDBForCart(t)
	router := setupCartRouter(db, cart.NewManager(), "sess-1")

	w := addToCart(t, router, 99, 1)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAddNonPositiveQuantity(t *testing.T) {
	db := setupTestDBForCart(t)
	router := setupCartRouter(db, cart.NewManager(), "sess-1")

	w := addToCart(t, router, 1, -2)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	db := setupTestDBForCart(t)
	carts := cart.NewManager()
	router := setupCartRouter(db, carts, "sess-1")

	addToCart(t, router, 1, 2)

	payload, _ := json.Marshal(map[string]int{"quantity": 4})
	req := httptest.NewRequest(http.MethodPatch, "/cart/items/1", bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 4, carts.Get("sess-1").Items()[0].Quantity)

	req = httptest.NewRequest(http.MethodDelete, "/cart/items/1", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, carts.Get("sess-1").Len())
}

func TestClearCartIsIdempotent(t *testing.T) {
	db := setupTestDBForCart(t)
	carts := cart.NewManager()
	router := setupCartRouter(db, carts, "sess-1")

	addToCart(t, router, 1, 2)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	assert.Equal(t, 0, carts.Get("sess-1").Len())
}

func TestCartsAreSessionScoped(t *testing.T) {
	db := setupTestDBForCart(t)
	carts := cart.NewManager()
	first := setupCartRouter(db, carts, "sess-1")
	second := setupCartRouter(db, carts, "sess-2")

	addToCart(t, first, 1, 2)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()
	second.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Data struct {
			Items []interface{} `json:"items"`
		} `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Empty(t, response.Data.Items)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/cart"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

type CartController struct {
	DB    *gorm.DB
	Carts *cart.Manager
}

func NewCartController(db *gorm.DB, carts *cart.Manager) *CartController {
	return &CartController{DB: db, Carts: carts}
}

func (cc *CartController) sessionCart(c *gin.Context) (*cart.Cart, bool) {
	sessionID := c.GetString("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no cart session"))
		return nil, false
	}
	return cc.Carts.Get(sessionID), true
}

// GetCart -> current items plus the running total
func (cc *CartController) GetCart(c *gin.Context) {
	crt, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"items": crt.Items(),
		"total": crt.Total(),
	})
}

// AddItem snapshots the dish name and price at add-time; adding the same
// dish again sums the quantities.
func (cc *CartController) AddItem(c *gin.Context) {
	crt, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	var body struct {
		DishID   uint `json:"dish_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Quantity <= 0 {
		utils.RespondWithError(c, utils.Validationf("quantity must be positive"))
		return
	}

	var dish models.Dish
	if err := cc.DB.First(&dish, body.DishID).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("dish"))
		return
	}

	crt.Add(cart.Item{
		DishID:    dish.ID,
		Name:      dish.Name,
		UnitPrice: dish.Price,
		Quantity:  body.Quantity,
		ImageURL:  dish.ImageURL,
	})

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", gin.H{
		"items": crt.Items(),
		"total": crt.Total(),
	})
}

// UpdateQuantity replaces the quantity of a dish already in the cart
func (cc *CartController) UpdateQuantity(c *gin.Context) {
	crt, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	dishID, _ := strconv.Atoi(c.Param("dish_id"))

	var body struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Quantity <= 0 {
		utils.RespondWithError(c, utils.Validationf("quantity must be positive"))
		return
	}

	crt.UpdateQuantity(uint(dishID), body.Quantity)

	utils.RespondJSON(c, http.StatusOK, "Quantity updated", gin.H{
		"items": crt.Items(),
		"total": crt.Total(),
	})
}

// RemoveItem -> drop one dish from the cart, no-op when absent
func (cc *CartController) RemoveItem(c *gin.Context) {
	crt, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	dishID, _ := strconv.Atoi(c.Param("dish_id"))
	crt.Remove(uint(dishID))

	utils.RespondJSON(c, http.StatusOK, "Item removed", gin.H{
		"items": crt.Items(),
		"total": crt.Total(),
	})
}

// ClearCart -> empty the cart, idempotent
func (cc *CartController) ClearCart(c *gin.Context) {
	crt, ok := cc.sessionCart(c)
	if !ok {
		return
	}

	crt.Clear()
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}

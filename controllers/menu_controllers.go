package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/services"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllDishes -> the whole menu
func (mc *MenuController) GetAllDishes(c *gin.Context) {
	var dishes []models.Dish
	if err := mc.DB.Order("id").Find(&dishes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of dishes", dishes)
}

// GetDishesByCategory -> single-field equality query on category_id
func (mc *MenuController) GetDishesByCategory(c *gin.Context) {
	catID := c.Query("category_id")

	var dishes []models.Dish
	if err := mc.DB.Where("category_id = ?", catID).Find(&dishes).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dishes in category", dishes)
}

// CreateDish -> id from the allocator, dish name unique within the menu
func (mc *MenuController) CreateDish(c *gin.Context) {
	var req struct {
		CategoryID uint    `json:"category_id" binding:"required"`
		Name       string  `json:"name" binding:"required"`
		Price      float64 `json:"price" binding:"required"`
		ImageURL   string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price <= 0 {
		utils.RespondWithError(c, utils.Validationf("price must be positive"))
		return
	}

	var category models.MenuCategory
	if err := mc.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("category"))
		return
	}

	// Advisory uniqueness check: read-then-decide, a race can still let
	// two writers through.
	var count int64
	mc.DB.Model(&models.Dish{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		utils.RespondWithError(c, utils.Conflictf("dish %q already exists", req.Name))
		return
	}

	id, err := services.NextID(mc.DB, &models.Dish{})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	dish := models.Dish{
		ID:         id,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
		ImageURL:   req.ImageURL,
	}
	if err := mc.DB.Create(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New dish created: %s (id=%d, price=%s)", dish.Name, dish.ID, utils.FormatCurrencyVND(dish.Price))
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

// UpdateDish -> edits do not touch carts or past invoices (snapshot prices)
func (mc *MenuController) UpdateDish(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("dish_id"))

	var req struct {
		Name     *string  `json:"name"`
		Price    *float64 `json:"price"`
		ImageURL *string  `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var dish models.Dish
	if err := mc.DB.First(&dish, id).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("dish"))
		return
	}

	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondWithError(c, utils.Validationf("price must be positive"))
			return
		}
		dish.Price = *req.Price
	}
	if req.ImageURL != nil {
		dish.ImageURL = *req.ImageURL
	}

	if err := mc.DB.Save(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

// DeleteDish
func (mc *MenuController) DeleteDish(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("dish_id"))

	var dish models.Dish
	if err := mc.DB.First(&dish, id).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("dish"))
		return
	}

	if err := mc.DB.Delete(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"id": dish.ID})
}

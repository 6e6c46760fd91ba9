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

type MenuCategoryController struct {
	DB *gorm.DB
}

func NewMenuCategoryController(db *gorm.DB) *MenuCategoryController {
	return &MenuCategoryController{DB: db}
}

// GetAllCategories
func (cc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	var categories []models.MenuCategory
	if err := cc.DB.Order("id").Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}

// CreateCategory -> id from the allocator
func (cc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var count int64
	cc.DB.Model(&models.MenuCategory{}).Where("name = ?", req.Name).Count(&count)
	if count > 0 {
		utils.RespondWithError(c, utils.Conflictf("category %q already exists", req.Name))
		return
	}

	id, err := services.NextID(cc.DB, &models.MenuCategory{})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	category := models.MenuCategory{
		ID:       id,
		Name:     req.Name,
		ImageURL: req.ImageURL,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory
func (cc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("cat_id"))

	var req struct {
		Name     *string `json:"name"`
		ImageURL *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("category"))
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory fails while dishes still reference it.
func (cc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("cat_id"))

	var category models.MenuCategory
	if err := cc.DB.First(&category, id).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("category"))
		return
	}

	var dishCount int64
	cc.DB.Model(&models.Dish{}).Where("category_id = ?", category.ID).Count(&dishCount)
	if dishCount > 0 {
		utils.RespondWithError(c, utils.Validationf("category %q still has %d dishes", category.Name, dishCount))
		return
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": category.ID})
}

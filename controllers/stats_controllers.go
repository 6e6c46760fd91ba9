package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GetRevenueStats -> totals per month of a year, from invoices
func (sc *StatsController) GetRevenueStats(c *gin.Context) {
	year := c.Query("year")
	if year == "" {
		year = strconv.Itoa(time.Now().Year())
	}

	monthly, total, err := sc.monthlyRevenue(year)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var invoiceCount int64
	sc.DB.Model(&models.Invoice{}).Count(&invoiceCount)

	utils.RespondJSON(c, http.StatusOK, "Revenue stats", gin.H{
		"year":           year,
		"monthly":        monthly,
		"total":          total,
		"invoice_count":  invoiceCount,
		"total_currency": utils.FormatCurrencyVND(total),
	})
}

// GetDishStats -> quantity sold per dish, from invoice lines
func (sc *StatsController) GetDishStats(c *gin.Context) {
	var rows []struct {
		DishID  uint    `json:"dish_id"`
		Name    string  `json:"name"`
		Sold    int     `json:"sold"`
		Revenue float64 `json:"revenue"`
	}

	err := sc.DB.Model(&models.InvoiceLine{}).
		Select("invoice_lines.dish_id, dishes.name, SUM(invoice_lines.quantity) as sold, SUM(invoice_lines.quantity * invoice_lines.unit_price) as revenue").
		Joins("JOIN dishes ON dishes.id = invoice_lines.dish_id").
		Group("invoice_lines.dish_id, dishes.name").
		Order("sold DESC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dish stats", rows)
}

// GetRevenueChart renders the monthly revenue of a year as a bar chart PNG.
func (sc *StatsController) GetRevenueChart(c *gin.Context) {
	year := c.Query("year")
	if year == "" {
		year = strconv.Itoa(time.Now().Year())
	}

	monthly, _, err := sc.monthlyRevenue(year)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	bars := make([]chart.Value, 0, 12)
	for m := 1; m <= 12; m++ {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("T%d", m),
			Value: monthly[m],
		})
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Revenue %s", year),
		Height:   400,
		BarWidth: 40,
		Bars:     bars,
	}

	c.Header("Content-Type", "image/png")
	if err := graph.Render(chart.PNG, c.Writer); err != nil {
		utils.ErrorLogger.Printf("Error rendering revenue chart: %v", err)
	}
}

func (sc *StatsController) monthlyRevenue(year string) (map[int]float64, float64, error) {
	var invoices []models.Invoice
	if err := sc.DB.Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	monthly := make(map[int]float64, 12)
	var total float64
	for _, inv := range invoices {
		if strconv.Itoa(inv.CreatedAt.Year()) != year {
			continue
		}
		monthly[int(inv.CreatedAt.Month())] += inv.Total
		total += inv.Total
	}
	return monthly, total, nil
}

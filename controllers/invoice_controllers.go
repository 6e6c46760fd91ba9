package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/cart"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/events"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/services"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

type InvoiceController struct {
	DB       *gorm.DB
	Carts    *cart.Manager
	Checkout *services.CheckoutService
}

func NewInvoiceController(db *gorm.DB, carts *cart.Manager, checkout *services.CheckoutService) *InvoiceController {
	return &InvoiceController{DB: db, Carts: carts, Checkout: checkout}
}

// CheckoutCash settles the session cart against a reserved table. The
// post-payment continuation files a rating prompt for the customer.
func (ic *InvoiceController) CheckoutCash(c *gin.Context) {
	tableID, _ := strconv.Atoi(c.Param("table_id"))
	userID := c.GetUint("user_id")

	sessionID := c.GetString("session_id")
	if sessionID == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no cart session"))
		return
	}
	crt := ic.Carts.Get(sessionID)

	invoice, err := ic.Checkout.Checkout(crt, uint(tableID), userID, func(inv models.Invoice) {
		uid := inv.UserID
		notif := models.Notification{
			UserID:  &uid,
			Title:   "Thank you for your visit",
			Message: fmt.Sprintf("Payment of %s received. How was your meal? Leave us a rating!", utils.FormatCurrencyVND(inv.Total)),
		}
		if err := ic.DB.Create(&notif).Error; err != nil {
			utils.ErrorLogger.Printf("Error creating rating prompt for invoice %d: %v", inv.ID, err)
			return
		}
		events.BroadcastNotification(notif)
	})
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Payment successful", invoice)
}

// GetAllInvoices -> staff listing, newest first
func (ic *InvoiceController) GetAllInvoices(c *gin.Context) {
	var invoices []models.Invoice
	if err := ic.DB.Preload("Lines").Preload("Table").Order("id DESC").Find(&invoices).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of invoices", invoices)
}

// GetInvoiceByID -> detail with lines and dish info
func (ic *InvoiceController) GetInvoiceByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("invoice_id"))

	var invoice models.Invoice
	if err := ic.DB.Preload("Lines").Preload("Lines.Dish").Preload("Table").First(&invoice, id).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("invoice"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Invoice detail", invoice)
}

// ApproveInvoice -> bookkeeping pass, paid -> approved
func (ic *InvoiceController) ApproveInvoice(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("invoice_id"))

	invoice, err := ic.Checkout.ApproveInvoice(uint(id))
	if err != nil {
		utils.RespondWithError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Invoice approved", invoice)
}

// ExportInvoicePDF renders a printable receipt for one invoice.
func (ic *InvoiceController) ExportInvoicePDF(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("invoice_id"))

	var invoice models.Invoice
	if err := ic.DB.Preload("Lines").Preload("Lines.Dish").Preload("Table").First(&invoice, id).Error; err != nil {
		utils.RespondWithError(c, utils.NotFound("invoice"))
		return
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Invoice #%d", invoice.ID), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Table: %s", invoice.Table.Name), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", invoice.CreatedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Status: %s", invoice.Status), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(70, 7, "Dish", "1", 0, "L", false, 0, "")
	pdf.CellFormat(15, 7, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 7, "Subtotal", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range invoice.Lines {
		pdf.CellFormat(70, 7, line.Dish.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(15, 7, strconv.Itoa(line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 7, utils.FormatCurrencyVND(line.Subtotal()), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(85, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, utils.FormatCurrencyVND(invoice.Total), "1", 1, "R", false, 0, "")

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, invoice.ID))
	if err := pdf.Output(c.Writer); err != nil {
		utils.ErrorLogger.Printf("Error rendering invoice %d PDF: %v", invoice.ID, err)
	}
}

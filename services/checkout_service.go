package services

import (
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/cart"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/events"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

// CheckoutService converts a cart plus a reserved table into a persisted
// invoice with its lines, then releases the table.
//
// Invoice insert, line inserts and the table release run in one database
// transaction, so a failure mid-pipeline cannot leave an invoice recorded
// against a table that stays reserved. Cart clearing and the post-payment
// continuation happen after commit and are not rolled back.
type CheckoutService struct {
	DB *gorm.DB
}

func NewCheckoutService(db *gorm.DB) *CheckoutService {
	return &CheckoutService{DB: db}
}

// Checkout settles a cash payment. afterPay, when non-nil, runs once the
// invoice is committed (e.g. to prompt the customer for a rating).
func (cs *CheckoutService) Checkout(c *cart.Cart, tableID, userID uint, afterPay func(models.Invoice)) (*models.Invoice, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, utils.Validationf("cart is empty, nothing to pay")
	}

	var table models.Table
	if err := cs.DB.First(&table, tableID).Error; err != nil {
		return nil, utils.NotFound("table")
	}

	if table.Status != models.TableReserved {
		return nil, utils.Conflictf("table %s is %s, checkout needs a reserved table", table.Name, table.Status)
	}
	if !table.OccupiedBy(userID) {
		return nil, utils.Conflictf("table %s is held by another customer", table.Name)
	}

	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}

	var invoice models.Invoice
	err := cs.DB.Transaction(func(tx *gorm.DB) error {
		id, err := NextIDTx(tx, &models.Invoice{})
		if err != nil {
			return err
		}

		invoice = models.Invoice{
			ID:      id,
			TableID: table.ID,
			UserID:  userID,
			Total:   total,
			Status:  models.InvoicePaid,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return &utils.ExternalServiceError{Err: err}
		}

		for _, it := range items {
			line := models.InvoiceLine{
				InvoiceID: invoice.ID,
				DishID:    it.DishID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			}
			if err := tx.Create(&line).Error; err != nil {
				return &utils.ExternalServiceError{Err: err}
			}
			invoice.Lines = append(invoice.Lines, line)
		}

		return tx.Model(&models.Table{}).Where("id = ?", table.ID).
			Updates(map[string]interface{}{
				"status":      models.TableAvailable,
				"occupant_id": 0,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	c.Clear()

	table.Status = models.TableAvailable
	table.OccupantID = 0
	events.BroadcastTableUpdate(table)
	events.BroadcastInvoiceCreate(invoice)
	utils.InfoLogger.Printf("Invoice %d created for table %d, total %s", invoice.ID, table.ID, utils.FormatCurrencyVND(invoice.Total))

	if afterPay != nil {
		afterPay(invoice)
	}
	return &invoice, nil
}

// ApproveInvoice -> bookkeeping pass: paid -> approved.
func (cs *CheckoutService) ApproveInvoice(invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := cs.DB.Preload("Lines").First(&invoice, invoiceID).Error; err != nil {
		return nil, utils.NotFound("invoice")
	}

	if invoice.Status == models.InvoiceApproved {
		return nil, utils.Validationf("invoice %d is already approved", invoice.ID)
	}

	invoice.Status = models.InvoiceApproved
	if err := cs.DB.Save(&invoice).Error; err != nil {
		return nil, &utils.ExternalServiceError{Err: err}
	}

	utils.InfoLogger.Printf("Invoice %d approved", invoice.ID)
	return &invoice, nil
}

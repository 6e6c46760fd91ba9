package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/cart"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/models"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/services"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/utils"
)

func reservedTable(t *testing.T, db *gorm.DB, occupant uint) *models.Table {
	t.Helper()

	svc := services.NewReservationService(db)
	table, err := svc.CreateTable("Table T1")
	assert.NoError(t, err)

	req, err := svc.Reserve(table.ID, occupant, reservedFor)
	assert.NoError(t, err)
	got, err := svc.Approve(req.ID)
	assert.NoError(t, err)
	return got
}

func TestCheckoutHappyPath(t *testing.T) {
	db := setupTestDB(t)
	table := reservedTable(t, db, 7)
	checkout := services.NewCheckoutService(db)

	crt := cart.New()
	crt.Add(cart.Item{DishID: 1, Name: "Pho bo", UnitPrice: 10000, Quantity: 2})

	var afterPayCalled bool
	invoice, err := checkout.Checkout(crt, table.ID, 7, func(inv models.Invoice) {
		afterPayCalled = true
		assert.Equal(t, 20000.0, inv.Total)
	})
	assert.NoError(t, err)

	assert.Equal(t, uint(1), invoice.ID)
	assert.Equal(t, 20000.0, invoice.Total)
	assert.Equal(t, models.InvoicePaid, invoice.Status)
	assert.Equal(t, uint(7), invoice.UserID)

	var lines []models.InvoiceLine
	db.Where("invoice_id = ?", invoice.ID).Find(&lines)
	assert.Len(t, lines, 1)
	assert.Equal(t, uint(1), lines[0].DishID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, 10000.0, lines[0].UnitPrice)

	var got models.Table
	db.First(&got, table.ID)
	assert.Equal(t, models.TableAvailable, got.Status)
	assert.Equal(t, uint(0), got.OccupantID)

	assert.Equal(t, 0, crt.Len(), "cart is cleared after checkout")
	assert.True(t, afterPayCalled)
}

func TestCheckoutEmptyCartIsValidationError(t *testing.T) {
	db := setupTestDB(t)
	table := reservedTable(t, db, 7)
	checkout := services.NewCheckoutService(db)

	_, err := checkout.Checkout(cart.New(), table.ID, 7, nil)
	var validation *utils.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestCheckoutNeedsReservedTable(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)
	table, _ := svc.CreateTable("Table T2")
	checkout := services.NewCheckoutService(db)

	crt := cart.New()
	crt.Add(cart.Item{DishID: 1, Name: "Pho bo", UnitPrice: 10000, Quantity: 1})

	_, err := checkout.Checkout(crt, table.ID, 7, nil)
	var conflict *utils.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, crt.Len(), "cart untouched after a failed checkout")
}

func TestCheckoutByNonOccupantIsConflict(t *testing.T) {
	db := setupTestDB(t)
	table := reservedTable(t, db, 7)
	checkout := services.NewCheckoutService(db)

	crt := cart.New()
	crt.Add(cart.Item{DishID: 1, Name: "Pho bo", UnitPrice: 10000, Quantity: 1})

	_, err := checkout.Checkout(crt, table.ID, 9, nil)
	var conflict *utils.ConflictError
	assert.ErrorAs(t, err, &conflict)

	var got models.Table
	db.First(&got, table.ID)
	assert.Equal(t, models.TableReserved, got.Status, "table stays reserved")
}

// Total is computed from the snapshot prices, not the dish's current price.
func TestCheckoutUsesSnapshotPrices(t *testing.T) {
	db := setupTestDB(t)
	table := reservedTable(t, db, 7)
	checkout := services.NewCheckoutService(db)

	db.Create(&models.MenuCategory{ID: 1, Name: "Noodles"})
	db.Create(&models.Dish{ID: 1, CategoryID: 1, Name: "Pho bo", Price: 10000})

	crt := cart.New()
	crt.Add(cart.Item{DishID: 1, Name: "Pho bo", UnitPrice: 10000, Quantity: 2})

	// Price change after the item was added to the cart
	db.Model(&models.Dish{}).Where("id = ?", 1).Update("price", 99999)

	invoice, err := checkout.Checkout(crt, table.ID, 7, nil)
	assert.NoError(t, err)
	assert.Equal(t, 20000.0, invoice.Total)
}

// A failure mid-pipeline rolls back the whole checkout: no invoice row,
// table still reserved by its occupant, cart untouched.
func TestCheckoutRollsBackWhenLineInsertFails(t *testing.T) {
	db := setupTestDB(t)
	table := reservedTable(t, db, 7)
	checkout := services.NewCheckoutService(db)

	crt := cart.New()
	crt.Add(cart.Item{DishID: 1, Name: "Pho bo", UnitPrice: 10000, Quantity: 2})

	// Break the line insert after the invoice insert succeeds
	assert.NoError(t, db.Migrator().DropTable(&models.InvoiceLine{}))

	var afterPayCalled bool
	_, err := checkout.Checkout(crt, table.ID, 7, func(models.Invoice) {
		afterPayCalled = true
	})
	assert.Error(t, err)

	var invoiceCount int64
	db.Model(&models.Invoice{}).Count(&invoiceCount)
	assert.Equal(t, int64(0), invoiceCount, "invoice insert was rolled back")

	var got models.Table
	db.First(&got, table.ID)
	assert.Equal(t, models.TableReserved, got.Status)
	assert.Equal(t, uint(7), got.OccupantID)

	assert.Equal(t, 1, crt.Len(), "cart survives a failed checkout")
	assert.False(t, afterPayCalled)
}

func TestInvoiceIDsAreSequential(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewReservationService(db)
	checkout := services.NewCheckoutService(db)

	for i := 0; i < 3; i++ {
		table, _ := svc.CreateTable("Table S")
		req, _ := svc.Reserve(table.ID, 7, reservedFor)
		svc.Approve(req.ID)

		crt := cart.New()
		crt.Add(cart.Item{DishID: 1, Name: "Pho bo", UnitPrice: 5000, Quantity: 1})

		invoice, err := checkout.Checkout(crt, table.ID, 7, nil)
		assert.NoError(t, err)
		assert.Equal(t, uint(i+1), invoice.ID)
	}
}

func TestApproveInvoice(t *testing.T) {
	db := setupTestDB(t)
	table := reservedTable(t, db, 7)
	checkout := services.NewCheckoutService(db)

	crt := cart.New()
	crt.Add(cart.Item{DishID: 1, Name: "Pho bo", UnitPrice: 10000, Quantity: 1})
	invoice, _ := checkout.Checkout(crt, table.ID, 7, nil)

	approved, err := checkout.ApproveInvoice(invoice.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.InvoiceApproved, approved.Status)

	// Approving twice is rejected
	_, err = checkout.ApproveInvoice(invoice.ID)
	var validation *utils.ValidationError
	assert.ErrorAs(t, err, &validation)
}

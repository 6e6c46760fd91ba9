package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/auth"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/cart"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/controllers"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/middlewares"
	"github.com/NguyenDoTanKhoa/restaurant-reservation-app/services"
)

func SetupRouter(db *gorm.DB, carts *cart.Manager) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	reservationSvc := services.NewReservationService(db)
	checkoutSvc := services.NewCheckoutService(db)

	userCtrl := controllers.NewUserController(db, carts)
	tableCtrl := controllers.NewTableController(db, reservationSvc)
	reservationCtrl := controllers.NewReservationController(db, reservationSvc)
	cartCtrl := controllers.NewCartController(db, carts)
	invoiceCtrl := controllers.NewInvoiceController(db, carts, checkoutSvc)
	menuCtrl := controllers.NewMenuController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db)
	notificationCtrl := controllers.NewNotificationController(db)
	statsCtrl := controllers.NewStatsController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Browsing needs no login
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/dishes", menuCtrl.GetAllDishes)
	r.GET("/dishes/by-category", menuCtrl.GetDishesByCategory)
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/by-status", tableCtrl.FindTablesByStatus)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	api.POST("/logout", userCtrl.Logout)
	api.GET("/profile", userCtrl.GetProfile)
	api.GET("/notifications/mine", notificationCtrl.GetMyNotifications)

	// Event stream: subscription opens on upgrade, closes with the socket
	api.GET("/events/ws", controllers.EventsHandler)

	// TABLES & RESERVATION LIFECYCLE
	api.GET("/tables/:table_id", tableCtrl.GetTableByID)
	api.POST("/tables/:table_id/reserve", middlewares.RequireCapability(auth.Role.CanReserveTable), tableCtrl.ReserveTable)
	api.POST("/tables/:table_id/cancel", tableCtrl.CancelReservation)

	// CART (session-scoped, in memory)
	api.GET("/cart", cartCtrl.GetCart)
	api.POST("/cart/items", cartCtrl.AddItem)
	api.PATCH("/cart/items/:dish_id", cartCtrl.UpdateQuantity)
	api.DELETE("/cart/items/:dish_id", cartCtrl.RemoveItem)
	api.DELETE("/cart", cartCtrl.ClearCart)

	// CHECKOUT (cash), audited separately
	checkout := api.Group("/tables")
	checkout.Use(middlewares.CheckoutLoggerMiddleware())
	{
		checkout.POST("/:table_id/checkout", invoiceCtrl.CheckoutCash)
	}

	// STAFF: reservation queue
	staff := api.Group("/")
	staff.Use(middlewares.RequireCapability(auth.Role.CanApproveReservation))
	{
		staff.GET("/reservations", reservationCtrl.GetPendingRequests)
		staff.POST("/reservations/:request_id/approve", reservationCtrl.ApproveRequest)
		staff.POST("/reservations/:request_id/reject", reservationCtrl.RejectRequest)
		staff.GET("/dashboard/stats", tableCtrl.GetTableStats)
		staff.GET("/notifications", notificationCtrl.GetAllNotifications)
		staff.POST("/notifications", notificationCtrl.CreateNotification)
		staff.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
	}

	// STAFF: table management
	tables := api.Group("/tables")
	tables.Use(middlewares.RequireCapability(auth.Role.CanManageTables))
	{
		tables.POST("", tableCtrl.CreateTable)
		tables.PATCH("/:table_id", tableCtrl.RenameTable)
		tables.DELETE("/:table_id", tableCtrl.DeleteTable)
	}

	// STAFF: invoices
	invoices := api.Group("/invoices")
	invoices.Use(middlewares.RequireCapability(auth.Role.CanApproveInvoice))
	{
		invoices.GET("", invoiceCtrl.GetAllInvoices)
		invoices.GET("/:invoice_id", invoiceCtrl.GetInvoiceByID)
		invoices.POST("/:invoice_id/approve", invoiceCtrl.ApproveInvoice)
		invoices.GET("/:invoice_id/pdf", invoiceCtrl.ExportInvoicePDF)
	}

	// STAFF: menu management
	menu := api.Group("/")
	menu.Use(middlewares.RequireCapability(auth.Role.CanEditMenu))
	{
		menu.POST("/dishes", menuCtrl.CreateDish)
		menu.PATCH("/dishes/:dish_id", menuCtrl.UpdateDish)
		menu.DELETE("/dishes/:dish_id", menuCtrl.DeleteDish)
		menu.POST("/categories", categoryCtrl.CreateCategory)
		menu.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		menu.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)
	}

	// MANAGER: users and stats
	admin := api.Group("/admin")
	admin.Use(middlewares.RequireCapability(auth.Role.CanManageUsers))
	{
		admin.GET("/users", userCtrl.GetAllUsers)
		admin.PATCH("/users/:user_id/role", userCtrl.UpdateUserRole)
	}

	stats := api.Group("/stats")
	stats.Use(middlewares.RequireCapability(auth.Role.CanViewStats))
	{
		stats.GET("/revenue", statsCtrl.GetRevenueStats)
		stats.GET("/dishes", statsCtrl.GetDishStats)
		stats.GET("/revenue/chart", statsCtrl.GetRevenueChart)
	}

	return r
}

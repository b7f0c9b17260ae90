// Package server assembles the Fiber application: middleware, services and
// the route table.
package server

import (
	"strings"
	"time"

	"restoran-pos/internal/admin"
	"restoran-pos/internal/apperr"
	"restoran-pos/internal/audit"
	"restoran-pos/internal/auth"
	"restoran-pos/internal/config"
	"restoran-pos/internal/dashboard"
	"restoran-pos/internal/database"
	"restoran-pos/internal/events"
	"restoran-pos/internal/expense"
	"restoran-pos/internal/logger"
	"restoran-pos/internal/menu"
	"restoran-pos/internal/models"
	"restoran-pos/internal/order"
	"restoran-pos/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

type Deps struct {
	Config    *config.Config
	Store     database.Store
	Publisher events.Publisher
	Log       zerolog.Logger
}

func New(d Deps) *fiber.App {
	cfg := d.Config
	publisher := d.Publisher
	if publisher == nil {
		publisher = events.Noop{}
	}

	app := fiber.New(fiber.Config{
		AppName:      "restoran-pos",
		ErrorHandler: apperr.ErrorHandler,
		// params and bodies outlive the request in the audit trail
		Immutable:    true,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(recover.New())
	app.Use(logger.Middleware(d.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	throttle := auth.NewThrottle(cfg.LoginAttemptsPerMinute)

	authSvc := auth.NewService(d.Store)
	menuSvc := menu.NewService(d.Store)
	orderSvc := order.NewService(d.Store, publisher, cfg.NATSOrderSubject, d.Log)
	reportSvc := report.NewService(d.Store)
	settingsSvc := admin.NewSettingsService(d.Store)
	expenseSvc := expense.NewService(d.Store)
	auditSvc := audit.NewService(d.Store)
	dashboardSvc := dashboard.NewService(d.Store)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public
	api.Post("/auth/login", throttle.Middleware(), auth.LoginHandler(authSvc, tokens))
	api.Get("/settings/restaurant-name", admin.GetRestaurantNameHandler(settingsSvc))

	// Cashier and admin
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(tokens, authSvc))

	protected.Get("/auth/me", auth.MeHandler(authSvc))
	protected.Get("/menu", menu.ListItemsHandler(menuSvc))
	protected.Post("/orders", order.CompleteOrderHandler(orderSvc))
	protected.Get("/orders/:id", order.GetOrderHandler(orderSvc))

	// Admin only
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireRole(models.RoleAdmin))

	// Menu
	adminRoutes.Get("/menu", menu.ListAllItemsHandler(menuSvc))
	adminRoutes.Post("/menu", menu.CreateItemHandler(menuSvc))
	adminRoutes.Post("/menu/import", menu.ImportItemsHandler(menuSvc))
	adminRoutes.Put("/menu/:id", menu.UpdateItemHandler(menuSvc))
	adminRoutes.Delete("/menu/:id", menu.DeleteItemHandler(menuSvc))
	adminRoutes.Post("/menu/:id/toggle", menu.ToggleItemHandler(menuSvc))

	// Orders and reports
	adminRoutes.Get("/orders", order.ListOrdersHandler(orderSvc))
	adminRoutes.Get("/dashboard/sales-chart", dashboard.SalesChartHandler(dashboardSvc))
	adminRoutes.Get("/reports/daily", report.DailySalesHandler(reportSvc))
	adminRoutes.Get("/reports/monthly", report.MonthlyReportHandler(reportSvc))
	adminRoutes.Get("/reports/item-sales", report.ItemSalesHandler(reportSvc))
	adminRoutes.Get("/reports/item-sales/export", report.ExportItemSalesHandler(reportSvc))

	// Users
	adminRoutes.Get("/users", auth.ListUsersHandler(authSvc))
	adminRoutes.Post("/users", auth.CreateUserHandler(authSvc))
	adminRoutes.Delete("/users/:id", auth.DeleteUserHandler(authSvc))

	// Settings
	adminRoutes.Put("/settings/restaurant-name", admin.UpdateRestaurantNameHandler(settingsSvc))

	// Expenses
	adminRoutes.Get("/expenses", expense.ListExpensesHandler(expenseSvc))
	adminRoutes.Get("/expenses/summary", expense.ExpenseSummaryHandler(expenseSvc))
	adminRoutes.Post("/expenses", expense.CreateExpenseHandler(expenseSvc))
	adminRoutes.Delete("/expenses/:id", expense.DeleteExpenseHandler(expenseSvc))

	// Audit trail
	adminRoutes.Get("/audit-logs", audit.ListAuditLogsHandler(auditSvc))

	return app
}

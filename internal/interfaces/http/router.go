package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dashboard"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	StockUC     *stock.UseCase
	DashboardUC *dashboard.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público): login y verificación de sesión
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWTSecret)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/session", authHandler.Session)

	// Rutas protegidas (requieren Bearer Token con sesión activa)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))

	protected.Post("/auth/logout", authHandler.Logout)

	// Users (solo admin)
	users := protected.Group("/users", RequireAdmin())
	userHandler := NewUserHandler(deps.UserUC)
	users.Post("/", userHandler.Register)
	users.Get("/", userHandler.List)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Delete("/:id", categoryHandler.Delete)

	// Stock, historial, devoluciones y trocas
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup := protected.Group("/stock")
	stockGroup.Post("/movements", RequireAdmin(), stockHandler.RegisterMovement)
	stockGroup.Get("/", stockHandler.GetStock)
	stockGroup.Get("/transactions", stockHandler.GetTransactions)
	protected.Post("/returns", stockHandler.RegisterReturn)
	protected.Post("/exchanges", stockHandler.RegisterExchange)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Stats)
}

package dto

import "github.com/shopspring/decimal"

// DashboardStats agregados generales para el dashboard del back office.
type DashboardStats struct {
	TotalSales      decimal.Decimal `json:"total_sales"`
	TotalPurchases  decimal.Decimal `json:"total_purchases"`
	TotalExchanges  int             `json:"total_exchanges"`
	TotalReturns    int             `json:"total_returns"`
	RegisteredUsers int             `json:"registered_users"`
	LowStockCount   int             `json:"low_stock_count"`
	TopProduct      *TopProduct     `json:"top_product,omitempty"`
	MonthlySales    []MonthlyTotal  `json:"monthly_sales"`

	// Altas de usuarios por mes, misma ventana que MonthlySales.
	MonthlyRegistrations []MonthlyCount `json:"monthly_registrations"`
}

// TopProduct producto más vendido con unidades acumuladas.
type TopProduct struct {
	Product   ProductSummary `json:"product"`
	UnitsSold int            `json:"units_sold"`
}

// MonthlyTotal total vendido en un mes (YYYY-MM). La serie incluye meses sin ventas.
type MonthlyTotal struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// MonthlyCount conteo por mes (YYYY-MM). La serie incluye meses en cero.
type MonthlyCount struct {
	Month string `json:"month"`
	Total int    `json:"total"`
}

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Meses cubiertos por la serie de ventas del dashboard.
const seriesMonths = 12

// UseCase agregados de solo lectura para el dashboard del back office.
type UseCase struct {
	dashRepo  repository.DashboardRepository
	userRepo  repository.UserRepository
	stockRepo repository.StockRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(dashRepo repository.DashboardRepository, userRepo repository.UserRepository, stockRepo repository.StockRepository) *UseCase {
	return &UseCase{dashRepo: dashRepo, userRepo: userRepo, stockRepo: stockRepo}
}

// Stats arma las estadísticas generales: totales de ventas/compras, conteos de
// trocas y devoluciones, producto más vendido, productos con stock bajo,
// usuarios registrados y la serie mensual de ventas de los últimos 12 meses
// (con meses sin ventas en cero).
func (uc *UseCase) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	totalSales, err := uc.dashRepo.SumPriceByType(entity.TransactionOut)
	if err != nil {
		return nil, fmt.Errorf("total ventas: %w", err)
	}
	totalPurchases, err := uc.dashRepo.SumPriceByType(entity.TransactionIn)
	if err != nil {
		return nil, fmt.Errorf("total compras: %w", err)
	}
	totalExchanges, err := uc.dashRepo.CountByType(entity.TransactionExchangeOut)
	if err != nil {
		return nil, fmt.Errorf("conteo trocas: %w", err)
	}
	totalReturns, err := uc.dashRepo.CountByType(entity.TransactionReturn)
	if err != nil {
		return nil, fmt.Errorf("conteo devoluciones: %w", err)
	}
	users, err := uc.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("usuarios registrados: %w", err)
	}
	lowStock, err := uc.stockRepo.CountBelowThreshold()
	if err != nil {
		return nil, fmt.Errorf("stock bajo: %w", err)
	}

	stats := &dto.DashboardStats{
		TotalSales:      totalSales,
		TotalPurchases:  totalPurchases,
		TotalExchanges:  totalExchanges,
		TotalReturns:    totalReturns,
		RegisteredUsers: len(users),
		LowStockCount:   lowStock,
	}

	if top, err := uc.dashRepo.TopProduct(); err != nil {
		return nil, fmt.Errorf("producto más vendido: %w", err)
	} else if top != nil {
		stats.TopProduct = &dto.TopProduct{
			Product: dto.ProductSummary{
				ID:    top.Product.ID,
				Name:  top.Product.Name,
				Brand: top.Product.Brand,
				Price: top.Product.Price,
				Size:  top.Product.Size,
				Color: top.Product.Color,
			},
			UnitsSold: top.UnitsSold,
		}
	}

	series, err := uc.dashRepo.MonthlySalesSeries(seriesMonths)
	if err != nil {
		return nil, fmt.Errorf("serie mensual: %w", err)
	}
	stats.MonthlySales = fillSeries(series, time.Now(), seriesMonths)

	registrations, err := uc.userRepo.CountByMonth(seriesMonths)
	if err != nil {
		return nil, fmt.Errorf("registros mensuales: %w", err)
	}
	stats.MonthlyRegistrations = fillCountSeries(registrations, time.Now(), seriesMonths)

	return stats, nil
}

// fillSeries completa la serie temporal: un punto por mes, en cero cuando el
// mes no tuvo ventas.
func fillSeries(rows []repository.MonthTotal, now time.Time, months int) []dto.MonthlyTotal {
	byMonth := make(map[string]decimal.Decimal, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.Total
	}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	out := make([]dto.MonthlyTotal, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		total, ok := byMonth[month]
		if !ok {
			total = decimal.Zero
		}
		out = append(out, dto.MonthlyTotal{Month: month, Total: total})
	}
	return out
}

// fillCountSeries igual que fillSeries pero para conteos enteros (altas de
// usuarios por mes).
func fillCountSeries(rows []repository.MonthCount, now time.Time, months int) []dto.MonthlyCount {
	byMonth := make(map[string]int, len(rows))
	for _, r := range rows {
		byMonth[r.Month] = r.Total
	}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(months - 1), 0)
	out := make([]dto.MonthlyCount, 0, months)
	for i := 0; i < months; i++ {
		month := start.AddDate(0, i, 0).Format("2006-01")
		out = append(out, dto.MonthlyCount{Month: month, Total: byMonth[month]})
	}
	return out
}

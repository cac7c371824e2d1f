package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados de solo lectura sobre transaction_history.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// SumPriceByType suma transaction_price de las transacciones del tipo dado.
func (r *DashboardRepo) SumPriceByType(transactionType string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(transaction_price), 0) FROM transaction_history WHERE type = $1`,
		transactionType).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum by type: %w", err)
	}
	return total, nil
}

// CountByType cuenta transacciones del tipo dado.
func (r *DashboardRepo) CountByType(transactionType string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM transaction_history WHERE type = $1`, transactionType).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by type: %w", err)
	}
	return count, nil
}

// TopProduct devuelve el producto con más unidades vendidas (tipo out), o nil
// si no hay ventas.
func (r *DashboardRepo) TopProduct() (*repository.TopProductRow, error) {
	query := `
		SELECT p.id, p.name, p.brand, p.price, p.size, p.color, SUM(t.quantity) AS units
		FROM transaction_history t
		JOIN products p ON p.id = t.product_id
		WHERE t.type = 'out'
		GROUP BY p.id, p.name, p.brand, p.price, p.size, p.color
		ORDER BY units DESC
		LIMIT 1`
	var row repository.TopProductRow
	err := r.q.QueryRow(context.Background(), query).Scan(
		&row.Product.ID, &row.Product.Name, &row.Product.Brand, &row.Product.Price,
		&row.Product.Size, &row.Product.Color, &row.UnitsSold,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("top product: %w", err)
	}
	return &row, nil
}

// MonthlySalesSeries suma las ventas (tipo out) agrupadas por mes en los últimos n meses.
func (r *DashboardRepo) MonthlySalesSeries(months int) ([]repository.MonthTotal, error) {
	query := `
		SELECT to_char(date_trunc('month', transaction_date), 'YYYY-MM') AS month,
		       COALESCE(SUM(transaction_price), 0)
		FROM transaction_history
		WHERE type = 'out'
		  AND transaction_date >= date_trunc('month', now()) - make_interval(months => $1 - 1)
		GROUP BY month
		ORDER BY month`
	rows, err := r.q.Query(context.Background(), query, months)
	if err != nil {
		return nil, fmt.Errorf("monthly sales: %w", err)
	}
	defer rows.Close()

	var list []repository.MonthTotal
	for rows.Next() {
		var mt repository.MonthTotal
		if err := rows.Scan(&mt.Month, &mt.Total); err != nil {
			return nil, fmt.Errorf("scan month total: %w", err)
		}
		list = append(list, mt)
	}
	return list, rows.Err()
}

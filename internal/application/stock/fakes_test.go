package stock_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria: un memStore compartido + repos atados a él. El fakeTxRunner
// toma un snapshot antes de ejecutar y lo restaura si la función falla, para
// reproducir la semántica de rollback de la transacción real.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	stocks       map[string]entity.Stock // por product_id
	transactions []entity.Transaction    // en orden de inserción
	products     map[string]entity.Product
}

func newMemStore() *memStore {
	return &memStore{
		stocks:   make(map[string]entity.Stock),
		products: make(map[string]entity.Product),
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, v := range s.stocks {
		cp.stocks[k] = v
	}
	for k, v := range s.products {
		cp.products[k] = v
	}
	cp.transactions = append([]entity.Transaction(nil), s.transactions...)
	return cp
}

func (s *memStore) restore(from *memStore) {
	s.stocks = from.stocks
	s.products = from.products
	s.transactions = from.transactions
}

func (s *memStore) findTransaction(id string) (int, bool) {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i, true
		}
	}
	return 0, false
}

// ── StockRepository ──────────────────────────────────────────────────────────

type fakeStockRepo struct{ s *memStore }

func (r *fakeStockRepo) Get(productID string) (*entity.Stock, error) {
	if st, ok := r.s.stocks[productID]; ok {
		cp := st
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeStockRepo) GetForUpdate(productID string) (*entity.Stock, error) {
	if st, ok := r.s.stocks[productID]; ok {
		cp := st
		return &cp, nil
	}
	// Sin fila todavía: fila en cero sin ID, igual que el repo real.
	return &entity.Stock{ProductID: productID}, nil
}

func (r *fakeStockRepo) Upsert(st *entity.Stock) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	r.s.stocks[st.ProductID] = *st
	return nil
}

func (r *fakeStockRepo) ListWithProduct() ([]*repository.StockWithProduct, error) {
	var out []*repository.StockWithProduct
	for pid, st := range r.s.stocks {
		out = append(out, &repository.StockWithProduct{Stock: st, Product: r.s.products[pid]})
	}
	return out, nil
}

func (r *fakeStockRepo) CountBelowThreshold() (int, error) {
	count := 0
	for pid, st := range r.s.stocks {
		p, ok := r.s.products[pid]
		if ok && p.AlertThreshold != nil && st.Quantity <= *p.AlertThreshold {
			count++
		}
	}
	return count, nil
}

// ── TransactionRepository ────────────────────────────────────────────────────

type fakeTransactionRepo struct{ s *memStore }

func (r *fakeTransactionRepo) Create(tx *entity.Transaction) error {
	r.s.transactions = append(r.s.transactions, *tx)
	return nil
}

func (r *fakeTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	if i, ok := r.s.findTransaction(id); ok {
		cp := r.s.transactions[i]
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	return r.GetByID(id)
}

func (r *fakeTransactionRepo) MarkReturned(id string) error {
	i, ok := r.s.findTransaction(id)
	if !ok {
		return fmt.Errorf("marcar devuelta %s: %w", id, domain.ErrNotFound)
	}
	r.s.transactions[i].IsReturned = true
	return nil
}

func (r *fakeTransactionRepo) ListWithRefs() ([]*repository.TransactionWithRefs, error) {
	out := make([]*repository.TransactionWithRefs, 0, len(r.s.transactions))
	for i := len(r.s.transactions) - 1; i >= 0; i-- {
		tx := r.s.transactions[i]
		out = append(out, &repository.TransactionWithRefs{
			Transaction: tx,
			Product:     r.s.products[tx.ProductID],
		})
	}
	return out, nil
}

// ── ProductRepository ────────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

func (r *fakeProductRepo) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok {
		cp := p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r *fakeProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

func (r *fakeProductRepo) ListWithCategory() ([]*repository.ProductWithCategory, error) {
	var out []*repository.ProductWithCategory
	for _, p := range r.s.products {
		out = append(out, &repository.ProductWithCategory{Product: p})
	}
	return out, nil
}

// ── TxRunner ─────────────────────────────────────────────────────────────────

type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	txRepo repository.TransactionRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	before := r.s.snapshot()
	err := fn(&fakeTransactionRepo{s: r.s}, &fakeStockRepo{s: r.s}, &fakeProductRepo{s: r.s})
	if err != nil {
		r.s.restore(before)
	}
	return err
}

// ── Notificador ──────────────────────────────────────────────────────────────

// chanNotifier entrega cada alerta por canal para que el test pueda esperar la
// publicación asíncrona. Con fail=true devuelve error tras entregar.
type chanNotifier struct {
	alerts chan stock.LowStockAlert
	fail   bool
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{alerts: make(chan stock.LowStockAlert, 16)}
}

func (n *chanNotifier) NotifyLowStock(_ context.Context, alert stock.LowStockAlert) error {
	n.alerts <- alert
	if n.fail {
		return fmt.Errorf("broker no disponible")
	}
	return nil
}

// waitAlert espera una alerta o falla el test tras el timeout.
func (n *chanNotifier) waitAlert(t *testing.T) stock.LowStockAlert {
	t.Helper()
	select {
	case a := <-n.alerts:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("se esperaba una alerta de stock bajo y no llegó")
		return stock.LowStockAlert{}
	}
}

// assertNoAlert verifica que no se haya publicado ninguna alerta.
func (n *chanNotifier) assertNoAlert(t *testing.T) {
	t.Helper()
	select {
	case a := <-n.alerts:
		t.Fatalf("no se esperaba alerta y llegó: %+v", a)
	case <-time.After(50 * time.Millisecond):
	}
}

// ── Armado común ─────────────────────────────────────────────────────────────

type fixture struct {
	store    *memStore
	notifier *chanNotifier
	uc       *stock.UseCase
}

func newFixture() *fixture {
	store := newMemStore()
	notifier := newChanNotifier()
	uc := stock.NewUseCase(
		&fakeTxRunner{s: store},
		&fakeStockRepo{s: store},
		&fakeTransactionRepo{s: store},
		notifier,
	)
	return &fixture{store: store, notifier: notifier, uc: uc}
}

// seedProduct registra un producto de catálogo con precio y umbral opcional.
func (f *fixture) seedProduct(t *testing.T, id, name, price string, threshold *int) {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	now := time.Now()
	f.store.products[id] = entity.Product{
		ID:             id,
		Name:           name,
		Price:          p,
		Size:           "M",
		Color:          "negro",
		AlertThreshold: threshold,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// seedStock fija la existencia actual de un producto.
func (f *fixture) seedStock(id, productID string, quantity int) {
	f.store.stocks[productID] = entity.Stock{
		ID:            id,
		ProductID:     productID,
		Quantity:      quantity,
		OperationType: entity.OperationIn,
		UpdatedAt:     time.Now(),
	}
}

func (f *fixture) stockQty(productID string) int {
	return f.store.stocks[productID].Quantity
}

func intPtr(n int) *int { return &n }

func decimalFrom(s string) decimal.Decimal { return decimal.RequireFromString(s) }

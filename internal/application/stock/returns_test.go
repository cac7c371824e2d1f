package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// venta registra una salida y devuelve la transacción creada.
func venta(t *testing.T, f *fixture, productID string, qty int, price string) *entity.Transaction {
	t.Helper()
	tx, err := f.uc.RegisterMovement(context.Background(), movementInput(productID, entity.OperationOut, qty, price))
	require.NoError(t, err)
	return tx
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterReturn
// ──────────────────────────────────────────────────────────────────────────────

// Flujo completo: venta de 3 sobre 10 deja 7; la devolución vuelve a 10, marca
// la original y agrega el registro return copiando sus datos.
func TestRegisterReturn_RestauraStockYMarcaLaOriginal(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Vestido midi", "120.00", nil)
	f.seedStock("s1", "p1", 10)

	sale := venta(t, f, "p1", 3, "360.00")
	require.Equal(t, 7, f.stockQty("p1"))

	ret, err := f.uc.RegisterReturn(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)

	assert.Equal(t, 10, f.stockQty("p1"), "la devolución restaura el stock vendido")

	original, err2 := f.uc.ListTransactions(context.Background())
	require.NoError(t, err2)
	require.Len(t, original, 2)
	assert.True(t, original[1].Transaction.IsReturned, "la venta original queda marcada como devuelta")

	assert.Equal(t, entity.TransactionReturn, ret.Type)
	assert.Equal(t, sale.ProductID, ret.ProductID)
	assert.Equal(t, sale.Quantity, ret.Quantity)
	assert.True(t, ret.TransactionPrice.Equal(sale.TransactionPrice))
	assert.Equal(t, sale.SupplierOrBuyer, ret.SupplierOrBuyer)
	assert.False(t, ret.IsReturned, "el registro return nace sin marcar")
}

// Una transacción solo se devuelve una vez.
func TestRegisterReturn_SegundaDevolucionRechazada(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Vestido midi", "120.00", nil)
	f.seedStock("s1", "p1", 10)
	sale := venta(t, f, "p1", 3, "360.00")

	_, err := f.uc.RegisterReturn(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)
	journalLen := len(f.store.transactions)

	_, err = f.uc.RegisterReturn(context.Background(), testUserID, sale.ID)
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 10, f.stockQty("p1"), "el stock no debe sumarse dos veces")
	assert.Len(t, f.store.transactions, journalLen, "el historial no debe crecer")
}

func TestRegisterReturn_TransaccionInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RegisterReturn(context.Background(), testUserID, "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterReturn_SinTransactionID(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RegisterReturn(context.Background(), testUserID, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El producto pudo salir del catálogo después de la venta: la devolución
// procede igual y crea la fila de stock si hace falta.
func TestRegisterReturn_ProductoFueraDeCatalogo(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Vestido midi", "120.00", nil)
	f.seedStock("s1", "p1", 10)
	sale := venta(t, f, "p1", 2, "240.00")

	delete(f.store.products, "p1")
	delete(f.store.stocks, "p1")

	ret, err := f.uc.RegisterReturn(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionReturn, ret.Type)
	assert.Equal(t, 2, f.stockQty("p1"), "se crea la fila de stock con lo devuelto")
	f.notifier.assertNoAlert(t)
}

// La devolución suma stock: al quedar por encima del umbral no debe
// publicarse ninguna alerta.
func TestRegisterReturn_SinAlertaAlRestaurarStock(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Vestido midi", "120.00", intPtr(3))
	f.seedStock("s1", "p1", 10)
	sale := venta(t, f, "p1", 2, "240.00")
	// la venta deja 8, por encima del umbral: sin alerta
	f.notifier.assertNoAlert(t)

	_, err := f.uc.RegisterReturn(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)
	f.notifier.assertNoAlert(t)
}

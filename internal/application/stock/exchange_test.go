package stock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// RegisterExchange
// ──────────────────────────────────────────────────────────────────────────────

// Caso feliz: una venta de $50 se troca por 2 unidades de un producto de $25.
// Se descuentan los nuevos, se restaura el original y la respuesta trae las
// exchange_out en el orden de los ítems y la exchange_in al final.
func TestRegisterExchange_ValorIgualAplicaLaTroca(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "50.00", nil)
	f.seedProduct(t, "pB", "Gorra", "25.00", nil)
	f.seedStock("sA", "pA", 10)
	f.seedStock("sB", "pB", 10)

	sale := venta(t, f, "pA", 1, "50.00")
	require.Equal(t, 9, f.stockQty("pA"))

	txs, err := f.uc.RegisterExchange(context.Background(), testUserID, sale.ID,
		[]stock.ExchangeItem{{ProductID: "pB", Quantity: 2}})
	require.NoError(t, err)

	require.Len(t, txs, 2)
	out, in := txs[0], txs[1]
	assert.Equal(t, entity.TransactionExchangeOut, out.Type)
	assert.Equal(t, "pB", out.ProductID)
	assert.Equal(t, 2, out.Quantity)
	assert.True(t, out.TransactionPrice.Equal(decimalFrom("50.00")), "precio de línea: 2 x 25.00")
	assert.Equal(t, sale.SupplierOrBuyer, out.SupplierOrBuyer, "la contraparte se hereda de la original")
	assert.False(t, out.IsReturned)

	assert.Equal(t, entity.TransactionExchangeIn, in.Type)
	assert.Equal(t, "pA", in.ProductID)
	assert.Equal(t, 1, in.Quantity)
	assert.True(t, in.TransactionPrice.Equal(sale.TransactionPrice))
	assert.True(t, in.IsReturned, "la exchange_in nace marcada: ese producto ya volvió")

	assert.Equal(t, 10, f.stockQty("pA"), "el producto original vuelve al stock")
	assert.Equal(t, 8, f.stockQty("pB"), "los nuevos salen del stock")

	orig, err := f.uc.ListTransactions(context.Background())
	require.NoError(t, err)
	var found bool
	for _, row := range orig {
		if row.Transaction.ID == sale.ID {
			found = true
			assert.True(t, row.Transaction.IsReturned, "la venta original queda marcada")
		}
	}
	require.True(t, found)
}

// Varios ítems: las exchange_out respetan el orden de entrada.
func TestRegisterExchange_VariosItemsEnOrden(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "100.00", nil)
	f.seedProduct(t, "pB", "Gorra", "25.00", nil)
	f.seedProduct(t, "pC", "Cinturón", "75.00", nil)
	f.seedStock("sA", "pA", 5)
	f.seedStock("sB", "pB", 5)
	f.seedStock("sC", "pC", 5)

	sale := venta(t, f, "pA", 1, "100.00")

	txs, err := f.uc.RegisterExchange(context.Background(), testUserID, sale.ID,
		[]stock.ExchangeItem{{ProductID: "pB", Quantity: 1}, {ProductID: "pC", Quantity: 1}})
	require.NoError(t, err)

	require.Len(t, txs, 3)
	assert.Equal(t, "pB", txs[0].ProductID)
	assert.Equal(t, "pC", txs[1].ProductID)
	assert.Equal(t, entity.TransactionExchangeIn, txs[2].Type)
}

// Solo las ventas (out) pueden trocarse.
func TestRegisterExchange_SoloVentasPuedenTrocarse(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "50.00", nil)

	compra, err := f.uc.RegisterMovement(context.Background(), movementInput("pA", entity.OperationIn, 5, "250.00"))
	require.NoError(t, err)

	_, err = f.uc.RegisterExchange(context.Background(), testUserID, compra.ID,
		[]stock.ExchangeItem{{ProductID: "pA", Quantity: 5}})
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Contains(t, err.Error(), "salida")
}

// Una venta ya devuelta o trocada no puede trocarse otra vez.
func TestRegisterExchange_VentaYaDevueltaRechazada(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "50.00", nil)
	f.seedStock("sA", "pA", 10)
	sale := venta(t, f, "pA", 1, "50.00")

	_, err := f.uc.RegisterReturn(context.Background(), testUserID, sale.ID)
	require.NoError(t, err)

	_, err = f.uc.RegisterExchange(context.Background(), testUserID, sale.ID,
		[]stock.ExchangeItem{{ProductID: "pA", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestRegisterExchange_TransaccionInexistente(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "50.00", nil)

	_, err := f.uc.RegisterExchange(context.Background(), testUserID, "no-existe",
		[]stock.ExchangeItem{{ProductID: "pA", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// El producto nuevo inexistente se identifica por su ID en el error.
func TestRegisterExchange_ProductoNuevoInexistente(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "50.00", nil)
	f.seedStock("sA", "pA", 10)
	sale := venta(t, f, "pA", 1, "50.00")

	_, err := f.uc.RegisterExchange(context.Background(), testUserID, sale.ID,
		[]stock.ExchangeItem{{ProductID: "fantasma", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "fantasma")
}

// La igualdad de valor es al centavo: un centavo de diferencia rechaza la troca
// y el historial queda intacto.
func TestRegisterExchange_DiferenciaDeUnCentavoRechazada(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "50.00", nil)
	f.seedProduct(t, "pB", "Gorra", "24.99", nil)
	f.seedStock("sA", "pA", 10)
	f.seedStock("sB", "pB", 10)
	sale := venta(t, f, "pA", 1, "50.00")
	journalLen := len(f.store.transactions)

	// 2 x 24.99 = 49.98 != 50.00
	_, err := f.uc.RegisterExchange(context.Background(), testUserID, sale.ID,
		[]stock.ExchangeItem{{ProductID: "pB", Quantity: 2}})
	require.ErrorIs(t, err, domain.ErrValueMismatch)

	assert.Len(t, f.store.transactions, journalLen, "el historial no debe crecer")
	assert.Equal(t, 10, f.stockQty("pB"), "el stock de los nuevos no se toca")
	tx, err2 := f.uc.ListTransactions(context.Background())
	require.NoError(t, err2)
	assert.False(t, tx[0].Transaction.IsReturned, "la original no debe quedar marcada")
}

// Lote atómico: si un ítem no tiene stock, ningún ítem del lote queda aplicado
// y la original no se marca.
func TestRegisterExchange_StockInsuficienteRevierteElLote(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "100.00", nil)
	f.seedProduct(t, "pB", "Gorra", "25.00", nil)
	f.seedProduct(t, "pC", "Cinturón", "75.00", nil)
	f.seedStock("sA", "pA", 5)
	f.seedStock("sB", "pB", 5)
	f.seedStock("sC", "pC", 0)

	sale := venta(t, f, "pA", 1, "100.00")
	journalLen := len(f.store.transactions)

	_, err := f.uc.RegisterExchange(context.Background(), testUserID, sale.ID,
		[]stock.ExchangeItem{{ProductID: "pB", Quantity: 1}, {ProductID: "pC", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "pC")

	assert.Equal(t, 5, f.stockQty("pB"), "ni siquiera el primer ítem queda aplicado")
	assert.Equal(t, 4, f.stockQty("pA"), "el stock original no se restaura")
	assert.Len(t, f.store.transactions, journalLen)
}

func TestRegisterExchange_EntradaInvalida(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RegisterExchange(context.Background(), testUserID, "", nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.RegisterExchange(context.Background(), testUserID, "tx1",
		[]stock.ExchangeItem{{ProductID: "pA", Quantity: 0}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La troca puede dejar el stock de un producto nuevo bajo su umbral: alerta.
func TestRegisterExchange_AlertaDeStockBajoEnProductoNuevo(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "pA", "Polo clásico", "50.00", nil)
	f.seedProduct(t, "pB", "Gorra", "25.00", intPtr(9))
	f.seedStock("sA", "pA", 10)
	f.seedStock("sB", "pB", 10)
	sale := venta(t, f, "pA", 1, "50.00")

	_, err := f.uc.RegisterExchange(context.Background(), testUserID, sale.ID,
		[]stock.ExchangeItem{{ProductID: "pB", Quantity: 2}})
	require.NoError(t, err)

	alert := f.notifier.waitAlert(t)
	assert.Equal(t, "pB", alert.ProductID)
	assert.Equal(t, 8, alert.Quantity)
}

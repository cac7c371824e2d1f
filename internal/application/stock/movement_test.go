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

const testUserID = "00000000-0000-0000-0000-000000000001"

func movementInput(productID, typ string, qty int, price string) stock.MovementInput {
	return stock.MovementInput{
		UserID:           testUserID,
		ProductID:        productID,
		Type:             typ,
		Quantity:         qty,
		TransactionPrice: decimalFrom(price),
		SupplierOrBuyer:  "Proveedora del Norte",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovement
// ──────────────────────────────────────────────────────────────────────────────

// Primera entrada de un producto sin fila de stock: la crea con la cantidad.
func TestRegisterMovement_EntradaCreaFilaDeStock(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Camisa lino", "79.90", nil)

	tx, err := f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationIn, 10, "799.00"))
	require.NoError(t, err)

	assert.Equal(t, 10, f.stockQty("p1"), "la primera entrada crea la fila de stock con la cantidad")
	require.NotNil(t, tx)
	assert.Equal(t, entity.TransactionIn, tx.Type)
	assert.Equal(t, 10, tx.Quantity)
	assert.True(t, tx.TransactionPrice.Equal(decimalFrom("799.00")))
	assert.False(t, tx.IsReturned)
	assert.Equal(t, testUserID, tx.UserID)
	require.Len(t, f.store.transactions, 1, "debe quedar exactamente un registro en el historial")
}

// Una salida descuenta del stock existente y agrega el registro out.
func TestRegisterMovement_SalidaDescuentaStock(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Camisa lino", "79.90", nil)
	f.seedStock("s1", "p1", 10)

	tx, err := f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationOut, 3, "239.70"))
	require.NoError(t, err)

	assert.Equal(t, 7, f.stockQty("p1"))
	assert.Equal(t, entity.TransactionOut, tx.Type)
	assert.Equal(t, entity.OperationOut, f.store.stocks["p1"].OperationType,
		"la fila de stock registra la dirección del último movimiento")
}

// El precio se redondea a 2 decimales al persistir.
func TestRegisterMovement_RedondeaPrecioADosDecimales(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Camisa lino", "79.90", nil)

	tx, err := f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationIn, 1, "10.999"))
	require.NoError(t, err)
	assert.True(t, tx.TransactionPrice.Equal(decimalFrom("11.00")),
		"el precio persistido debe estar redondeado al centavo")
}

// Salida mayor al stock disponible: se rechaza y nada queda a medio aplicar.
func TestRegisterMovement_StockInsuficienteDejaTodoIntacto(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Camisa lino", "79.90", nil)
	f.seedStock("s1", "p1", 2)

	_, err := f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationOut, 5, "399.50"))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "p1", "el error debe identificar el producto")

	assert.Equal(t, 2, f.stockQty("p1"), "el stock no debe cambiar")
	assert.Empty(t, f.store.transactions, "el historial no debe registrar nada")
}

// La validación acumula todas las violaciones en un solo error.
func TestRegisterMovement_ValidacionAcumulaViolaciones(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RegisterMovement(context.Background(), stock.MovementInput{UserID: testUserID, Type: "transfer"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "product_id")
	assert.Contains(t, err.Error(), "quantity")
	assert.Contains(t, err.Error(), "transaction_price")
	assert.Contains(t, err.Error(), "supplier_or_buyer")
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.RegisterMovement(context.Background(), movementInput("no-existe", entity.OperationIn, 1, "10.00"))
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "no-existe")
}

func TestRegisterMovement_SinUsuarioAutenticado(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Camisa lino", "79.90", nil)

	in := movementInput("p1", entity.OperationIn, 1, "10.00")
	in.UserID = ""
	_, err := f.uc.RegisterMovement(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alertas de stock bajo
// ──────────────────────────────────────────────────────────────────────────────

// Al cruzar el umbral hacia abajo se publica una alerta (fuera de la transacción).
func TestRegisterMovement_PublicaAlertaAlQuedarBajoElUmbral(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Camisa lino", "79.90", intPtr(5))
	f.seedStock("s1", "p1", 6)

	_, err := f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationOut, 2, "159.80"))
	require.NoError(t, err)

	alert := f.notifier.waitAlert(t)
	assert.Equal(t, "p1", alert.ProductID)
	assert.Equal(t, "Camisa lino", alert.ProductName)
	assert.Equal(t, 4, alert.Quantity)
	assert.Equal(t, 5, alert.Threshold)
}

// Por encima del umbral no hay alerta.
func TestRegisterMovement_SinAlertaPorEncimaDelUmbral(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Camisa lino", "79.90", intPtr(5))
	f.seedStock("s1", "p1", 10)

	_, err := f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationOut, 2, "159.80"))
	require.NoError(t, err)
	f.notifier.assertNoAlert(t)
}

// Un fallo del notificador nunca falla el movimiento ya confirmado.
func TestRegisterMovement_FalloDelNotificadorNoAfectaElMovimiento(t *testing.T) {
	f := newFixture()
	f.notifier.fail = true
	f.seedProduct(t, "p1", "Camisa lino", "79.90", intPtr(5))
	f.seedStock("s1", "p1", 5)

	_, err := f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationOut, 1, "79.90"))
	require.NoError(t, err)

	f.notifier.waitAlert(t)
	assert.Equal(t, 4, f.stockQty("p1"), "el movimiento queda aplicado aunque el broker falle")
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListTransactions_MasRecientesPrimero(t *testing.T) {
	f := newFixture()
	f.seedProduct(t, "p1", "Camisa lino", "79.90", nil)

	_, err := f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationIn, 5, "399.50"))
	require.NoError(t, err)
	_, err = f.uc.RegisterMovement(context.Background(), movementInput("p1", entity.OperationOut, 2, "159.80"))
	require.NoError(t, err)

	rows, err := f.uc.ListTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, entity.TransactionOut, rows[0].Transaction.Type, "la más reciente va primero")
	assert.Equal(t, entity.TransactionIn, rows[1].Transaction.Type)
}

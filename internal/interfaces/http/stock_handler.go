package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/stock"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// StockHandler maneja movimientos de stock, consultas del inventario y los
// flujos de devolución y troca.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// RegisterMovement godoc
// @Summary      Registrar entrada o salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type (in|out), quantity, transaction_price, supplier_or_buyer"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.uc.RegisterMovement(c.Context(), stock.MovementInput{
		UserID:           GetUserID(c),
		ProductID:        in.ProductID,
		Type:             in.Type,
		Quantity:         in.Quantity,
		TransactionPrice: in.TransactionPrice,
		SupplierOrBuyer:  in.SupplierOrBuyer,
	})
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// GetStock godoc
// @Summary      Listar existencias con su producto
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockRow
// @Router       /api/stock [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	rows, err := h.uc.ListStock(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	out := make([]dto.StockRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.StockRow{
			StockID:   row.Stock.ID,
			ProductID: row.Stock.ProductID,
			Quantity:  row.Stock.Quantity,
			Product:   toProductSummary(&row.Product),
		})
	}
	return c.JSON(out)
}

// GetTransactions godoc
// @Summary      Historial de transacciones (más recientes primero)
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransactionRow
// @Router       /api/stock/transactions [get]
func (h *StockHandler) GetTransactions(c *fiber.Ctx) error {
	rows, err := h.uc.ListTransactions(c.Context())
	if err != nil {
		return mapError(c, err)
	}
	out := make([]dto.TransactionRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, toTransactionRow(row))
	}
	return c.JSON(out)
}

// RegisterReturn godoc
// @Summary      Registrar la devolución de una venta
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterReturnRequest  true  "transaction_id de la venta original"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *StockHandler) RegisterReturn(c *fiber.Ctx) error {
	var in dto.RegisterReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tx, err := h.uc.RegisterReturn(c.Context(), GetUserID(c), in.TransactionID)
	if err != nil {
		return mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransactionResponse(tx))
}

// RegisterExchange godoc
// @Summary      Trocar una venta por productos de igual valor total
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterExchangeRequest  true  "transaction_id original y new_items"
// @Success      201   {object}  dto.ExchangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/exchanges [post]
func (h *StockHandler) RegisterExchange(c *fiber.Ctx) error {
	var in dto.RegisterExchangeRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]stock.ExchangeItem, 0, len(in.NewItems))
	for _, it := range in.NewItems {
		items = append(items, stock.ExchangeItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	txs, err := h.uc.RegisterExchange(c.Context(), GetUserID(c), in.TransactionID, items)
	if err != nil {
		return mapError(c, err)
	}
	resp := dto.ExchangeResponse{Transactions: make([]dto.TransactionResponse, 0, len(txs))}
	for _, tx := range txs {
		resp.Transactions = append(resp.Transactions, toTransactionResponse(tx))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:               t.ID,
		ProductID:        t.ProductID,
		Type:             t.Type,
		SupplierOrBuyer:  t.SupplierOrBuyer,
		Quantity:         t.Quantity,
		TransactionPrice: t.TransactionPrice,
		TransactionDate:  t.TransactionDate,
		IsReturned:       t.IsReturned,
		UserID:           t.UserID,
	}
}

func toTransactionRow(row *repository.TransactionWithRefs) dto.TransactionRow {
	return dto.TransactionRow{
		TransactionResponse: toTransactionResponse(&row.Transaction),
		Product:             toProductSummary(&row.Product),
		User: dto.UserSummary{
			ID:    row.User.ID,
			Name:  row.User.Name,
			Email: row.User.Email,
		},
	}
}

func toProductSummary(p *entity.Product) dto.ProductSummary {
	return dto.ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		Brand: p.Brand,
		Price: p.Price,
		Size:  p.Size,
		Color: p.Color,
	}
}

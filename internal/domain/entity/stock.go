package entity

import "time"

// Direcciones de movimiento aplicables al stock.
const (
	OperationIn  = "in"  // entrada
	OperationOut = "out" // salida
)

// Stock representa la fila mutable de existencias de un producto (1–1 con
// Product). Quantity es un entero que nunca se persiste negativo;
// OperationType registra la dirección del último movimiento aplicado.
// La fila se crea en el primer movimiento del producto.
type Stock struct {
	ID            string
	ProductID     string
	Quantity      int
	OperationType string // in, out
	UpdatedAt     time.Time
}

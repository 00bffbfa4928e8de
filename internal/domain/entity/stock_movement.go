package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementKindEntry      = "entry"      // entrada
	MovementKindExit       = "exit"       // salida
	MovementKindAdjustment = "adjustment" // ajuste con delta firmado
)

// ValidMovementKind verifica que el tipo pertenezca al enum cerrado.
func ValidMovementKind(k string) bool {
	switch k {
	case MovementKindEntry, MovementKindExit, MovementKindAdjustment:
		return true
	}
	return false
}

// StockMovement representa un movimiento del libro de inventario.
// Es inmutable una vez escrito: el libro es la fuente de verdad y
// la suma de SignedQuantity por producto debe coincidir con StockRecord.Quantity.
type StockMovement struct {
	ID             string
	ProductID      string
	SignedQuantity int64 // positivo entrada, negativo salida/ajuste hacia abajo
	Kind           string
	ActorID        string // UserID que registró el movimiento
	Notes          string
	CreatedAt      time.Time
}

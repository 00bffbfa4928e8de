package dto

import "time"

// ApplyMovementRequest body para POST /api/inventory/movements.
// Quantity: magnitud positiva para entry/exit; delta firmado (no cero) para adjustment.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Kind      string `json:"kind"`
	Quantity  int64  `json:"quantity"`
	Notes     string `json:"notes,omitempty"`
}

// MovementResponse movimiento registrado más el stock resultante.
type MovementResponse struct {
	MovementID     string    `json:"movement_id"`
	ProductID      string    `json:"product_id"`
	Kind           string    `json:"kind"`
	SignedQuantity int64     `json:"signed_quantity"`
	Quantity       int64     `json:"quantity"` // stock resultante del producto
	CreatedAt      time.Time `json:"created_at"`
}

// StockItemResponse fila del tablero de inventario: registro + producto + nivel calculado.
type StockItemResponse struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	MinStock  int64  `json:"min_stock"`
	MaxStock  int64  `json:"max_stock"`
	Location  string `json:"location,omitempty"`
	Level     string `json:"level"` // critical, low, normal, high
}

// StockMovementResponse línea del libro de movimientos.
type StockMovementResponse struct {
	ID             string    `json:"id"`
	ProductID      string    `json:"product_id"`
	Kind           string    `json:"kind"`
	SignedQuantity int64     `json:"signed_quantity"`
	ActorID        string    `json:"actor_id"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

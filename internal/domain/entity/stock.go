package entity

import "time"

// StockRecord representa el stock actual de un producto (uno por producto activo,
// creado de forma perezosa con la primera entrada).
// Invariante: Quantity >= 0 siempre, y Quantity == Σ SignedQuantity de sus movimientos.
type StockRecord struct {
	ID        string
	ProductID string
	Quantity  int64
	MinStock  int64 // umbral de alerta; MinStock <= MaxStock esperado, no forzado
	MaxStock  int64
	Location  string
	UpdatedAt time.Time
}

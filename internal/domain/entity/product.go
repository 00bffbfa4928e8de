package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto (enum cerrado).
const (
	CategoryElectronics = "electronics"
	CategoryApparel     = "apparel"
	CategoryFood        = "food"
	CategoryServices    = "services"
	CategoryOther       = "other"
)

// ValidCategory verifica que la categoría pertenezca al enum cerrado.
func ValidCategory(c string) bool {
	switch c {
	case CategoryElectronics, CategoryApparel, CategoryFood, CategoryServices, CategoryOther:
		return true
	}
	return false
}

// Product representa un producto o SKU del catálogo.
// Nunca se elimina físicamente: IsActive=false es la única vía de baja,
// porque facturas y movimientos históricos lo referencian.
type Product struct {
	ID          string
	SKU         string // código único asignado por el negocio
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal // precio de venta unitario, >= 0
	Cost        decimal.Decimal // costo de adquisición unitario, >= 0
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de una factura. Inmutable tras la creación:
// UnitPrice es una foto del precio del producto al momento de facturar y no
// sigue cambios posteriores de Product.Price.
type InvoiceItem struct {
	ID        string
	InvoiceID string
	ProductID string
	Position  int64           // orden de la línea en la factura, base 1
	Quantity  int64           // > 0
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // Quantity * UnitPrice
}

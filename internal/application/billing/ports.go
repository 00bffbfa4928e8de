package billing

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
	"github.com/jhoicas/negocio-erp-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción: la cabecera de la
// factura y todas sus líneas se confirman o se revierten juntas.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InvoiceLineForPDF línea de factura enriquecida con datos del producto para el PDF.
type InvoiceLineForPDF struct {
	Quantity    int64
	ProductName string
	ProductSKU  string
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// InvoicePDFGenerator genera la representación imprimible de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		lines []InvoiceLineForPDF,
	) ([]byte, error)
}

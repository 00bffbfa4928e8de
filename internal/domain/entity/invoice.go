package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de factura.
const (
	InvoiceStatusPending   = "pending"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusCancelled = "cancelled"
	InvoiceStatusOverdue   = "overdue"
)

// ValidInvoiceStatus verifica que el estado pertenezca al enum cerrado.
func ValidInvoiceStatus(s string) bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusCancelled, InvoiceStatusOverdue:
		return true
	}
	return false
}

// CanTransition define la máquina de estados de la factura:
// pending -> paid | cancelled | overdue; paid y cancelled son terminales.
// overdue solo admite las mismas salidas que pending (pagar o cancelar).
func CanTransition(from, to string) bool {
	if from == to {
		return false
	}
	switch from {
	case InvoiceStatusPending:
		return to == InvoiceStatusPaid || to == InvoiceStatusCancelled || to == InvoiceStatusOverdue
	case InvoiceStatusOverdue:
		return to == InvoiceStatusPaid || to == InvoiceStatusCancelled
	}
	// paid y cancelled: sin salida
	return false
}

// Invoice representa la cabecera de una factura.
// Subtotal, Tax y Total se derivan de las líneas al crear y no cambian después;
// ninguna transición de estado los toca.
type Invoice struct {
	ID            string
	InvoiceNumber string // FAC-{yyyymm}-{sufijo de 4 dígitos}, único
	CustomerID    string
	ActorID       string // UserID que emitió la factura
	Status        string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	DueDate       *time.Time
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

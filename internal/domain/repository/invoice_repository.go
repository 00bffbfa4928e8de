package repository

import (
	"time"

	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
// Los totales (subtotal, tax, total) se escriben una sola vez en Create;
// UpdateStatus solo toca status y updated_at.
type InvoiceRepository interface {
	// Create persiste la cabecera; retorna domain.ErrDuplicate si el número ya existe.
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	GetByID(id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	// UpdateStatus escribe toStatus solo si el estado actual sigue siendo fromStatus
	// (compare-and-swap). Devuelve domain.ErrConflict si otro proceso cambió el
	// estado entre la lectura y la escritura, domain.ErrNotFound si no existe.
	UpdateStatus(id, fromStatus, toStatus string, updatedAt time.Time) error
	// ListPendingDueBefore devuelve facturas pending con due_date anterior a t
	// (reevaluación de vencimiento).
	ListPendingDueBefore(t time.Time) ([]*entity.Invoice, error)
}

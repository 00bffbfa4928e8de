package billing

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/negocio-erp-api/internal/application/dto"
	"github.com/jhoicas/negocio-erp-api/internal/domain"
	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
)

// TransitionStatus aplica la máquina de estados de la factura.
// pending -> paid | cancelled | overdue; overdue -> paid | cancelled;
// paid y cancelled son terminales. Cualquier otra petición falla con
// InvalidTransitionError indicando estado actual e intentado.
// Los totales no se tocan en ninguna transición. La escritura va condicionada
// al estado leído; si otro proceso transicionó en medio, domain.ErrConflict.
func (uc *InvoiceUseCase) TransitionStatus(ctx context.Context, invoiceID, newStatus string) (*dto.InvoiceResponse, error) {
	if !entity.ValidInvoiceStatus(newStatus) {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(inv.Status, newStatus) {
		return nil, &domain.InvalidTransitionError{From: inv.Status, To: newStatus}
	}
	now := time.Now()
	if err := uc.invoiceRepo.UpdateStatus(invoiceID, inv.Status, newStatus, now); err != nil {
		return nil, err
	}
	inv.Status = newStatus
	inv.UpdatedAt = now
	return uc.toResponse(inv, "", nil), nil
}

// MarkOverdue reevalúa facturas pending contra su fecha de vencimiento y las pasa a
// overdue (transición dirigida por el tiempo, no por el caller). Devuelve cuántas cambió.
func (uc *InvoiceUseCase) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	pending, err := uc.invoiceRepo.ListPendingDueBefore(now)
	if err != nil {
		return 0, err
	}
	changed := 0
	for _, inv := range pending {
		err := uc.invoiceRepo.UpdateStatus(inv.ID, entity.InvoiceStatusPending, entity.InvoiceStatusOverdue, now)
		if errors.Is(err, domain.ErrConflict) {
			// Alguien la pagó o canceló entre la lectura y el barrido; no es vencida.
			continue
		}
		if err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

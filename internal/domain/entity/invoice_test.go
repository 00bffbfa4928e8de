package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de factura:
//   pending -> paid | cancelled | overdue
//   overdue -> paid | cancelled
//   paid y cancelled son terminales
// ──────────────────────────────────────────────────────────────────────────────

func TestCanTransition_TablaCompleta(t *testing.T) {
	allowed := map[[2]string]bool{
		{entity.InvoiceStatusPending, entity.InvoiceStatusPaid}:      true,
		{entity.InvoiceStatusPending, entity.InvoiceStatusCancelled}: true,
		{entity.InvoiceStatusPending, entity.InvoiceStatusOverdue}:   true,
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusPaid}:      true,
		{entity.InvoiceStatusOverdue, entity.InvoiceStatusCancelled}: true,
	}

	statuses := []string{
		entity.InvoiceStatusPending,
		entity.InvoiceStatusPaid,
		entity.InvoiceStatusCancelled,
		entity.InvoiceStatusOverdue,
	}

	// Todo par no listado arriba (incluidos los self-loops) debe rechazarse.
	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[[2]string{from, to}]
			assert.Equal(t, want, entity.CanTransition(from, to),
				"transición %s -> %s", from, to)
		}
	}
}

func TestCanTransition_EstadosTerminales(t *testing.T) {
	for _, terminal := range []string{entity.InvoiceStatusPaid, entity.InvoiceStatusCancelled} {
		for _, to := range []string{
			entity.InvoiceStatusPending,
			entity.InvoiceStatusPaid,
			entity.InvoiceStatusCancelled,
			entity.InvoiceStatusOverdue,
		} {
			assert.False(t, entity.CanTransition(terminal, to),
				"%s es terminal, no debe salir hacia %s", terminal, to)
		}
	}
}

func TestValidInvoiceStatus(t *testing.T) {
	assert.True(t, entity.ValidInvoiceStatus(entity.InvoiceStatusPending))
	assert.True(t, entity.ValidInvoiceStatus(entity.InvoiceStatusOverdue))
	assert.False(t, entity.ValidInvoiceStatus("draft"))
	assert.False(t, entity.ValidInvoiceStatus(""))
}

func TestValidMovementKind(t *testing.T) {
	assert.True(t, entity.ValidMovementKind(entity.MovementKindEntry))
	assert.True(t, entity.ValidMovementKind(entity.MovementKindExit))
	assert.True(t, entity.ValidMovementKind(entity.MovementKindAdjustment))
	assert.False(t, entity.ValidMovementKind("transfer"))
}

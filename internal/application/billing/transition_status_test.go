package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/negocio-erp-api/internal/application/dto"
	"github.com/jhoicas/negocio-erp-api/internal/domain"
	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones de estado
// ──────────────────────────────────────────────────────────────────────────────

func createTestInvoice(t *testing.T, fx *billingFixture, dueDate *time.Time) *dto.InvoiceResponse {
	t.Helper()
	resp, err := fx.uc.CreateInvoice(context.Background(), billingActorID, dto.CreateInvoiceRequest{
		CustomerID: fx.customer.ID,
		DueDate:    dueDate,
		Items:      []dto.InvoiceItemRequest{{ProductID: fx.keyboard.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	return resp
}

func TestTransitionStatus_PendingAPaid(t *testing.T) {
	fx := newBillingFixture(t)
	inv := createTestInvoice(t, fx, nil)

	updated, err := fx.uc.TransitionStatus(context.Background(), inv.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, updated.Status)

	// Los totales no cambian con la transición.
	assert.True(t, updated.Subtotal.Equal(inv.Subtotal))
	assert.True(t, updated.Total.Equal(inv.Total))
}

func TestTransitionStatus_TerminalNoAdmiteSalida(t *testing.T) {
	fx := newBillingFixture(t)
	inv := createTestInvoice(t, fx, nil)

	_, err := fx.uc.TransitionStatus(context.Background(), inv.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)

	_, err = fx.uc.TransitionStatus(context.Background(), inv.ID, entity.InvoiceStatusCancelled)
	var invalid *domain.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, entity.InvoiceStatusPaid, invalid.From)
	assert.Equal(t, entity.InvoiceStatusCancelled, invalid.To)
}

func TestTransitionStatus_OverduePuedePagarse(t *testing.T) {
	fx := newBillingFixture(t)
	inv := createTestInvoice(t, fx, nil)

	_, err := fx.uc.TransitionStatus(context.Background(), inv.ID, entity.InvoiceStatusOverdue)
	require.NoError(t, err)

	updated, err := fx.uc.TransitionStatus(context.Background(), inv.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err, "una factura vencida aún puede cobrarse")
	assert.Equal(t, entity.InvoiceStatusPaid, updated.Status)
}

func TestTransitionStatus_EstadoDesconocido(t *testing.T) {
	fx := newBillingFixture(t)
	inv := createTestInvoice(t, fx, nil)

	_, err := fx.uc.TransitionStatus(context.Background(), inv.ID, "draft")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransitionStatus_FacturaInexistente(t *testing.T) {
	fx := newBillingFixture(t)

	_, err := fx.uc.TransitionStatus(context.Background(), "no-existe", entity.InvoiceStatusPaid)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos transiciones en carrera sobre la misma factura: la segunda escritura
// encuentra un estado distinto al que leyó y debe fallar con ErrConflict en
// lugar de pisar el estado terminal.
func TestTransitionStatus_CarreraPerdida_ErrConflict(t *testing.T) {
	fx := newBillingFixture(t)
	inv := createTestInvoice(t, fx, nil)

	// Otra transición cancela la factura entre la lectura y la escritura.
	fx.invoiceRepo.beforeUpdateStatus = func() {
		fx.invoiceRepo.beforeUpdateStatus = nil
		fx.invoiceRepo.invoices[inv.ID].Status = entity.InvoiceStatusCancelled
	}

	_, err := fx.uc.TransitionStatus(context.Background(), inv.ID, entity.InvoiceStatusPaid)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, entity.InvoiceStatusCancelled, fx.invoiceRepo.invoices[inv.ID].Status,
		"el estado terminal no se pisa")
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido de vencidas
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkOverdue_SoloPendientesVencidas(t *testing.T) {
	fx := newBillingFixture(t)
	now := time.Now()
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	expired := createTestInvoice(t, fx, &past)
	current := createTestInvoice(t, fx, &future)
	noDue := createTestInvoice(t, fx, nil)

	// Una vencida pero ya pagada no debe tocarse.
	paidExpired := createTestInvoice(t, fx, &past)
	_, err := fx.uc.TransitionStatus(context.Background(), paidExpired.ID, entity.InvoiceStatusPaid)
	require.NoError(t, err)

	changed, err := fx.uc.MarkOverdue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, changed, "solo la pendiente con due_date pasado cambia")

	got, err := fx.uc.GetInvoice(context.Background(), expired.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusOverdue, got.Status)

	for _, id := range []string{current.ID, noDue.ID} {
		got, err := fx.uc.GetInvoice(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, entity.InvoiceStatusPending, got.Status)
	}

	got, err = fx.uc.GetInvoice(context.Background(), paidExpired.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)
}

// El barrido es idempotente: una segunda pasada no encuentra nada.
func TestMarkOverdue_Idempotente(t *testing.T) {
	fx := newBillingFixture(t)
	past := time.Now().Add(-time.Hour)
	createTestInvoice(t, fx, &past)

	changed, err := fx.uc.MarkOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	changed, err = fx.uc.MarkOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, changed)
}

// Una factura pagada entre el listado y la escritura del barrido no se marca
// vencida ni se cuenta; el barrido sigue con las demás.
func TestMarkOverdue_PagadaDuranteElBarrido_NoSeToca(t *testing.T) {
	fx := newBillingFixture(t)
	past := time.Now().Add(-time.Hour)
	racer := createTestInvoice(t, fx, &past)
	other := createTestInvoice(t, fx, &past)

	fx.invoiceRepo.beforeUpdateStatus = func() {
		fx.invoiceRepo.beforeUpdateStatus = nil
		fx.invoiceRepo.invoices[racer.ID].Status = entity.InvoiceStatusPaid
	}

	changed, err := fx.uc.MarkOverdue(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, changed, "la pagada en carrera no cuenta")

	got, err := fx.uc.GetInvoice(context.Background(), racer.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, got.Status)

	got, err = fx.uc.GetInvoice(context.Background(), other.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusOverdue, got.Status)
}

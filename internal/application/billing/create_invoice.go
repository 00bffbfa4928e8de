package billing

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/negocio-erp-api/internal/application/dto"
	"github.com/jhoicas/negocio-erp-api/internal/domain"
	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
	"github.com/jhoicas/negocio-erp-api/internal/domain/repository"
)

// Config política de facturación.
// TaxRate es una fracción decimal (0.16 = IVA 16%); configurable por jurisdicción.
type Config struct {
	TaxRate decimal.Decimal
	Prefix  string // prefijo del número de factura, p.ej. "FAC"
}

// Intentos máximos ante colisión del número de factura generado.
const maxNumberAttempts = 3

// InvoiceUseCase crea facturas y gobierna su ciclo de estados.
// Los totales se derivan de las líneas una sola vez, al crear, con redondeo
// bancario a 2 decimales; ninguna operación posterior los modifica.
// Crear una factura NO descuenta inventario: es una decisión de producto
// explícita, no una integración pendiente.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
	cfg          Config
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
	cfg Config,
) *InvoiceUseCase {
	if cfg.Prefix == "" {
		cfg.Prefix = "FAC"
	}
	return &InvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
		cfg:          cfg,
	}
}

// CreateInvoice valida las líneas, toma la foto de precios del catálogo, calcula
// subtotal/impuesto/total y persiste cabecera y líneas en una transacción.
// El número generado se reintenta hasta maxNumberAttempts veces si colisiona.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, actorID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if in.CustomerID == "" || actorID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	// Validar líneas y tomar foto del precio actual de cada producto.
	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for i, line := range in.Items {
		if line.ProductID == "" || line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if !product.IsActive {
			return nil, domain.ErrInvalidInput
		}
		lineSubtotal := decimal.NewFromInt(line.Quantity).Mul(product.Price).RoundBank(2)
		items = append(items, &entity.InvoiceItem{
			ID:        uuid.New().String(),
			ProductID: line.ProductID,
			Position:  int64(i + 1),
			Quantity:  line.Quantity,
			UnitPrice: product.Price,
			Subtotal:  lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}

	// Redondeo bancario a 2 decimales al persistir, no solo al mostrar:
	// los totales deben ser reproducibles bit a bit.
	subtotal = subtotal.RoundBank(2)
	tax := subtotal.Mul(uc.cfg.TaxRate).RoundBank(2)
	total := subtotal.Add(tax).RoundBank(2)

	now := time.Now()
	inv := &entity.Invoice{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		ActorID:    actorID,
		Status:     entity.InvoiceStatusPending,
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
		DueDate:    in.DueDate,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, item := range items {
		item.InvoiceID = inv.ID
	}

	// El sufijo aleatorio puede colisionar con un número ya emitido; la constraint
	// única lo detecta y aquí se reintenta con un sufijo nuevo.
	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		inv.InvoiceNumber = uc.generateInvoiceNumber(now)
		lastErr = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository) error {
			if err := invoiceRepo.Create(inv); err != nil {
				return err
			}
			for _, item := range items {
				if err := invoiceRepo.CreateItem(item); err != nil {
					return err
				}
			}
			return nil
		})
		if lastErr == nil {
			return uc.toResponse(inv, customer.Name, items), nil
		}
		if !errors.Is(lastErr, domain.ErrDuplicate) {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("generar número de factura: %w", lastErr)
}

// generateInvoiceNumber produce FAC-{yyyymm}-{4 dígitos}.
func (uc *InvoiceUseCase) generateInvoiceNumber(now time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", uc.cfg.Prefix, now.Format("200601"), rand.IntN(10000))
}

// GetInvoice obtiene una factura por ID con su detalle completo.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	return uc.toResponse(inv, customerName, items), nil
}

// ListInvoices lista facturas con paginación.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, page dto.PageRequest) ([]dto.InvoiceResponse, error) {
	page.DefaultPage()
	invoices, err := uc.invoiceRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, *uc.toResponse(inv, "", nil))
	}
	return out, nil
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, customerName string, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		CustomerID:    inv.CustomerID,
		CustomerName:  customerName,
		Status:        inv.Status,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		DueDate:       inv.DueDate,
		Notes:         inv.Notes,
		CreatedAt:     inv.CreatedAt,
		Items:         make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return resp
}

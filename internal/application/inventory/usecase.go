package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/negocio-erp-api/internal/application/dto"
	"github.com/jhoicas/negocio-erp-api/internal/domain"
	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
	dominv "github.com/jhoicas/negocio-erp-api/internal/domain/inventory"
	"github.com/jhoicas/negocio-erp-api/internal/domain/repository"
)

// StockDefaults umbrales por defecto para registros de stock creados de forma perezosa.
type StockDefaults struct {
	MinStock int64
	MaxStock int64
}

// LedgerUseCase mantiene el libro de inventario: un registro de cantidad por producto
// y un log append-only de movimientos cuya suma siempre coincide con la cantidad.
// La secuencia leer-verificar-escribir corre dentro de una transacción con bloqueo de
// fila (SELECT FOR UPDATE), de modo que dos salidas concurrentes no pueden pasar la
// verificación de no-negatividad con la misma lectura.
type LedgerUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	movementRepo repository.StockMovementRepository
	defaults     StockDefaults
}

// NewLedgerUseCase construye el caso de uso. stockRepo y movementRepo van atados al
// pool (solo lecturas); las escrituras pasan por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	defaults StockDefaults,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		defaults:     defaults,
	}
}

// MovementInput entrada para registrar un movimiento.
// Quantity: magnitud positiva para entry/exit; delta firmado (no cero) para adjustment.
type MovementInput struct {
	ProductID string
	Kind      string
	Quantity  int64
	Notes     string
}

// ApplyMovement valida la entrada, actualiza (o crea) el registro de stock y escribe
// el movimiento, todo en una sola transacción. Devuelve el registro resultante y el
// movimiento creado.
//
// Reglas:
//   - exit sin registro de stock: domain.ErrNoStock.
//   - resultado negativo: domain.InsufficientStockError con solicitado y disponible.
//   - entry (o adjustment positivo) sin registro: crea el registro con umbrales por defecto.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, actorID string, in MovementInput) (*entity.StockRecord, *entity.StockMovement, error) {
	if in.ProductID == "" || actorID == "" {
		return nil, nil, domain.ErrInvalidInput
	}

	var signed int64
	switch in.Kind {
	case entity.MovementKindEntry:
		if in.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidInput
		}
		signed = in.Quantity
	case entity.MovementKindExit:
		if in.Quantity <= 0 {
			return nil, nil, domain.ErrInvalidInput
		}
		signed = -in.Quantity
	case entity.MovementKindAdjustment:
		if in.Quantity == 0 {
			return nil, nil, domain.ErrInvalidInput
		}
		signed = in.Quantity
	default:
		return nil, nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrNotFound
	}
	if !product.IsActive {
		// Productos dados de baja quedan fuera de las operaciones de stock.
		return nil, nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var record *entity.StockRecord
	var movement *entity.StockMovement

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// Bloquea la fila de stock; nil si aún no existe registro para el producto.
		rec, err := stockRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}

		created := false
		if rec == nil {
			if signed < 0 {
				// No se puede sacar de lo que no existe (exit o ajuste negativo).
				return domain.ErrNoStock
			}
			candidate := &entity.StockRecord{
				ID:        uuid.New().String(),
				ProductID: in.ProductID,
				Quantity:  signed,
				MinStock:  uc.defaults.MinStock,
				MaxStock:  uc.defaults.MaxStock,
				UpdatedAt: now,
			}
			switch err := stockRepo.Create(candidate); {
			case err == nil:
				rec = candidate
				created = true
			case errors.Is(err, domain.ErrDuplicate):
				// Otra transacción creó el registro primero. SELECT FOR UPDATE sobre
				// una fila inexistente no bloqueó nada, así que hay que releer: el
				// insert concurrente ya confirmó y ahora la relectura sí toma el lock.
				rec, err = stockRepo.GetForUpdate(in.ProductID)
				if err != nil {
					return err
				}
				if rec == nil {
					return fmt.Errorf("%w: registro de stock de %s desapareció tras conflicto de creación", domain.ErrConflict, in.ProductID)
				}
			default:
				return err
			}
		}
		if !created {
			newQuantity := rec.Quantity + signed
			if newQuantity < 0 {
				return &domain.InsufficientStockError{
					ProductID: in.ProductID,
					Requested: -signed,
					Available: rec.Quantity,
				}
			}
			rec.Quantity = newQuantity
			rec.UpdatedAt = now
			if err := stockRepo.UpdateQuantity(rec); err != nil {
				return err
			}
		}

		mov := &entity.StockMovement{
			ID:             uuid.New().String(),
			ProductID:      in.ProductID,
			SignedQuantity: signed,
			Kind:           in.Kind,
			ActorID:        actorID,
			Notes:          in.Notes,
			CreatedAt:      now,
		}
		if err := movementRepo.Create(mov); err != nil {
			return err
		}

		record = rec
		movement = mov
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return record, movement, nil
}

// ListStock devuelve el tablero de inventario: cada registro con su producto y el
// nivel calculado (critical/low/normal/high).
func (uc *LedgerUseCase) ListStock(ctx context.Context, page dto.PageRequest) ([]dto.StockItemResponse, error) {
	page.DefaultPage()
	records, products, err := uc.stockRepo.ListWithProduct(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemResponse, 0, len(records))
	for i, rec := range records {
		item := dto.StockItemResponse{
			ProductID: rec.ProductID,
			Quantity:  rec.Quantity,
			MinStock:  rec.MinStock,
			MaxStock:  rec.MaxStock,
			Location:  rec.Location,
			Level:     dominv.ComputeStockLevel(rec.Quantity, rec.MinStock, rec.MaxStock),
		}
		if i < len(products) && products[i] != nil {
			item.SKU = products[i].SKU
			item.Name = products[i].Name
		}
		items = append(items, item)
	}
	return items, nil
}

// ListMovements devuelve el libro de movimientos, opcionalmente filtrado por producto.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, productID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	page.DefaultPage()
	var movements []*entity.StockMovement
	var err error
	if productID != "" {
		movements, err = uc.movementRepo.ListByProduct(productID, page.Limit, page.Offset)
	} else {
		movements, err = uc.movementRepo.List(page.Limit, page.Offset)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:             m.ID,
			ProductID:      m.ProductID,
			Kind:           m.Kind,
			SignedQuantity: m.SignedQuantity,
			ActorID:        m.ActorID,
			Notes:          m.Notes,
			CreatedAt:      m.CreatedAt,
		})
	}
	return out, nil
}

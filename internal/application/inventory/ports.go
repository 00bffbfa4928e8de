package inventory

import (
	"context"

	"github.com/jhoicas/negocio-erp-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la actualización del registro de stock y el alta del
// movimiento se confirmen o se reviertan juntos (atomicidad del libro).
// La implementación debe reintentar conflictos de serialización un número acotado de
// veces y devolver domain.ErrConflict si se agotan.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

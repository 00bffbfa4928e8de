package repository

import "github.com/jhoicas/negocio-erp-api/internal/domain/entity"

// StockMovementRepository define el puerto del libro de movimientos (append-only).
// No hay Update ni Delete: los movimientos son hechos inmutables.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
	List(limit, offset int) ([]*entity.StockMovement, error)
	// SumByProduct devuelve Σ signed_quantity del producto (auditoría del invariante del libro).
	SumByProduct(productID string) (int64, error)
}

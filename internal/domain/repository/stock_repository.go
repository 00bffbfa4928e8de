package repository

import "github.com/jhoicas/negocio-erp-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar el registro de stock por producto.
// Usado dentro de transacciones para garantizar consistencia con el libro de movimientos.
type StockRepository interface {
	// Get devuelve el registro de stock del producto, o nil si aún no existe.
	Get(productID string) (*entity.StockRecord, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE); nil si no existe.
	GetForUpdate(productID string) (*entity.StockRecord, error)
	// Create inserta el registro inicial del producto. Devuelve domain.ErrDuplicate
	// si otra transacción ya creó el registro; el caller debe releer con GetForUpdate.
	Create(record *entity.StockRecord) error
	// UpdateQuantity escribe la nueva cantidad y updated_at del registro.
	UpdateQuantity(record *entity.StockRecord) error
	// ListWithProduct devuelve registros de stock junto con su producto, para el tablero.
	ListWithProduct(limit, offset int) ([]*entity.StockRecord, []*entity.Product, error)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/negocio-erp-api/internal/domain"
	"github.com/jhoicas/negocio-erp-api/internal/domain/entity"
	"github.com/jhoicas/negocio-erp-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, product_id, quantity, min_stock, max_stock, location, updated_at`

// Get obtiene el registro de stock del producto, o nil si aún no existe.
func (r *StockRepo) Get(productID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), "get stock")
}

// GetForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE); nil si no existe.
// El bloqueo serializa la secuencia leer-verificar-escribir por producto.
func (r *StockRepo) GetForUpdate(productID string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE product_id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, productID), "get stock for update")
}

// Create inserta el registro de stock (primera entrada del producto).
// Si otra transacción insertó primero el registro del mismo producto, ON CONFLICT
// espera a que esa transacción confirme y devuelve domain.ErrDuplicate sin escribir
// nada; el caller debe releer con GetForUpdate, que ya ve la fila confirmada.
func (r *StockRepo) Create(record *entity.StockRecord) error {
	query := `
		INSERT INTO stock_records (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id) DO NOTHING`
	tag, err := r.q.Exec(context.Background(), query,
		record.ID, record.ProductID, record.Quantity, record.MinStock, record.MaxStock,
		nullIfEmpty(record.Location), record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// UpdateQuantity escribe la nueva cantidad y updated_at del registro.
func (r *StockRepo) UpdateQuantity(record *entity.StockRecord) error {
	query := `UPDATE stock_records SET quantity = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, record.ID, record.Quantity, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	return nil
}

// ListWithProduct devuelve registros de stock con su producto, los más recientes primero.
func (r *StockRepo) ListWithProduct(limit, offset int) ([]*entity.StockRecord, []*entity.Product, error) {
	query := `
		SELECT s.id, s.product_id, s.quantity, s.min_stock, s.max_stock, s.location, s.updated_at,
		       p.id, p.sku, p.name, p.description, p.category, p.price, p.cost, p.is_active, p.created_at, p.updated_at
		FROM stock_records s
		JOIN products p ON p.id = s.product_id
		ORDER BY s.updated_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var records []*entity.StockRecord
	var products []*entity.Product
	for rows.Next() {
		var s entity.StockRecord
		var p entity.Product
		var location *string
		if err := rows.Scan(
			&s.ID, &s.ProductID, &s.Quantity, &s.MinStock, &s.MaxStock, &location, &s.UpdatedAt,
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.Price, &p.Cost, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, nil, fmt.Errorf("scan stock row: %w", err)
		}
		if location != nil {
			s.Location = *location
		}
		records = append(records, &s)
		products = append(products, &p)
	}
	return records, products, rows.Err()
}

func (r *StockRepo) scanOne(row pgx.Row, op string) (*entity.StockRecord, error) {
	var s entity.StockRecord
	var location *string
	err := row.Scan(&s.ID, &s.ProductID, &s.Quantity, &s.MinStock, &s.MaxStock, &location, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if location != nil {
		s.Location = *location
	}
	return &s, nil
}

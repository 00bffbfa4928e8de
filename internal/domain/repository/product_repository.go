package repository

import "github.com/jhoicas/negocio-erp-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	Update(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// List lista productos; si onlyActive es true excluye los dados de baja.
	List(onlyActive bool, limit, offset int) ([]*entity.Product, error)
	// Deactivate marca el producto como inactivo (baja lógica, nunca DELETE).
	Deactivate(id string) error
}

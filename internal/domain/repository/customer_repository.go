package repository

import "github.com/jhoicas/negocio-erp-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia de clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	Update(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	// Delete elimina el cliente; retorna domain.ErrInUse si hay facturas que lo referencian.
	Delete(id string) error
}

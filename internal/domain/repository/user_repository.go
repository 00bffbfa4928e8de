package repository

import "github.com/jhoicas/negocio-erp-api/internal/domain/entity"

// UserRepository define el puerto de persistencia de usuarios (auth).
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}

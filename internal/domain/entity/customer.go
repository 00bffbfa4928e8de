package entity

import "time"

// Customer representa un cliente del negocio (facturación).
type Customer struct {
	ID        string
	Name      string
	TaxID     string // RFC u otro identificador fiscal
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

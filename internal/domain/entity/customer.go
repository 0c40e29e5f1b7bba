package entity

import "time"

// Customer representa un cliente registrado en la tienda.
type Customer struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	GroupID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre completo para listados.
func (c Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa un pedido de la tienda tal como lo reporta la plataforma.
type Order struct {
	ID            int64
	IncrementID   string // número visible del pedido (ej. 000000123)
	Status        string // pending, processing, complete, canceled...
	CustomerEmail string
	CustomerName  string
	GrandTotal    decimal.Decimal
	Currency      string
	ItemCount     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto según la plataforma (atributo status).
const (
	ProductStatusEnabled  = "1"
	ProductStatusDisabled = "2"
)

// Product representa un producto del catálogo remoto.
type Product struct {
	ID           int64
	SKU          string
	Name         string
	Description  string
	ExternalCode string // código del sistema externo (ERP) sincronizado como atributo
	Price        decimal.Decimal
	Status       string // ProductStatusEnabled / ProductStatusDisabled
	TypeID       string // simple, configurable...
	Quantity     decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductMedia entrada de la galería de imágenes de un producto.
// Es un sub-recurso: se borra antes de borrar el producto.
type ProductMedia struct {
	ID        int64
	MediaType string // image
	Label     string
	Position  int
	File      string // ruta relativa en el servidor de medios
}

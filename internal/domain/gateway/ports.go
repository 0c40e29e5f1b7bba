package gateway

import (
	"context"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
)

// Puertos de acceso remoto por tipo de recurso (DIP). Los adaptadores REST
// los implementan; las pantallas y casos de uso dependen solo de estas
// interfaces. Toda llamada exige sesión activa y clasifica fallos según la
// taxonomía de internal/domain.

// OrderGateway operaciones sobre pedidos. La plataforma no expone creación
// ni borrado de pedidos: entran por el checkout de la tienda y nunca se
// destruyen; los cambios de estado pasan por el guardado completo (Update).
type OrderGateway interface {
	List(ctx context.Context, q ListQuery) (PagedResult[entity.Order], error)
	Get(ctx context.Context, id int64) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) (*entity.Order, error)
}

// ProductGateway operaciones sobre productos y su sub-recurso de medios.
type ProductGateway interface {
	List(ctx context.Context, q ListQuery) (PagedResult[entity.Product], error)
	Get(ctx context.Context, sku string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (*entity.Product, error)
	Delete(ctx context.Context, sku string) error
	ListMedia(ctx context.Context, sku string) ([]entity.ProductMedia, error)
	DeleteMedia(ctx context.Context, sku string, entryID int64) error
}

// CustomerGateway operaciones sobre clientes.
type CustomerGateway interface {
	List(ctx context.Context, q ListQuery) (PagedResult[entity.Customer], error)
	Get(ctx context.Context, id int64) (*entity.Customer, error)
	Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) (*entity.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// CategoryGateway operaciones sobre el árbol de categorías.
type CategoryGateway interface {
	// Tree devuelve el árbol completo de categorías (raíz incluida).
	Tree(ctx context.Context) (*entity.Category, error)
	List(ctx context.Context, q ListQuery) (PagedResult[entity.Category], error)
	Get(ctx context.Context, id int64) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) (*entity.Category, error)
	Delete(ctx context.Context, id int64) error
}

package rest

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/gateway"
)

var _ gateway.OrderGateway = (*OrderGateway)(nil)

// Campos del grupo like de búsqueda libre de pedidos.
var orderSearchable = []string{"increment_id", "customer_email", "customer_firstname", "customer_lastname"}

// OrderGateway adaptador REST para pedidos.
type OrderGateway struct {
	c *Client
}

// NewOrderGateway construye el adaptador.
func NewOrderGateway(c *Client) *OrderGateway {
	return &OrderGateway{c: c}
}

// orderWire forma en el cable del pedido.
type orderWire struct {
	EntityID          int64           `json:"entity_id"`
	IncrementID       string          `json:"increment_id"`
	Status            string          `json:"status"`
	CustomerEmail     string          `json:"customer_email"`
	CustomerFirstname string          `json:"customer_firstname"`
	CustomerLastname  string          `json:"customer_lastname"`
	GrandTotal        decimal.Decimal `json:"grand_total"`
	OrderCurrencyCode string          `json:"order_currency_code"`
	TotalItemCount    int             `json:"total_item_count"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

// List lista pedidos según la intención. Orden por defecto: creación descendente.
func (g *OrderGateway) List(ctx context.Context, q gateway.ListQuery) (gateway.PagedResult[entity.Order], error) {
	params := compileListQuery(q, orderSearchable, gateway.SortOrder{Field: "created_at", Direction: gateway.SortDesc})
	var env listEnvelope[orderWire]
	if err := g.c.get(ctx, "/orders", params, &env); err != nil {
		return gateway.PagedResult[entity.Order]{}, fmt.Errorf("listar pedidos: %w", err)
	}
	items := make([]entity.Order, 0, len(env.Items))
	for _, w := range env.Items {
		items = append(items, *toOrder(&w))
	}
	return gateway.NewPagedResult(items, env.TotalCount, q.Page, q.PageSize), nil
}

// Get obtiene un pedido por ID interno. Devuelve nil sin error si no existe.
func (g *OrderGateway) Get(ctx context.Context, id int64) (*entity.Order, error) {
	var w orderWire
	if err := g.c.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &w); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener pedido %d: %w", id, err)
	}
	return toOrder(&w), nil
}

// Update guarda el pedido (la plataforma usa POST sobre la colección para
// actualizar la entidad completa).
func (g *OrderGateway) Update(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	body := map[string]any{"entity": fromOrder(order)}
	var w orderWire
	if err := g.c.post(ctx, "/orders", body, &w); err != nil {
		return nil, fmt.Errorf("actualizar pedido %d: %w", order.ID, err)
	}
	return toOrder(&w), nil
}

func toOrder(w *orderWire) *entity.Order {
	name := w.CustomerFirstname
	if w.CustomerLastname != "" {
		if name != "" {
			name += " "
		}
		name += w.CustomerLastname
	}
	return &entity.Order{
		ID:            w.EntityID,
		IncrementID:   w.IncrementID,
		Status:        w.Status,
		CustomerEmail: w.CustomerEmail,
		CustomerName:  name,
		GrandTotal:    w.GrandTotal,
		Currency:      w.OrderCurrencyCode,
		ItemCount:     w.TotalItemCount,
		CreatedAt:     parseTime(w.CreatedAt),
		UpdatedAt:     parseTime(w.UpdatedAt),
	}
}

func fromOrder(o *entity.Order) orderWire {
	return orderWire{
		EntityID:      o.ID,
		IncrementID:   o.IncrementID,
		Status:        o.Status,
		CustomerEmail: o.CustomerEmail,
		GrandTotal:    o.GrandTotal,
	}
}

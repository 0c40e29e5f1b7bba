package rest

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/gateway"
)

var _ gateway.CustomerGateway = (*CustomerGateway)(nil)

// Campos del grupo like de búsqueda libre de clientes.
var customerSearchable = []string{"firstname", "lastname", "email"}

// CustomerGateway adaptador REST para clientes.
type CustomerGateway struct {
	c *Client
}

// NewCustomerGateway construye el adaptador.
func NewCustomerGateway(c *Client) *CustomerGateway {
	return &CustomerGateway{c: c}
}

// customerWire forma en el cable del cliente.
type customerWire struct {
	ID        int64  `json:"id,omitempty"`
	Email     string `json:"email"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	GroupID   int64  `json:"group_id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// List lista clientes. El recurso expone la búsqueda en /customers/search.
func (g *CustomerGateway) List(ctx context.Context, q gateway.ListQuery) (gateway.PagedResult[entity.Customer], error) {
	params := compileListQuery(q, customerSearchable, gateway.SortOrder{Field: "created_at", Direction: gateway.SortDesc})
	var env listEnvelope[customerWire]
	if err := g.c.get(ctx, "/customers/search", params, &env); err != nil {
		return gateway.PagedResult[entity.Customer]{}, fmt.Errorf("listar clientes: %w", err)
	}
	items := make([]entity.Customer, 0, len(env.Items))
	for _, w := range env.Items {
		items = append(items, *toCustomer(&w))
	}
	return gateway.NewPagedResult(items, env.TotalCount, q.Page, q.PageSize), nil
}

// Get obtiene un cliente por ID. Devuelve nil sin error si no existe.
func (g *CustomerGateway) Get(ctx context.Context, id int64) (*entity.Customer, error) {
	var w customerWire
	if err := g.c.get(ctx, fmt.Sprintf("/customers/%d", id), nil, &w); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener cliente %d: %w", id, err)
	}
	return toCustomer(&w), nil
}

// Create registra un cliente.
func (g *CustomerGateway) Create(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	var w customerWire
	if err := g.c.post(ctx, "/customers", map[string]any{"customer": fromCustomer(customer)}, &w); err != nil {
		return nil, fmt.Errorf("crear cliente %s: %w", customer.Email, err)
	}
	return toCustomer(&w), nil
}

// Update actualiza un cliente existente.
func (g *CustomerGateway) Update(ctx context.Context, customer *entity.Customer) (*entity.Customer, error) {
	var w customerWire
	path := fmt.Sprintf("/customers/%d", customer.ID)
	if err := g.c.put(ctx, path, map[string]any{"customer": fromCustomer(customer)}, &w); err != nil {
		return nil, fmt.Errorf("actualizar cliente %d: %w", customer.ID, err)
	}
	return toCustomer(&w), nil
}

// Delete elimina un cliente por ID.
func (g *CustomerGateway) Delete(ctx context.Context, id int64) error {
	if err := g.c.delete(ctx, fmt.Sprintf("/customers/%d", id)); err != nil {
		return fmt.Errorf("eliminar cliente %d: %w", id, err)
	}
	return nil
}

func toCustomer(w *customerWire) *entity.Customer {
	return &entity.Customer{
		ID:        w.ID,
		Email:     w.Email,
		FirstName: w.Firstname,
		LastName:  w.Lastname,
		GroupID:   w.GroupID,
		CreatedAt: parseTime(w.CreatedAt),
		UpdatedAt: parseTime(w.UpdatedAt),
	}
}

func fromCustomer(c *entity.Customer) customerWire {
	return customerWire{
		ID:        c.ID,
		Email:     c.Email,
		Firstname: c.FirstName,
		Lastname:  c.LastName,
		GroupID:   c.GroupID,
	}
}

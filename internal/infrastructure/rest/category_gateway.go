package rest

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/gateway"
)

var _ gateway.CategoryGateway = (*CategoryGateway)(nil)

// CategoryGateway adaptador REST para el árbol de categorías.
type CategoryGateway struct {
	c *Client
}

// NewCategoryGateway construye el adaptador.
func NewCategoryGateway(c *Client) *CategoryGateway {
	return &CategoryGateway{c: c}
}

// categoryTreeWire nodo recursivo tal como lo devuelve /categories.
type categoryTreeWire struct {
	ID           int64              `json:"id"`
	ParentID     int64              `json:"parent_id"`
	Name         string             `json:"name"`
	IsActive     bool               `json:"is_active"`
	Position     int                `json:"position"`
	Level        int                `json:"level"`
	ProductCount int                `json:"product_count"`
	ChildrenData []categoryTreeWire `json:"children_data"`
}

// Tree descarga el árbol completo de categorías de una sola vez.
func (g *CategoryGateway) Tree(ctx context.Context) (*entity.Category, error) {
	var w categoryTreeWire
	if err := g.c.get(ctx, "/categories", nil, &w); err != nil {
		return nil, fmt.Errorf("obtener árbol de categorías: %w", err)
	}
	return toCategory(&w), nil
}

// List lista categorías en plano. Recurso jerárquico: orden por defecto
// position ascendente, no por fecha de creación.
func (g *CategoryGateway) List(ctx context.Context, q gateway.ListQuery) (gateway.PagedResult[entity.Category], error) {
	params := compileListQuery(q, []string{"name"}, gateway.SortOrder{Field: "position", Direction: gateway.SortAsc})
	var env listEnvelope[categoryTreeWire]
	if err := g.c.get(ctx, "/categories/list", params, &env); err != nil {
		return gateway.PagedResult[entity.Category]{}, fmt.Errorf("listar categorías: %w", err)
	}
	items := make([]entity.Category, 0, len(env.Items))
	for _, w := range env.Items {
		items = append(items, *toCategory(&w))
	}
	return gateway.NewPagedResult(items, env.TotalCount, q.Page, q.PageSize), nil
}

// Get obtiene una categoría por ID. Devuelve nil sin error si no existe.
func (g *CategoryGateway) Get(ctx context.Context, id int64) (*entity.Category, error) {
	var w categoryTreeWire
	if err := g.c.get(ctx, fmt.Sprintf("/categories/%d", id), nil, &w); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener categoría %d: %w", id, err)
	}
	return toCategory(&w), nil
}

// Create crea una categoría bajo el padre indicado en ParentID.
func (g *CategoryGateway) Create(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var w categoryTreeWire
	if err := g.c.post(ctx, "/categories", map[string]any{"category": fromCategory(category)}, &w); err != nil {
		return nil, fmt.Errorf("crear categoría %s: %w", category.Name, err)
	}
	return toCategory(&w), nil
}

// Update actualiza una categoría existente (nombre, activación, posición,
// reubicación bajo otro padre). No toca el subárbol.
func (g *CategoryGateway) Update(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var w categoryTreeWire
	path := fmt.Sprintf("/categories/%d", category.ID)
	if err := g.c.put(ctx, path, map[string]any{"category": fromCategory(category)}, &w); err != nil {
		return nil, fmt.Errorf("actualizar categoría %d: %w", category.ID, err)
	}
	return toCategory(&w), nil
}

// Delete elimina una categoría por ID.
func (g *CategoryGateway) Delete(ctx context.Context, id int64) error {
	if err := g.c.delete(ctx, fmt.Sprintf("/categories/%d", id)); err != nil {
		return fmt.Errorf("eliminar categoría %d: %w", id, err)
	}
	return nil
}

// categorySaveWire forma de escritura de la categoría: solo los campos
// editables del nodo, nunca el subárbol.
type categorySaveWire struct {
	ID       int64  `json:"id,omitempty"`
	ParentID int64  `json:"parent_id,omitempty"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	Position int    `json:"position,omitempty"`
}

func fromCategory(c *entity.Category) categorySaveWire {
	return categorySaveWire{
		ID:       c.ID,
		ParentID: c.ParentID,
		Name:     c.Name,
		IsActive: c.Active,
		Position: c.Position,
	}
}

// toCategory convierte el nodo del cable y todo su subárbol.
func toCategory(w *categoryTreeWire) *entity.Category {
	node := &entity.Category{
		ID:           w.ID,
		ParentID:     w.ParentID,
		Name:         w.Name,
		Active:       w.IsActive,
		Position:     w.Position,
		Level:        w.Level,
		ProductCount: w.ProductCount,
	}
	for i := range w.ChildrenData {
		node.Children = append(node.Children, toCategory(&w.ChildrenData[i]))
	}
	return node
}

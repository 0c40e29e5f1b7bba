package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/gateway"
)

var _ gateway.ProductGateway = (*ProductGateway)(nil)

// Campos del grupo like de búsqueda libre de productos: nombre, SKU,
// descripción y código externo del ERP.
var productSearchable = []string{"name", "sku", "description", "external_code"}

// ProductGateway adaptador REST para productos y su galería de medios.
type ProductGateway struct {
	c *Client
}

// NewProductGateway construye el adaptador.
func NewProductGateway(c *Client) *ProductGateway {
	return &ProductGateway{c: c}
}

// productWire forma en el cable del producto. Descripción y código externo
// viajan como atributos dinámicos; el stock llega en extension_attributes.
type productWire struct {
	ID                  int64             `json:"id,omitempty"`
	SKU                 string            `json:"sku"`
	Name                string            `json:"name"`
	Price               decimal.Decimal   `json:"price"`
	Status              int               `json:"status"`
	TypeID              string            `json:"type_id,omitempty"`
	CreatedAt           string            `json:"created_at,omitempty"`
	UpdatedAt           string            `json:"updated_at,omitempty"`
	CustomAttributes    []customAttribute `json:"custom_attributes,omitempty"`
	ExtensionAttributes *struct {
		StockItem *struct {
			Qty decimal.Decimal `json:"qty"`
		} `json:"stock_item"`
	} `json:"extension_attributes,omitempty"`
}

// mediaWire entrada de galería en el cable.
type mediaWire struct {
	ID        int64  `json:"id"`
	MediaType string `json:"media_type"`
	Label     string `json:"label"`
	Position  int    `json:"position"`
	File      string `json:"file"`
}

// List lista productos según la intención. Orden por defecto: creación descendente.
func (g *ProductGateway) List(ctx context.Context, q gateway.ListQuery) (gateway.PagedResult[entity.Product], error) {
	params := compileListQuery(q, productSearchable, gateway.SortOrder{Field: "created_at", Direction: gateway.SortDesc})
	var env listEnvelope[productWire]
	if err := g.c.get(ctx, "/products", params, &env); err != nil {
		return gateway.PagedResult[entity.Product]{}, fmt.Errorf("listar productos: %w", err)
	}
	items := make([]entity.Product, 0, len(env.Items))
	for _, w := range env.Items {
		items = append(items, *toProduct(&w))
	}
	return gateway.NewPagedResult(items, env.TotalCount, q.Page, q.PageSize), nil
}

// Get obtiene un producto por SKU. Devuelve nil sin error si no existe.
func (g *ProductGateway) Get(ctx context.Context, sku string) (*entity.Product, error) {
	var w productWire
	if err := g.c.get(ctx, "/products/"+url.PathEscape(sku), nil, &w); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener producto %s: %w", sku, err)
	}
	return toProduct(&w), nil
}

// Create crea un producto.
func (g *ProductGateway) Create(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var w productWire
	if err := g.c.post(ctx, "/products", map[string]any{"product": fromProduct(product)}, &w); err != nil {
		return nil, fmt.Errorf("crear producto %s: %w", product.SKU, err)
	}
	return toProduct(&w), nil
}

// Update actualiza un producto existente por SKU.
func (g *ProductGateway) Update(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var w productWire
	path := "/products/" + url.PathEscape(product.SKU)
	if err := g.c.put(ctx, path, map[string]any{"product": fromProduct(product)}, &w); err != nil {
		return nil, fmt.Errorf("actualizar producto %s: %w", product.SKU, err)
	}
	return toProduct(&w), nil
}

// Delete elimina un producto por SKU.
func (g *ProductGateway) Delete(ctx context.Context, sku string) error {
	if err := g.c.delete(ctx, "/products/"+url.PathEscape(sku)); err != nil {
		return fmt.Errorf("eliminar producto %s: %w", sku, err)
	}
	return nil
}

// ListMedia lista las entradas de galería del producto.
func (g *ProductGateway) ListMedia(ctx context.Context, sku string) ([]entity.ProductMedia, error) {
	var wires []mediaWire
	if err := g.c.get(ctx, "/products/"+url.PathEscape(sku)+"/media", nil, &wires); err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("listar medios de %s: %w", sku, err)
	}
	media := make([]entity.ProductMedia, 0, len(wires))
	for _, w := range wires {
		media = append(media, entity.ProductMedia{
			ID:        w.ID,
			MediaType: w.MediaType,
			Label:     w.Label,
			Position:  w.Position,
			File:      w.File,
		})
	}
	return media, nil
}

// DeleteMedia elimina una entrada de galería del producto.
func (g *ProductGateway) DeleteMedia(ctx context.Context, sku string, entryID int64) error {
	path := fmt.Sprintf("/products/%s/media/%d", url.PathEscape(sku), entryID)
	if err := g.c.delete(ctx, path); err != nil {
		return fmt.Errorf("eliminar medio %d de %s: %w", entryID, sku, err)
	}
	return nil
}

func toProduct(w *productWire) *entity.Product {
	p := &entity.Product{
		ID:           w.ID,
		SKU:          w.SKU,
		Name:         w.Name,
		Description:  attrString(w.CustomAttributes, "description"),
		ExternalCode: attrString(w.CustomAttributes, "external_code"),
		Price:        w.Price,
		Status:       strconv.Itoa(w.Status),
		TypeID:       w.TypeID,
		CreatedAt:    parseTime(w.CreatedAt),
		UpdatedAt:    parseTime(w.UpdatedAt),
	}
	if w.ExtensionAttributes != nil && w.ExtensionAttributes.StockItem != nil {
		p.Quantity = w.ExtensionAttributes.StockItem.Qty
	}
	return p
}

func fromProduct(p *entity.Product) productWire {
	status, err := strconv.Atoi(p.Status)
	if err != nil || status == 0 {
		status, _ = strconv.Atoi(entity.ProductStatusEnabled)
	}
	var attrs []customAttribute
	if p.Description != "" {
		attrs = append(attrs, strAttr("description", p.Description))
	}
	if p.ExternalCode != "" {
		attrs = append(attrs, strAttr("external_code", p.ExternalCode))
	}
	return productWire{
		SKU:              p.SKU,
		Name:             p.Name,
		Price:            p.Price,
		Status:           status,
		TypeID:           p.TypeID,
		CustomAttributes: attrs,
	}
}

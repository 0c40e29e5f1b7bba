package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tienda-backoffice/internal/application/bulkop"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/gateway"
)

// ProductBulkDeleteUseCase borrado masivo de productos: por cada SKU se
// eliminan primero sus entradas de galería (sub-pasos) y después el producto
// (paso principal). Un medio que no se pudo borrar queda registrado pero no
// impide intentar borrar el producto ni los SKUs siguientes.
type ProductBulkDeleteUseCase struct {
	products    gateway.ProductGateway
	coordinator *bulkop.Coordinator
}

// NewProductBulkDeleteUseCase construye el caso de uso.
func NewProductBulkDeleteUseCase(products gateway.ProductGateway, coordinator *bulkop.Coordinator) *ProductBulkDeleteUseCase {
	return &ProductBulkDeleteUseCase{products: products, coordinator: coordinator}
}

// Execute borra los SKUs indicados y devuelve el plan con el detalle por
// ítem y por paso. El plan nunca lanza los fallos de paso como error.
func (uc *ProductBulkDeleteUseCase) Execute(ctx context.Context, skus []string) (*bulkop.Plan, error) {
	return uc.coordinator.Execute(ctx, skus, func(sku string) bulkop.ItemPlan {
		return uc.planFor(ctx, sku)
	})
}

// planFor arma el plan de un SKU: un sub-paso por entrada de galería y el
// borrado del producto como principal. Si listar la galería falla, ese fallo
// se registra como sub-paso y el principal se intenta igual.
func (uc *ProductBulkDeleteUseCase) planFor(ctx context.Context, sku string) bulkop.ItemPlan {
	var subSteps []bulkop.Step

	media, err := uc.products.ListMedia(ctx, sku)
	if err != nil {
		subSteps = append(subSteps, bulkop.Step{
			Name: "listar-medios",
			Run:  func(context.Context) error { return err },
		})
	}
	for _, m := range media {
		entryID := m.ID
		subSteps = append(subSteps, bulkop.Step{
			Name: fmt.Sprintf("eliminar-medio-%d", entryID),
			Run: func(stepCtx context.Context) error {
				return uc.products.DeleteMedia(stepCtx, sku, entryID)
			},
		})
	}

	return bulkop.ItemPlan{
		SubSteps: subSteps,
		Primary: bulkop.Step{
			Name: "eliminar-producto",
			Run: func(stepCtx context.Context) error {
				return uc.products.Delete(stepCtx, sku)
			},
		},
	}
}

package gateway

// PagedResult una página de resultados más metadatos derivados del total.
// TotalPages se calcula siempre en el cliente a partir de TotalCount y el
// pageSize pedido; nunca se confía en un conteo de páginas remoto.
type PagedResult[T any] struct {
	Items       []T
	TotalCount  int
	CurrentPage int
	TotalPages  int
}

// NewPagedResult arma el resultado calculando TotalPages = ceil(total/pageSize).
// Invariante: TotalPages >= 1 incluso con cero resultados.
func NewPagedResult[T any](items []T, totalCount, currentPage, pageSize int) PagedResult[T] {
	if pageSize < 1 {
		pageSize = 1
	}
	if currentPage < 1 {
		currentPage = 1
	}
	if totalCount < 0 {
		totalCount = 0
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	return PagedResult[T]{
		Items:       items,
		TotalCount:  totalCount,
		CurrentPage: currentPage,
		TotalPages:  totalPages,
	}
}

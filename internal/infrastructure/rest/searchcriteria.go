package rest

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/gateway"
)

// Compilación de ListQuery al dialecto searchCriteria de la plataforma:
//
//	searchCriteria[currentPage]=1
//	searchCriteria[pageSize]=20
//	searchCriteria[sortOrders][0][field]=created_at
//	searchCriteria[sortOrders][0][direction]=DESC
//	searchCriteria[filterGroups][0][filters][0][field]=status        (eq)
//	searchCriteria[filterGroups][1][filters][n][field]=name          (like)
//
// Los grupos se combinan con AND entre sí y con OR por dentro: por eso el
// filtro de estado y la búsqueda libre ocupan SIEMPRE índices de grupo
// distintos, y los like por campo comparten grupo.

// condición soportada por la plataforma en los filtros.
const (
	condEq   = "eq"
	condLike = "like"
)

// compileListQuery traduce la intención genérica a query params. Función pura
// y determinista: no muta q ni tiene efectos; la misma intención produce
// exactamente los mismos parámetros. page/pageSize menores que 1 son una
// violación de contrato del llamador y se fijan en 1 por convención.
//
// searchable define los campos del grupo like de búsqueda libre; defaultSort
// se aplica cuando la intención no trae ordenamiento (pedidos: created_at
// DESC; recursos jerárquicos: position ASC).
func compileListQuery(q gateway.ListQuery, searchable []string, defaultSort gateway.SortOrder) url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 1
	}

	v := url.Values{}
	v.Set("searchCriteria[currentPage]", strconv.Itoa(page))
	v.Set("searchCriteria[pageSize]", strconv.Itoa(pageSize))

	sorts := q.Sort
	if len(sorts) == 0 {
		sorts = []gateway.SortOrder{defaultSort}
	}
	for i, s := range sorts {
		v.Set(fmt.Sprintf("searchCriteria[sortOrders][%d][field]", i), s.Field)
		v.Set(fmt.Sprintf("searchCriteria[sortOrders][%d][direction]", i), s.Direction)
	}

	group := 0
	if q.Status != "" {
		setFilter(v, group, 0, "status", q.Status, condEq)
		group++
	}
	if q.Search != "" && len(searchable) > 0 {
		// Comodines a ambos lados: coincidencia por substring en cada campo.
		like := "%" + q.Search + "%"
		for i, field := range searchable {
			setFilter(v, group, i, field, like, condLike)
		}
	}

	return v
}

func setFilter(v url.Values, group, idx int, field, value, cond string) {
	prefix := fmt.Sprintf("searchCriteria[filterGroups][%d][filters][%d]", group, idx)
	v.Set(prefix+"[field]", field)
	v.Set(prefix+"[value]", value)
	v.Set(prefix+"[conditionType]", cond)
}

package gateway

// Direcciones de ordenamiento aceptadas por la plataforma.
const (
	SortAsc  = "ASC"
	SortDesc = "DESC"
)

// SortOrder un criterio de ordenamiento {campo, dirección}.
type SortOrder struct {
	Field     string
	Direction string
}

// ListQuery intención genérica de listado: página, tamaño, filtro de estado
// y búsqueda libre. El compilador de searchCriteria la traduce al dialecto
// de la plataforma; las pantallas nunca arman query params a mano.
type ListQuery struct {
	Page     int    // >= 1; valores menores se fijan en 1 (violación de contrato del llamador)
	PageSize int    // >= 1; ídem
	Status   string // filtro de igualdad opcional (grupo propio, AND con el resto)
	Search   string // texto libre opcional: like sobre los campos buscables (OR dentro del grupo)
	Sort     []SortOrder
}

package category

import "github.com/jhoicas/Tienda-backoffice/internal/domain/entity"

// Expansion conjunto de IDs de nodos expandidos para revelado progresivo.
// Es estado de presentación: decide qué hijos se muestran, nunca afecta al
// predicado de Filter. Se alterna de forma independiente del filtrado.
type Expansion map[int64]struct{}

// NewExpansion crea un conjunto vacío (todo colapsado).
func NewExpansion() Expansion {
	return make(Expansion)
}

// Toggle alterna el estado de expansión del nodo y devuelve el estado final.
func (e Expansion) Toggle(id int64) bool {
	if _, ok := e[id]; ok {
		delete(e, id)
		return false
	}
	e[id] = struct{}{}
	return true
}

// Expanded indica si el nodo está expandido.
func (e Expansion) Expanded(id int64) bool {
	_, ok := e[id]
	return ok
}

// ExpandPath expande todos los ancestros de los nodos presentes en el árbol
// filtrado, de modo que cada coincidencia quede visible.
func (e Expansion) ExpandPath(root *entity.Category) {
	if root == nil {
		return
	}
	root.Walk(func(n *entity.Category) {
		if len(n.Children) > 0 {
			e[n.ID] = struct{}{}
		}
	})
}

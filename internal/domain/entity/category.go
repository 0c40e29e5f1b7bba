package entity

// Category nodo del árbol de categorías de la tienda. Recursivo: Children
// mantiene el orden de Position que reporta la plataforma. El árbol pertenece
// a la pantalla que lo cargó; no se comparte entre pantallas.
type Category struct {
	ID           int64
	ParentID     int64
	Name         string
	Active       bool
	Position     int
	Level        int
	ProductCount int
	Children     []*Category
}

// Walk recorre el subárbol en preorden aplicando fn a cada nodo.
func (c *Category) Walk(fn func(*Category)) {
	if c == nil {
		return
	}
	fn(c)
	for _, child := range c.Children {
		child.Walk(fn)
	}
}

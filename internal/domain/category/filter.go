// Package category implementa la búsqueda jerárquica sobre el árbol de
// categorías ya cargado en memoria. Es lógica pura: nunca toca la red ni
// pide páginas o hijos no cargados.
package category

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
)

// Filter proyecta el árbol dejando solo los nodos que satisfacen el predicado:
// un nodo se conserva si su nombre contiene query (sin distinguir mayúsculas
// ni tildes) o si algún descendiente, a cualquier profundidad, lo satisface.
// La cadena de ancestros de cada coincidencia se preserva siempre.
//
// Devuelve un árbol nuevo (los nodos retenidos se copian, el original no se
// muta). Query vacío devuelve una copia del árbol completo. Sin coincidencias
// devuelve nil, nunca error.
func Filter(root *entity.Category, query string) *entity.Category {
	if root == nil {
		return nil
	}
	needle := fold(query)
	return project(root, needle)
}

// project copia el nodo si él o algún descendiente coincide.
func project(node *entity.Category, needle string) *entity.Category {
	var children []*entity.Category
	for _, child := range node.Children {
		if kept := project(child, needle); kept != nil {
			children = append(children, kept)
		}
	}
	if needle != "" && len(children) == 0 && !matches(node.Name, needle) {
		return nil
	}
	clone := *node
	clone.Children = children
	return &clone
}

// matches predicado de coincidencia: substring sobre texto plegado.
func matches(name, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(fold(name), needle)
}

// foldTransformer pliega tildes: NFD, quitar marcas diacríticas, NFC.
// Así "categoria" encuentra "Categoría".
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// fold normaliza a minúsculas sin diacríticos para comparar.
func fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

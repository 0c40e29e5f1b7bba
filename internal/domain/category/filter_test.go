package category_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-backoffice/internal/domain/category"
	"github.com/jhoicas/Tienda-backoffice/internal/domain/entity"
)

// árbol de prueba:
//
//	Raíz
//	├── Ropa
//	│   ├── Camisas
//	│   └── Pantalones
//	└── Categoría Especial
//	    └── Ofertas
func sampleTree() *entity.Category {
	return &entity.Category{ID: 1, Name: "Raíz", Children: []*entity.Category{
		{ID: 2, ParentID: 1, Name: "Ropa", Children: []*entity.Category{
			{ID: 3, ParentID: 2, Name: "Camisas"},
			{ID: 4, ParentID: 2, Name: "Pantalones"},
		}},
		{ID: 5, ParentID: 1, Name: "Categoría Especial", Children: []*entity.Category{
			{ID: 6, ParentID: 5, Name: "Ofertas"},
		}},
	}}
}

// Una coincidencia en un nieto conserva toda la cadena de ancestros y poda
// las ramas hermanas que no coinciden.
func TestFilter_ConservaLaCadenaDeAncestros(t *testing.T) {
	got := category.Filter(sampleTree(), "camisas")

	require.NotNil(t, got)
	assert.Equal(t, "Raíz", got.Name)
	require.Len(t, got.Children, 1, "la rama sin coincidencias se poda")
	assert.Equal(t, "Ropa", got.Children[0].Name)
	require.Len(t, got.Children[0].Children, 1)
	assert.Equal(t, "Camisas", got.Children[0].Children[0].Name)
}

// Un nodo intermedio que coincide conserva su subárbol completo.
func TestFilter_NodoIntermedioConservaSusHijos(t *testing.T) {
	got := category.Filter(sampleTree(), "ropa")

	require.NotNil(t, got)
	require.Len(t, got.Children, 1)
	ropa := got.Children[0]
	assert.Equal(t, "Ropa", ropa.Name)
	assert.Len(t, ropa.Children, 2, "los hijos de un nodo coincidente se conservan")
}

func TestFilter_SinCoincidenciasDevuelveNilSinError(t *testing.T) {
	assert.Nil(t, category.Filter(sampleTree(), "zapatos"),
		"sin coincidencias el resultado es vacío, nunca un error")
}

// "categoria" debe encontrar "Categoría": ni mayúsculas ni tildes cuentan.
func TestFilter_IgnoraMayusculasYTildes(t *testing.T) {
	got := category.Filter(sampleTree(), "categoria")
	require.NotNil(t, got)
	require.Len(t, got.Children, 1)
	assert.Equal(t, "Categoría Especial", got.Children[0].Name)

	got = category.Filter(sampleTree(), "CAMISAS")
	require.NotNil(t, got)
}

func TestFilter_QueryVacioDevuelveCopiaCompleta(t *testing.T) {
	original := sampleTree()
	got := category.Filter(original, "")

	require.NotNil(t, got)
	assert.Len(t, got.Children, 2)
	assert.NotSame(t, original, got, "siempre se devuelve un árbol nuevo")
}

func TestFilter_NoMutaElArbolOriginal(t *testing.T) {
	original := sampleTree()
	_ = category.Filter(original, "camisas")

	assert.Len(t, original.Children, 2, "el árbol original conserva todas sus ramas")
	assert.Len(t, original.Children[0].Children, 2)
}

func TestFilter_RaizNilDevuelveNil(t *testing.T) {
	assert.Nil(t, category.Filter(nil, "lo que sea"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Expansión
// ──────────────────────────────────────────────────────────────────────────────

func TestExpansion_ToggleEsIndependienteDelFiltro(t *testing.T) {
	e := category.NewExpansion()

	assert.True(t, e.Toggle(2))
	assert.True(t, e.Expanded(2))
	assert.False(t, e.Toggle(2), "alternar dos veces vuelve al estado colapsado")
	assert.False(t, e.Expanded(2))
}

// Tras filtrar, expandir las rutas deja visible cada coincidencia.
func TestExpansion_ExpandPathRevelaLasCoincidencias(t *testing.T) {
	filtered := category.Filter(sampleTree(), "camisas")
	require.NotNil(t, filtered)

	e := category.NewExpansion()
	e.ExpandPath(filtered)

	assert.True(t, e.Expanded(1), "la raíz del camino queda expandida")
	assert.True(t, e.Expanded(2), "el ancestro intermedio queda expandido")
	assert.False(t, e.Expanded(3), "la hoja coincidente no necesita expandirse")
}

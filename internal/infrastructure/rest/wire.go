package rest

import (
	"encoding/json"
	"time"
)

// Formato de fecha que usa la plataforma en todos los recursos.
const platformTimeLayout = "2006-01-02 15:04:05"

// listEnvelope sobre de respuesta de los listados: items + conteo total.
// El total de páginas NO viene aquí; lo calcula el cliente con el pageSize
// pedido (gateway.NewPagedResult).
type listEnvelope[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"total_count"`
}

// parseTime interpreta una fecha de la plataforma; cero si está malformada.
func parseTime(s string) time.Time {
	t, err := time.Parse(platformTimeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// customAttribute atributo dinámico {código, valor} de productos.
type customAttribute struct {
	AttributeCode string          `json:"attribute_code"`
	Value         json.RawMessage `json:"value"`
}

// attrString devuelve el valor string del atributo, o vacío si no está o no
// es una cadena.
func attrString(attrs []customAttribute, code string) string {
	for _, a := range attrs {
		if a.AttributeCode != code {
			continue
		}
		var s string
		if err := json.Unmarshal(a.Value, &s); err == nil {
			return s
		}
		return ""
	}
	return ""
}

// strAttr construye un atributo dinámico de tipo cadena.
func strAttr(code, value string) customAttribute {
	raw, _ := json.Marshal(value)
	return customAttribute{AttributeCode: code, Value: raw}
}

package inventory

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Columnas canónicas de la planilla de catálogo.
const (
	colSKU      = "sku"
	colName     = "name"
	colCategory = "category"
	colNotes    = "notes"
	colKind     = "kind"
	colAisle    = "aisle"
	colRack     = "rack"
	colQuantity = "quantity"
)

// Encabezados aceptados (ya normalizados) → columna canónica. Incluye los nombres en español
// de las planillas históricas.
var columnAliases = map[string]string{
	"sku":         colSKU,
	"name":        colName,
	"nombre":      colName,
	"category":    colCategory,
	"categoria":   colCategory,
	"notes":       colNotes,
	"comments":    colNotes,
	"comentarios": colNotes,
	"kind":        colKind,
	"type":        colKind,
	"tipo":        colKind,
	"aisle":       colAisle,
	"pasillo":     colAisle,
	"rack":        colRack,
	"quantity":    colQuantity,
	"qty":         colQuantity,
	"cantidad":    colQuantity,
}

// locationColumns alguna de estas presente implica agregar una ubicación por fila.
var locationColumns = []string{colKind, colAisle, colRack, colQuantity}

// normalizeColumn pliega mayúsculas y quita tildes: "Categoría " → "categoria".
func normalizeColumn(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		s = strings.TrimSpace(name)
	}
	return cases.Fold().String(s)
}

// canonicalRow traduce los encabezados de una fila a columnas canónicas; ignora las desconocidas.
// Si dos alias llegan a la misma columna gana el que tiene valor; entre dos con valor, el primero
// en orden alfabético de encabezado.
func canonicalRow(raw map[string]any) map[string]any {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(raw))
	for _, k := range keys {
		canon, ok := columnAliases[normalizeColumn(k)]
		if !ok {
			continue
		}
		prev, seen := out[canon]
		if !seen {
			out[canon] = raw[k]
			continue
		}
		if _, prevPresent := cellString(prev); !prevPresent {
			if _, present := cellString(raw[k]); present {
				out[canon] = raw[k]
			}
		}
	}
	return out
}

// cellString convierte un valor crudo en texto. nil, NaN y cadenas vacías cuentan como ausentes.
func cellString(v any) (string, bool) {
	var s string
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s = x
	case float64:
		if math.IsNaN(x) {
			return "", false
		}
		s = strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		if math.IsNaN(float64(x)) {
			return "", false
		}
		s = strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		s = strconv.Itoa(x)
	case int64:
		s = strconv.FormatInt(x, 10)
	case json.Number:
		s = x.String()
	case bool:
		s = strconv.FormatBool(x)
	default:
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// parseQuantity interpreta la cantidad de una celda ("5", 5.0, "5.0"). Los decimales se truncan
// hacia cero (7.9 → 7). ok=false si el texto no es numérico o queda fuera de rango: el llamador
// usa 0 en ese caso.
func parseQuantity(v any) (int, bool) {
	s, present := cellString(v)
	if !present {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	d = d.Truncate(0)
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

// Package pdf genera la hoja de recolección (pick list) de una comanda con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Comanda + solicitante  │  franja + estado + QR     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | SKU | Producto | Ubicación | Stock           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de unidades + firma de quien entrega         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bodega-api/internal/application/dto"
	"github.com/jhoicas/bodega-api/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var kindLabels = map[string]string{
	"warehouse": "Bodega",
	"backroom":  "Trastienda",
	"floor":     "Piso",
}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ usecase.PickListRenderer = (*MarotoPickListGenerator)(nil)

// MarotoPickListGenerator implementa usecase.PickListRenderer usando Maroto v2.
type MarotoPickListGenerator struct{}

// NewMarotoPickListGenerator construye el generador.
func NewMarotoPickListGenerator() *MarotoPickListGenerator { return &MarotoPickListGenerator{} }

// RenderPickList genera el PDF y devuelve sus bytes.
func (g *MarotoPickListGenerator) RenderPickList(_ context.Context, list *dto.PickList) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de recolección", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(list))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(list.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(list))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(list *dto.PickList) core.Row {
	return row.New(26).Add(
		col.New(7).Add(
			text.New("HOJA DE RECOLECCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comanda: "+list.OrderID, props.Text{Size: 8, Top: 9, Color: colorGray}),
			text.New("Solicita: "+list.RequestedBy, props.Text{Size: 9, Top: 14}),
			text.New("Creada: "+list.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 19, Color: colorGray}),
		),
		col.New(3).Add(
			text.New("Para las "+list.RequestedFor, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 3,
			}),
			text.New("Estado: "+list.Status, props.Text{Size: 8, Align: align.Right, Top: 11, Color: colorGray}),
		),
		col.New(2).Add(code.NewQr(list.OrderID, props.Rect{Center: true, Percent: 90})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Tomar de", 4, align.Left),
		h("Stock", 1, align.Right),
	)
}

// tableRows una fila por línea de la comanda.
func tableRows(lines []dto.PickLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(nonEmpty(l.SKU, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(l.Name, "—"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(locationLabel(l), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.Stock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func footerRow(list *dto.PickList) core.Row {
	units := 0
	for _, l := range list.Lines {
		units += l.Quantity
	}
	return row.New(20).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Total unidades: %d", units), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 3,
		})),
		col.New(6).Add(text.New("Entregó: ______________________", props.Text{
			Size: 9, Align: align.Right, Top: 12,
		})),
	)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func locationLabel(l dto.PickLine) string {
	if l.Kind == "" {
		return "Sin stock"
	}
	label := nonEmpty(kindLabels[l.Kind], l.Kind)
	if l.Aisle != "" {
		label += " · pasillo " + l.Aisle
	}
	if l.Rack != "" {
		label += " · rack " + l.Rack
	}
	return label
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

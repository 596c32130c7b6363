// Package pdf genera el informe imprimible de una tarea de producción (hoja PRO).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tarea + Responsable  │  Fecha + ID                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Minutos / Ubicación / Pallets / Nota              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Pallet | Bandejas | Pienso | Kg                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Pienso consumido / Frass / Larva                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/application/production"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 46, Green: 94, Blue: 46}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoTaskReportGenerator implementa production.TaskReportGenerator usando Maroto v2.
type MarotoTaskReportGenerator struct {
	farmName string
}

// NewMarotoTaskReportGenerator construye el generador. farmName aparece como autor del documento.
func NewMarotoTaskReportGenerator(farmName string) *MarotoTaskReportGenerator {
	return &MarotoTaskReportGenerator{farmName: farmName}
}

// GenerateTaskReport genera el PDF y devuelve sus bytes.
func (g *MarotoTaskReportGenerator) GenerateTaskReport(_ context.Context, report production.TaskReport) ([]byte, error) {
	if report.Task == nil {
		return nil, fmt.Errorf("pdf: informe sin tarea")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Registro de producción "+report.Task.Day.Format("2006-01-02"), true).
		WithAuthor(nonEmpty(g.farmName, "tenebrio-farm"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(detailRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(report.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report production.TaskReport) core.Row {
	t := report.Task
	return row.New(18).Add(
		col.New(7).Add(
			text.New(t.TaskName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Responsable: "+nonEmpty(t.Responsible, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REGISTRO DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(t.Day.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("ID: "+shortID(t.ID), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func detailRow(report production.TaskReport) core.Row {
	t := report.Task
	return row.New(16).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Minutos: %d   |   Ubicación: %s", t.Minutes, nonEmpty(t.Location, "—")),
				props.Text{Size: 8, Top: 1, Color: colorGray}),
			text.New("Pallets: "+nonEmpty(strings.Join(report.Pallets, ", "), "—"),
				props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New("Nota: "+nonEmpty(t.Note, "—"),
				props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Pallet", 3, align.Left),
		h("Bandejas", 2, align.Center),
		h("Pienso", 4, align.Left),
		h("Kg", 3, align.Right),
	)
}

func tableLineRows(lines []production.TaskReportLine) []core.Row {
	if len(lines) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin consumo de pienso registrado.", props.Text{Size: 8, Top: 1, Color: colorGray}),
		))}
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(l.PalletCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.TrayCount), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(l.ItemName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(kg(l.QtyKg), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(report production.TaskReport) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	frass, larvae := "—", "—"
	if report.Output != nil {
		if report.Output.FrassKg != nil {
			frass = kg(*report.Output.FrassKg)
		}
		if report.Output.LarvaeTotalKg != nil {
			larvae = kg(*report.Output.LarvaeTotalKg)
		}
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Pienso consumido:"),
			label("Frass:"),
			label("Larva total:"),
		),
		col.New(3).Add(
			value(kg(TotalFeed(report.Lines))),
			value(frass),
			value(larvae),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// TotalFeed suma el consumo de todas las líneas.
func TotalFeed(lines []production.TaskReportLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.QtyKg)
	}
	return total
}

func kg(d decimal.Decimal) string { return d.StringFixed(3) + " kg" }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

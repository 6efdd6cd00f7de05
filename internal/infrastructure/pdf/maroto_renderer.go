// Package pdf genera la representación impresa de cotizaciones y ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre comercial    │  Tipo + Código + Fecha        │
//	│  CLIENTE: Nombre / Email / Tel                               │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  TOTALES: Total / Pagado / Saldo                             │
//	│  NOTAS + estado del documento                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/jhoicas/Comercial-api/internal/application/ports"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoRenderer implementa ports.DocumentRenderer usando Maroto v2.
type MarotoRenderer struct {
	issuer  string
	printer *message.Printer
}

// NewMarotoRenderer construye el renderer. issuer aparece en el encabezado.
func NewMarotoRenderer(issuer string) *MarotoRenderer {
	return &MarotoRenderer{
		issuer:  issuer,
		printer: message.NewPrinter(language.Spanish),
	}
}

// RenderMovement genera el PDF y devuelve sus bytes.
func (r *MarotoRenderer) RenderMovement(doc ports.MovementDocument) ([]byte, error) {
	if doc.Movement == nil {
		return nil, fmt.Errorf("pdf: movimiento nil")
	}
	mv := doc.Movement

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(documentTitle(mv.MovementType)+" "+mv.StockMovementCode, true).
		WithAuthor(r.issuer, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(r.headerRow(mv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(doc.Contact))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(r.lineRows(mv.Lines, doc.Products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(r.totalsRow(mv))
	m.AddRows(line.NewRow(3))
	m.AddRows(footerRows(mv, doc.Operation)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

func (r *MarotoRenderer) headerRow(mv *entity.Movement) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(r.issuer, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(documentTitle(mv.MovementType), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(mv.StockMovementCode, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+mv.MovementDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func contactRow(c *entity.Contact) core.Row {
	if c == nil {
		return row.New(8).Add(col.New(12).Add(
			text.New("Sin cliente asociado", props.Text{Size: 8, Top: 2, Color: colorGray}),
		))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(c.Email, "-"),
				nonEmpty(c.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
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
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (r *MarotoRenderer) lineRows(lines []*entity.MovementLine, products map[string]*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		name := l.ProductID
		if p, ok := products[l.ProductID]; ok && p != nil {
			name = p.Name
		}
		rows = append(rows, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(r.money(l.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(r.money(l.Subtotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return rows
}

func (r *MarotoRenderer) totalsRow(mv *entity.Movement) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}

	labels := col.New(3).Add(label("Total:", 0))
	values := col.New(3).Add(value(r.money(mv.TotalAmount), 0))
	if mv.MovementType == entity.MovementTypeSale {
		labels.Add(label("Pagado:", 6), label("Saldo:", 12))
		values.Add(value(r.money(mv.PaidAmount), 6), value(r.money(mv.BalanceAmount), 12))
	}
	return row.New(20).Add(col.New(6), labels, values)
}

func footerRows(mv *entity.Movement, op *entity.Operation) []core.Row {
	var rows []core.Row
	if mv.Notes != "" {
		rows = append(rows, row.New(12).Add(col.New(12).Add(
			text.New("Notas: "+mv.Notes, props.Text{Size: 8, Top: 2, Color: colorGray}),
		)))
	}
	status := "Estado: " + string(mv.Status)
	if op != nil {
		status += "   |   Operación: " + op.OperationCode
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(status, props.Text{Size: 7, Top: 2, Color: colorGray}),
	)))
	return rows
}

func documentTitle(t entity.MovementType) string {
	switch t {
	case entity.MovementTypeQuotation:
		return "COTIZACIÓN"
	case entity.MovementTypeSale:
		return "ORDEN DE VENTA"
	case entity.MovementTypeIn:
		return "ENTRADA DE INVENTARIO"
	default:
		return "SALIDA DE INVENTARIO"
	}
}

// money formatea con separadores de miles del locale y dos decimales.
func (r *MarotoRenderer) money(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return "$" + r.printer.Sprint(number.Decimal(f, number.Scale(2)))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

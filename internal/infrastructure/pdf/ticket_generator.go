// Package pdf genera el ticket de venta con Maroto v2.
//
// Layout (ancho según tipo de ticket: 58mm, 80mm o A4):
//
//	┌──────────────────────────────┐
//	│  Nombre fantasía / razón     │
//	│  CUIT, dirección, teléfono   │
//	│  ──────────────────────────  │
//	│  Venta N°  +  fecha          │
//	│  ──────────────────────────  │
//	│  Cant │ Producto │ Subtotal  │
//	│  ──────────────────────────  │
//	│  TOTAL                       │
//	│  Pagos                       │
//	│  ──────────────────────────  │
//	│  QR id de venta + pie        │
//	└──────────────────────────────┘
package pdf

import (
	"encoding/base64"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-backoffice/internal/application/dto"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// Tipos de ticket soportados (configuracion_impresion.tipo_ticket).
const (
	Ticket58mm = "58mm"
	Ticket80mm = "80mm"
	TicketA4   = "a4"
)

// TicketGenerator implementa sales.TicketRenderer usando Maroto v2.
type TicketGenerator struct{}

// NewTicketGenerator construye el generador.
func NewTicketGenerator() *TicketGenerator { return &TicketGenerator{} }

// layout medidas que dependen del ancho del papel.
type layout struct {
	width  float64 // mm; 0 = A4
	margin float64
	font   float64
}

func layoutFor(ticketType string) layout {
	switch strings.ToLower(ticketType) {
	case Ticket58mm:
		return layout{width: 58, margin: 2, font: 6.5}
	case TicketA4:
		return layout{margin: 10, font: 9}
	default:
		return layout{width: 80, margin: 3, font: 7.5}
	}
}

// RenderSaleTicket genera el PDF del ticket y devuelve sus bytes.
func (g *TicketGenerator) RenderSaleTicket(sale *dto.SaleResponse, currency string) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta nil")
	}
	ticketType := ""
	if sale.PrintConfig != nil {
		ticketType = sale.PrintConfig.TicketType
	}
	lay := layoutFor(ticketType)

	b := config.NewBuilder().
		WithLeftMargin(lay.margin).WithRightMargin(lay.margin).
		WithTopMargin(lay.margin).WithBottomMargin(lay.margin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: lay.font}).
		WithTitle("Ticket "+sale.Code, true)
	if lay.width > 0 {
		// Alto fijo; el rollo se corta donde termina el contenido.
		b = b.WithDimensions(lay.width, 297)
	} else {
		b = b.WithPageSize(pagesize.A4)
	}
	m := maroto.New(b.Build())

	m.AddRows(headerRows(sale, lay)...)
	m.AddRows(line.NewRow(1, props.Line{Thickness: 0.2}))
	m.AddRows(saleInfoRow(sale, lay))
	m.AddRows(line.NewRow(1, props.Line{Thickness: 0.2}))
	m.AddRows(itemsHeaderRow(lay))
	m.AddRows(itemRows(sale.LineItems, currency, lay)...)
	m.AddRows(line.NewRow(1, props.Line{Thickness: 0.2}))
	m.AddRows(totalRow(sale.Total, currency, lay))
	m.AddRows(paymentRows(sale.Payments, currency, lay)...)
	m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(footerRows(sale, lay)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRows(sale *dto.SaleResponse, lay layout) []core.Row {
	p := sale.BranchProfile
	if p == nil {
		return []core.Row{row.New(lay.font).Add(col.New(12).Add(
			text.New("TICKET DE VENTA", props.Text{Style: fontstyle.Bold, Size: lay.font + 2, Align: align.Center}),
		))}
	}
	var rows []core.Row
	showTaxID := true
	if c := sale.PrintConfig; c != nil {
		showTaxID = c.ShowTaxID
		if c.ShowLogo {
			if logo, ext, ok := decodeLogo(p.LogoBase64); ok {
				rows = append(rows, row.New(18).Add(
					col.New(12).Add(image.NewFromBytes(logo, ext, props.Rect{Center: true, Percent: 90})),
				))
			}
		}
	}
	rows = append(rows, row.New(lay.font+1).Add(col.New(12).Add(
		text.New(nonEmpty(p.TradeName, p.LegalName), props.Text{Style: fontstyle.Bold, Size: lay.font + 2, Align: align.Center}),
	)))
	info := []string{}
	if p.LegalName != "" && p.LegalName != p.TradeName {
		info = append(info, p.LegalName)
	}
	if showTaxID && p.TaxID != "" {
		info = append(info, "CUIT: "+p.TaxID)
	}
	if p.TaxCondition != "" {
		info = append(info, p.TaxCondition)
	}
	if p.Address != "" {
		info = append(info, strings.TrimSpace(p.Address+" "+p.City))
	}
	if p.Phone != "" {
		info = append(info, "Tel: "+p.Phone)
	}
	for _, s := range info {
		rows = append(rows, row.New(lay.font*0.6).Add(col.New(12).Add(
			text.New(s, props.Text{Size: lay.font - 1, Align: align.Center, Color: colorGray}),
		)))
	}
	return rows
}

func saleInfoRow(sale *dto.SaleResponse, lay layout) core.Row {
	estado := ""
	if sale.Status == "anulada" {
		estado = "  (ANULADA)"
	}
	return row.New(lay.font*1.4).Add(
		col.New(7).Add(text.New("Venta N° "+sale.Code+estado, props.Text{Style: fontstyle.Bold, Size: lay.font})),
		col.New(5).Add(text.New(sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: lay.font - 0.5, Align: align.Right})),
	)
}

func itemsHeaderRow(lay layout) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: lay.font, Align: a}))
	}
	return row.New(lay.font*0.8).Add(
		h("Cant", 2, align.Left),
		h("Producto", 6, align.Left),
		h("Subtotal", 4, align.Right),
	)
}

func itemRows(items []dto.SaleLineItemResponse, currency string, lay layout) []core.Row {
	out := make([]core.Row, 0, len(items)*2)
	for _, it := range items {
		name := it.ProductName
		if name == "" {
			name = it.ProductID
		}
		out = append(out, row.New(lay.font*0.7).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: lay.font})),
			col.New(6).Add(text.New(name, props.Text{Size: lay.font})),
			col.New(4).Add(text.New(money(currency, it.Subtotal), props.Text{Size: lay.font, Align: align.Right})),
		))
		if it.Quantity > 1 {
			out = append(out, row.New(lay.font*0.6).Add(
				col.New(2),
				col.New(10).Add(text.New(fmt.Sprintf("%d x %s", it.Quantity, money(currency, it.UnitPrice)),
					props.Text{Size: lay.font - 1, Color: colorGray})),
			))
		}
	}
	return out
}

func totalRow(total decimal.Decimal, currency string, lay layout) core.Row {
	return row.New(lay.font*1.4).Add(
		col.New(6).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: lay.font + 2, Top: 1})),
		col.New(6).Add(text.New(money(currency, total), props.Text{Style: fontstyle.Bold, Size: lay.font + 2, Align: align.Right, Top: 1})),
	)
}

func paymentRows(payments []dto.SalePaymentResponse, currency string, lay layout) []core.Row {
	out := make([]core.Row, 0, len(payments))
	for _, p := range payments {
		out = append(out, row.New(lay.font*0.7).Add(
			col.New(6).Add(text.New(capitalize(p.PaymentKind), props.Text{Size: lay.font - 0.5, Color: colorGray})),
			col.New(6).Add(text.New(money(currency, p.Amount), props.Text{Size: lay.font - 0.5, Align: align.Right, Color: colorGray})),
		))
	}
	return out
}

func footerRows(sale *dto.SaleResponse, lay layout) []core.Row {
	footer := "¡Gracias por su compra!"
	if sale.PrintConfig != nil && sale.PrintConfig.FooterMessage != "" {
		footer = sale.PrintConfig.FooterMessage
	}
	return []core.Row{
		row.New(22).Add(col.New(12).Add(code.NewQr(sale.ID, props.Rect{Percent: 90, Center: true}))),
		row.New(lay.font).Add(col.New(12).Add(
			text.New(footer, props.Text{Size: lay.font, Align: align.Center, Top: 1}),
		)),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// money formatea con separador de miles "." y decimales ",". Ej: 1234567.5 → "$ 1.234.567,50".
func money(currency string, d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	out := formatThousands(intPart) + "," + frac
	if d.IsNegative() {
		out = "-" + out
	}
	if currency == "" {
		return out
	}
	return currency + " " + out
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// decodeLogo acepta base64 puro o data URI (data:image/png;base64,...).
func decodeLogo(raw string) ([]byte, extension.Type, bool) {
	if raw == "" {
		return nil, "", false
	}
	ext := extension.Png
	if head, body, ok := strings.Cut(raw, ","); ok && strings.HasPrefix(head, "data:") {
		if strings.Contains(head, "jpeg") || strings.Contains(head, "jpg") {
			ext = extension.Jpg
		}
		raw = body
	}
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(b) == 0 {
		return nil, "", false
	}
	return b, ext, true
}

package billing

import (
	"fmt"
	"os"

	"facturacion-service/internal/model"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"
)

// Company letterhead printed on every invoice.
const (
	companyName    = "INMOBILIARIA SOLUCIONES"
	companyTaxID   = "CIF: B-12345678"
	companyAddress = "Calle Gran Vía, 123 • 28001 Madrid"
	companyContact = "Tel: 910 000 000 • Email: info@inmobiliariasoluciones.es"
)

var footerLines = [3]string{
	"• Esta factura se emite conforme al contrato de alquiler.",
	"• El pago se considerará efectivo al recibir justificante bancario.",
	"• Documento válido sin firma física.",
}

var grey = &props.Color{Red: 110, Green: 110, Blue: 110}

var spanishMonths = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// InvoiceNumber builds the deterministic document number, e.g. invoice
// 7 dated in 2024 becomes "FAC-2024-0007".
func InvoiceNumber(invoice *model.Invoice) string {
	return fmt.Sprintf("FAC-%d-%04d", invoice.Date.Year(), invoice.ID)
}

// ConceptLine is the single line-item label: the rental month spelled
// out in Spanish, capitalized.
func ConceptLine(invoice *model.Invoice) string {
	return fmt.Sprintf("Alquiler mensual - %s %d",
		spanishMonths[invoice.Date.Month()-1], invoice.Date.Year())
}

// DocumentRenderer lays out the single-page A4 invoice PDF. It
// performs no I/O beyond reading the optional watermark asset.
type DocumentRenderer struct {
	resolver *TaxResolver
	logoPath string
	log      *zap.Logger
}

func NewDocumentRenderer(resolver *TaxResolver, logoPath string, log *zap.Logger) *DocumentRenderer {
	return &DocumentRenderer{resolver: resolver, logoPath: logoPath, log: log}
}

// Render produces the finished PDF for an invoice loaded with its
// contract, client and property. A missing or unreadable watermark
// asset is logged and skipped, never fatal.
func (r *DocumentRenderer) Render(invoice *model.Invoice) ([]byte, error) {
	iva, total := r.resolver.Resolve(invoice)

	builder := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15)

	if r.logoPath != "" {
		if logo, err := os.ReadFile(r.logoPath); err == nil {
			builder = builder.WithBackgroundImage(logo, extension.Png)
		} else {
			r.log.Warn("invoice watermark asset unavailable, rendering without it",
				zap.String("path", r.logoPath),
				zap.Error(err))
		}
	}

	m := maroto.New(builder.Build())

	r.addLetterhead(m, invoice)
	r.addClientBlock(m, &invoice.Contract.Client)
	r.addPropertyBlock(m, &invoice.Contract.Property)
	r.addAmounts(m, invoice, iva, total)
	r.addFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func (r *DocumentRenderer) addLetterhead(m core.Maroto, invoice *model.Invoice) {
	m.AddRow(26,
		col.New(7).Add(
			text.New(companyName, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
			text.New(companyTaxID, props.Text{Size: 9, Top: 9, Align: align.Left, Color: grey}),
			text.New(companyAddress, props.Text{Size: 9, Top: 14, Align: align.Left, Color: grey}),
			text.New(companyContact, props.Text{Size: 9, Top: 19, Align: align.Left, Color: grey}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Align: align.Right,
			}),
			text.New("Nº: "+InvoiceNumber(invoice), props.Text{Size: 11, Top: 9, Align: align.Right}),
			text.New("Fecha: "+invoice.Date.Format("02/01/2006"), props.Text{Size: 11, Top: 15, Align: align.Right}),
		),
	)
	m.AddRow(4, line.NewCol(12))
}

func (r *DocumentRenderer) addClientBlock(m core.Maroto, client *model.Client) {
	phone := client.Phone
	if phone == "" {
		phone = "—"
	}
	m.AddRow(30,
		col.New(12).Add(
			text.New("Cliente", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
			text.New(client.FullName(), props.Text{Size: 10, Top: 7, Align: align.Left}),
			text.New("DNI: "+client.DNI, props.Text{Size: 10, Top: 12, Align: align.Left}),
			text.New("Dirección: "+client.Address, props.Text{Size: 10, Top: 17, Align: align.Left}),
			text.New("Teléfono: "+phone, props.Text{Size: 10, Top: 22, Align: align.Left}),
		),
	)
}

func (r *DocumentRenderer) addPropertyBlock(m core.Maroto, property *model.Property) {
	m.AddRow(16,
		col.New(12).Add(
			text.New("Inmueble alquilado", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
			text.New(property.Address, props.Text{Size: 10, Top: 7, Align: align.Left}),
		),
	)
}

func (r *DocumentRenderer) addAmounts(m core.Maroto, invoice *model.Invoice, iva, total float64) {
	m.AddRow(8,
		col.New(6).Add(
			text.New("Concepto", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(3).Add(
			text.New("Base imponible", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		),
		col.New(3).Add(
			text.New("Importe", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
	m.AddRow(3, line.NewCol(12))

	m.AddRow(10,
		col.New(6).Add(
			text.New(ConceptLine(invoice), props.Text{Size: 10, Align: align.Left}),
		),
		col.New(3).Add(
			text.New(FormatEuros(invoice.Subtotal), props.Text{Size: 10, Align: align.Right}),
		),
		col.New(3).Add(
			text.New(FormatEuros(invoice.Subtotal), props.Text{Size: 10, Align: align.Right}),
		),
	)

	m.AddRow(8,
		col.New(9).Add(
			text.New("IVA (21%)", props.Text{Size: 10, Align: align.Left}),
		),
		col.New(3).Add(
			text.New(FormatEuros(iva), props.Text{Size: 10, Align: align.Right}),
		),
	)

	m.AddRow(10,
		col.New(9).Add(
			text.New("TOTAL FACTURA", props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Left}),
		),
		col.New(3).Add(
			text.New(FormatEuros(total), props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right}),
		),
	)
}

func (r *DocumentRenderer) addFooter(m core.Maroto) {
	m.AddRow(24,
		col.New(12).Add(
			text.New(footerLines[0], props.Text{Size: 8, Top: 8, Align: align.Left, Color: grey}),
			text.New(footerLines[1], props.Text{Size: 8, Top: 13, Align: align.Left, Color: grey}),
			text.New(footerLines[2], props.Text{Size: 8, Top: 18, Align: align.Left, Color: grey}),
		),
	)
	m.AddRow(8,
		col.New(12).Add(
			text.New("Gracias por confiar en nosotros.", props.Text{Size: 8, Align: align.Right, Color: grey}),
		),
	)
}

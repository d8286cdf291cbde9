package pdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/billboards/internal/render"
)

const coreFont = "Helvetica"

type Generator struct {
	fontName string
	fontData []byte
}

// NewGenerator loads the TTF at fontPath for UTF-8 output. An empty path
// falls back to the core Helvetica font, which only covers Latin-1.
func NewGenerator(fontPath string) (*Generator, error) {
	if strings.TrimSpace(fontPath) == "" {
		return &Generator{fontName: coreFont}, nil
	}
	data, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("font data is empty")
	}
	return &Generator{fontName: "ContractFont", fontData: data}, nil
}

func (g *Generator) Generate(doc render.ContractDocument) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)

	tr := func(s string) string { return s }
	if g.fontData != nil {
		pdf.AddUTF8FontFromBytes(g.fontName, "", g.fontData)
		pdf.AddUTF8FontFromBytes(g.fontName, "B", g.fontData)
	} else {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	w := writer{pdf: pdf, family: g.fontName, tr: tr}

	pdf.AddPage()
	c := doc.Contract

	w.font("B", 14)
	w.line(0, 10, fmt.Sprintf("Advertising contract #%d", c.Number), "C")
	w.font("", 11)
	w.line(0, 6, fmt.Sprintf("%s to %s (%d %s)", formatDate(c.StartDate), formatDate(c.EndDate), c.DurationValue, c.DurationMode), "C")
	pdf.Ln(4)

	w.font("B", 11)
	w.line(0, 6, "Parties", "L")
	w.font("", 10)
	w.multi(fmt.Sprintf("Lessor: %s", safeValue(doc.Company.Name)))
	w.multi(fmt.Sprintf("Customer: %s %s", safeValue(doc.Customer.Name), bracketed(doc.Customer.Company)))
	w.multi(fmt.Sprintf("Phone: %s", safeValue(doc.Customer.Phone)))
	w.multi(fmt.Sprintf("Ad type: %s", safeValue(c.AdType)))
	pdf.Ln(3)

	w.font("B", 12)
	w.line(0, 8, "Billboards", "L")
	widths := []float64{10, 30, 60, 20, 15, 15, 30}
	w.row([]string{"#", "Code", "Location", "Size", "Level", "Faces", "Rent"}, widths, true)
	for i, l := range doc.Lines {
		w.row([]string{
			fmt.Sprint(i + 1),
			l.Code,
			strings.TrimSpace(l.Name + " " + l.Municipality),
			l.Size,
			l.Level,
			fmt.Sprint(l.Faces),
			render.Money(l.RentPrice),
		}, widths, false)
	}
	pdf.Ln(3)

	t := doc.Totals
	currency := doc.Company.Currency
	w.font("", 11)
	w.line(0, 6, fmt.Sprintf("Base total: %s %s", render.Money(t.BaseTotal), currency), "R")
	if t.DiscountAmount.IsPositive() {
		w.line(0, 6, fmt.Sprintf("Discount: %s %s", render.Money(t.DiscountAmount), currency), "R")
	}
	w.line(0, 6, fmt.Sprintf("Installation: %s %s", render.Money(t.InstallationCost), currency), "R")
	if t.OperatingFee.IsPositive() {
		w.line(0, 6, fmt.Sprintf("Operating fee (%s%%): %s %s", t.OperatingFeeRate.String(), render.Money(t.OperatingFee), currency), "R")
	}
	w.font("B", 11)
	w.line(0, 7, fmt.Sprintf("Total: %s %s", render.Money(t.FinalTotal), currency), "R")

	if len(c.Installments) > 0 {
		pdf.Ln(3)
		w.font("B", 12)
		w.line(0, 8, "Payment schedule", "L")
		iw := []float64{10, 40, 30, 70, 30}
		w.row([]string{"#", "Type", "Due", "Description", "Amount"}, iw, true)
		for _, inst := range c.Installments {
			w.row([]string{
				fmt.Sprint(inst.Index + 1),
				string(inst.PaymentType),
				formatDate(inst.DueDate),
				inst.Description,
				render.Money(inst.Amount),
			}, iw, false)
		}
	}

	pdf.Ln(8)
	w.font("", 11)
	w.line(0, 6, "Lessor: ______________________", "L")
	w.line(0, 6, fmt.Sprintf("Customer: ______________________ /%s/", safeValue(doc.Customer.Name)), "L")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type writer struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

func (w writer) font(style string, size float64) {
	w.pdf.SetFont(w.family, style, size)
}

func (w writer) line(width, height float64, text, align string) {
	w.pdf.CellFormat(width, height, w.tr(text), "", 1, align, false, 0, "")
}

func (w writer) multi(text string) {
	w.pdf.MultiCell(0, 5, w.tr(text), "", "L", false)
}

func (w writer) row(cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	w.font(style, 9)
	last := len(cols) - 1
	for i, col := range cols {
		align := "L"
		if i == last {
			align = "R"
		}
		w.pdf.CellFormat(widths[i], 7, w.tr(col), "1", 0, align, false, 0, "")
	}
	w.pdf.Ln(-1)
}

func bracketed(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	return "(" + value + ")"
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Renderer struct {
	templates map[Kind]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"money":       Money,
		"date":        formatDate,
		"mm":          func(v float64) string { return fmt.Sprintf("%.1fmm", v) },
		"paymentType": paymentTypeLabel,
		"entryType":   entryTypeLabel,
		"inc":         func(i int) int { return i + 1 },
		"faces":       totalFaces,
	}

	bodies := map[Kind]string{
		KindInvoice:      invoiceBody,
		KindPrintOrder:   printOrderBody,
		KindInstallation: installationBody,
		KindReceipt:      receiptBody,
	}

	r := &Renderer{templates: make(map[Kind]*template.Template, len(bodies))}
	for kind, body := range bodies {
		tmpl, err := template.New(string(kind)).Funcs(funcs).Parse(layout)
		if err != nil {
			return nil, fmt.Errorf("parse layout: %w", err)
		}
		if _, err := tmpl.New("body").Parse(body); err != nil {
			return nil, fmt.Errorf("parse %s: %w", kind, err)
		}
		r.templates[kind] = tmpl
	}
	return r, nil
}

type page struct {
	Title string
	Data  any
	Pages []Page
}

// RenderContract produces a self-contained printable page for a contract document.
func (r *Renderer) RenderContract(kind Kind, doc ContractDocument) (string, error) {
	if kind == KindReceipt {
		return "", fmt.Errorf("receipt is rendered from a payment")
	}
	data := page{Title: title(kind, doc.Contract.Number), Data: doc}
	if kind == KindInstallation {
		data.Pages = Paginate(doc.Lines, installationRowsPerPage, installationFirstRowMM, installationRowHeightMM)
	}
	return r.execute(kind, data)
}

func (r *Renderer) RenderReceipt(doc ReceiptDocument) (string, error) {
	return r.execute(KindReceipt, page{Title: "Receipt", Data: doc})
}

func (r *Renderer) execute(kind Kind, data page) (string, error) {
	tmpl, ok := r.templates[kind]
	if !ok {
		return "", fmt.Errorf("unknown document kind %q", kind)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func title(kind Kind, number int64) string {
	switch kind {
	case KindInvoice:
		return fmt.Sprintf("Invoice - contract #%d", number)
	case KindPrintOrder:
		return fmt.Sprintf("Print order - contract #%d", number)
	case KindInstallation:
		return fmt.Sprintf("Installation sheet - contract #%d", number)
	}
	return string(kind)
}

// Money formats an amount with thousands separators and two decimals.
func Money(value decimal.Decimal) string {
	fixed := value.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + "." + frac
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

func totalFaces(lines []BillboardLine) int {
	total := 0
	for _, line := range lines {
		total += line.Faces
	}
	return total
}

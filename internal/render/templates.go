package render

const layout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
@page { size: A4; margin: 12mm; }
body { font-family: "Helvetica Neue", Arial, sans-serif; font-size: 12px; color: #222; margin: 0; }
h1 { font-size: 20px; margin: 0 0 4mm 0; }
h2 { font-size: 14px; margin: 6mm 0 2mm 0; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #999; padding: 4px 6px; text-align: left; }
th { background: #eee; }
td.num { text-align: right; white-space: nowrap; }
.meta td { border: none; padding: 1px 6px 1px 0; }
.totals { width: 50%; margin-left: auto; margin-top: 4mm; }
.totals td.label { font-weight: bold; }
.sheet { position: relative; width: 186mm; height: 273mm; page-break-after: always; }
.sheet:last-child { page-break-after: auto; }
.sheet .row { position: absolute; left: 0; width: 186mm; height: 22mm; border-bottom: 1px dashed #bbb; }
.sheet .row span { display: inline-block; padding: 2mm; vertical-align: top; }
.footer { margin-top: 8mm; font-size: 10px; color: #666; }
@media print { .no-print { display: none; } }
</style>
</head>
<body>
{{template "body" .}}
<script>window.addEventListener("load", function () { window.print(); });</script>
</body>
</html>
`

const contractHeader = `{{define "header"}}
<h1>{{.Title}}</h1>
{{with .Data}}<table class="meta">
<tr><td>Company</td><td>{{.Company.Name}}</td></tr>
<tr><td>Customer</td><td>{{.Customer.Name}}{{if .Customer.Company}} ({{.Customer.Company}}){{end}}</td></tr>
{{if .Customer.Phone}}<tr><td>Phone</td><td>{{.Customer.Phone}}</td></tr>{{end}}
<tr><td>Ad type</td><td>{{.Contract.AdType}}</td></tr>
<tr><td>Period</td><td>{{date .Contract.StartDate}} to {{date .Contract.EndDate}} ({{.Contract.DurationValue}} {{.Contract.DurationMode}})</td></tr>
<tr><td>Issued</td><td>{{date .IssuedAt}}</td></tr>
</table>{{end}}
{{end}}`

const invoiceBody = contractHeader + `{{template "header" .}}{{with .Data}}
<h2>Billboards</h2>
<table>
<tr><th>#</th><th>Code</th><th>Location</th><th>Size</th><th>Level</th><th>Faces</th><th>Rent ({{.Company.Currency}})</th></tr>
{{range $i, $l := .Lines}}<tr><td>{{inc $i}}</td><td>{{$l.Code}}</td><td>{{$l.Name}} {{$l.Municipality}}</td><td>{{$l.Size}}</td><td>{{$l.Level}}</td><td>{{$l.Faces}}</td><td class="num">{{money $l.RentPrice}}</td></tr>
{{end}}</table>
<table class="totals">
<tr><td class="label">Base total</td><td class="num">{{money .Totals.BaseTotal}}</td></tr>
<tr><td class="label">Discount</td><td class="num">{{money .Totals.DiscountAmount}}</td></tr>
<tr><td class="label">Rental</td><td class="num">{{money .Totals.RentalCostOnly}}</td></tr>
<tr><td class="label">Installation</td><td class="num">{{money .Totals.InstallationCost}}</td></tr>
<tr><td class="label">Total</td><td class="num">{{money .Totals.FinalTotal}} {{.Company.Currency}}</td></tr>
<tr><td class="label">Paid</td><td class="num">{{money .Balance.Paid}}</td></tr>
<tr><td class="label">Remaining</td><td class="num">{{money .Balance.Remaining}}</td></tr>
</table>
{{if .Contract.Installments}}
<h2>Installments</h2>
<table>
<tr><th>#</th><th>Type</th><th>Due</th><th>Description</th><th>Amount</th></tr>
{{range .Contract.Installments}}<tr><td>{{inc .Index}}</td><td>{{paymentType .PaymentType}}</td><td>{{date .DueDate}}</td><td>{{.Description}}</td><td class="num">{{money .Amount}}</td></tr>
{{end}}</table>
{{end}}
<p class="footer">{{.Company.Name}}</p>
{{end}}`

const printOrderBody = contractHeader + `{{template "header" .}}{{with .Data}}
<h2>Faces to print</h2>
<table>
<tr><th>#</th><th>Code</th><th>Size</th><th>Faces</th><th>Type</th><th>Location</th></tr>
{{range $i, $l := .Lines}}<tr><td>{{inc $i}}</td><td>{{$l.Code}}</td><td>{{$l.Size}}</td><td>{{$l.Faces}}</td><td>{{$l.Type}}</td><td>{{$l.Name}} {{$l.Municipality}}</td></tr>
{{end}}</table>
<p class="footer">Total faces: {{faces .Lines}}</p>
{{end}}`

const installationBody = `{{$title := .Title}}{{$doc := .Data}}{{range .Pages}}
<div class="sheet">
<h1>{{$title}}</h1>
<div>{{$doc.Customer.Name}} | {{date $doc.Contract.StartDate}} | page {{.Number}} / {{.Total}}</div>
{{range .Lines}}<div class="row" style="top: {{mm .TopMM}}">
<span>{{.Number}}</span><span>{{.Line.Code}}</span><span>{{.Line.Size}} x{{.Line.Faces}}</span><span>{{.Line.Name}} {{.Line.Municipality}}</span><span>{{money .Line.InstallationPrice}}</span>
</div>
{{end}}</div>
{{end}}`

const receiptBody = `{{with .Data}}
<h1>Receipt</h1>
<table class="meta">
<tr><td>Company</td><td>{{.Company.Name}}</td></tr>
<tr><td>Received from</td><td>{{.Customer.Name}}</td></tr>
<tr><td>Type</td><td>{{entryType .Payment.EntryType}}</td></tr>
<tr><td>Date</td><td>{{date .Payment.PaidAt}}</td></tr>
{{if .Contract}}<tr><td>Contract</td><td>#{{.Contract.Number}}</td></tr>{{end}}
{{if .Payment.Notes}}<tr><td>Notes</td><td>{{.Payment.Notes}}</td></tr>{{end}}
</table>
<table class="totals">
<tr><td class="label">Amount</td><td class="num">{{money .Payment.Amount}} {{.Company.Currency}}</td></tr>
{{if .Balance}}<tr><td class="label">Total</td><td class="num">{{money .Balance.Total}}</td></tr>
<tr><td class="label">Paid to date</td><td class="num">{{money .Balance.Paid}}</td></tr>
<tr><td class="label">Remaining</td><td class="num">{{money .Balance.Remaining}}</td></tr>{{end}}
</table>
<p class="footer">Issued {{date .IssuedAt}}</p>
{{end}}`

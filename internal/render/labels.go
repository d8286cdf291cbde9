package render

import "github.com/nurpe/billboards/internal/model"

var paymentTypeLabels = map[model.PaymentType]string{
	model.PaymentOnSigning:      "On signing",
	model.PaymentMonthly:        "Monthly",
	model.PaymentBiMonthly:      "Every two months",
	model.PaymentQuarterly:      "Quarterly",
	model.PaymentOnInstallation: "On installation",
	model.PaymentEndOfContract:  "End of contract",
}

func paymentTypeLabel(pt model.PaymentType) string {
	if label, ok := paymentTypeLabels[pt]; ok {
		return label
	}
	return string(pt)
}

func entryTypeLabel(t model.EntryType) string {
	switch t {
	case model.EntryReceipt:
		return "Receipt"
	case model.EntryAccountPayment:
		return "Payment on account"
	case model.EntryInvoice:
		return "Invoice"
	}
	return string(t)
}

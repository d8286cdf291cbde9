package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/nurpe/billboards/internal/model"
)

const installationLeadDays = 7

var paymentTypeLabels = map[string]model.PaymentType{
	"on_signing":      model.PaymentOnSigning,
	"on signing":      model.PaymentOnSigning,
	"عند التوقيع":     model.PaymentOnSigning,
	"monthly":         model.PaymentMonthly,
	"شهري":            model.PaymentMonthly,
	"bi_monthly":      model.PaymentBiMonthly,
	"bi-monthly":      model.PaymentBiMonthly,
	"كل شهرين":        model.PaymentBiMonthly,
	"quarterly":       model.PaymentQuarterly,
	"ربع سنوي":        model.PaymentQuarterly,
	"كل ثلاثة أشهر":   model.PaymentQuarterly,
	"on_installation": model.PaymentOnInstallation,
	"on installation": model.PaymentOnInstallation,
	"عند التركيب":     model.PaymentOnInstallation,
	"end_of_contract": model.PaymentEndOfContract,
	"end of contract": model.PaymentEndOfContract,
	"نهاية العقد":     model.PaymentEndOfContract,
}

// ParsePaymentType accepts canonical codes as well as the labels shown in the UI.
func ParsePaymentType(label string) (model.PaymentType, error) {
	key := strings.ToLower(strings.TrimSpace(label))
	if pt, ok := paymentTypeLabels[key]; ok {
		return pt, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPaymentType, label)
}

// DueDate derives an installment due date from the contract dates, the
// installment position and its payment type. Unknown types fall on the start date.
func DueDate(pt model.PaymentType, start, end time.Time, index int) time.Time {
	start = model.DateOnly(start)
	switch pt {
	case model.PaymentMonthly:
		return start.AddDate(0, index+1, 0)
	case model.PaymentBiMonthly:
		return start.AddDate(0, (index+1)*2, 0)
	case model.PaymentQuarterly:
		return start.AddDate(0, (index+1)*3, 0)
	case model.PaymentOnInstallation:
		return start.AddDate(0, 0, installationLeadDays)
	case model.PaymentEndOfContract:
		return model.DateOnly(end)
	default:
		return start
	}
}

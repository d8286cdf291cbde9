package normalize

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/nurpe/billboards/internal/model"
)

var ErrMissingField = errors.New("missing field")

// Alias keys seen across spreadsheets, the legacy backend and manual exports.
var (
	idKeys           = []string{"id", "ID", "Id", "billboard_id", "Billboard_ID", "billboardId"}
	codeKeys         = []string{"code", "Code", "billboard_code", "Billboard_Code", "number", "Number"}
	nameKeys         = []string{"name", "Name", "billboard_name", "Billboard_Name", "title"}
	municipalityKeys = []string{"municipality", "Municipality", "city", "City", "district"}
	sizeKeys         = []string{"size", "Size", "billboard_size", "Billboard_Size", "size_name", "sizeName"}
	levelKeys        = []string{"level", "Level", "billboard_level", "Billboard_Level", "grade"}
	facesKeys        = []string{"faces", "Faces", "faces_count", "Faces_Count", "faceCount", "number_of_faces"}
	typeKeys         = []string{"type", "Type", "billboard_type", "Billboard_Type"}
	statusKeys       = []string{"status", "Status"}
	priceKeys        = []string{"monthly_price", "price", "Price", "Monthly_Price", "monthlyPrice"}
	contractKeys     = []string{"contract_id", "Contract_ID", "contractId", "current_contract"}
	rentEndKeys      = []string{"rent_end_date", "Rent_End_Date", "rentEndDate", "expiry_date"}

	categoryKeys = []string{"category", "Category", "customer_category", "customer_type", "pricing_category"}
	bucketKeys   = []string{"bucket", "duration", "Duration", "period"}
	unitKeys     = []string{"unit_price", "price", "Price", "value"}

	phoneKeys   = []string{"phone", "Phone", "mobile", "contact_phone"}
	companyKeys = []string{"company", "Company", "company_name"}
)

func lookup(record map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if value, ok := record[key]; ok && value != nil {
			if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
				continue
			}
			return value, true
		}
	}
	return nil, false
}

func str(record map[string]any, keys []string) string {
	value, ok := lookup(record, keys)
	if !ok {
		return ""
	}
	return strings.TrimSpace(cast.ToString(value))
}

func amount(record map[string]any, keys []string) decimal.Decimal {
	value, ok := lookup(record, keys)
	if !ok {
		return decimal.Zero
	}
	return Amount(cast.ToString(value))
}

// Amount parses a loosely formatted money value ("1,200", " 300.5 LYD"); garbage reads as zero.
func Amount(raw string) decimal.Decimal {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return -1
	}, raw)
	if cleaned == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// Billboard builds the canonical billboard from a loosely keyed record.
func Billboard(record map[string]any) (model.Billboard, error) {
	code := str(record, codeKeys)
	rawID := str(record, idKeys)
	if rawID == "" && code == "" {
		return model.Billboard{}, fmt.Errorf("%w: id or code", ErrMissingField)
	}
	size := Size(str(record, sizeKeys))
	if size == "" {
		return model.Billboard{}, fmt.Errorf("%w: size", ErrMissingField)
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		// Legacy numeric ids are kept stable by hashing them into the uuid space.
		key := rawID
		if key == "" {
			key = code
		}
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte("billboard:"+key))
	}
	if code == "" {
		code = rawID
	}

	faces := 2
	if value, ok := lookup(record, facesKeys); ok {
		if parsed := cast.ToInt(value); parsed > 0 {
			faces = parsed
		}
	}

	billboard := model.Billboard{
		ID:           id,
		Code:         code,
		Name:         str(record, nameKeys),
		Municipality: str(record, municipalityKeys),
		Size:         size,
		Level:        strings.ToUpper(str(record, levelKeys)),
		Faces:        faces,
		Type:         str(record, typeKeys),
		Status:       BillboardStatus(str(record, statusKeys)),
		MonthlyPrice: amount(record, priceKeys),
	}

	if raw := str(record, contractKeys); raw != "" {
		if contractID, err := uuid.Parse(raw); err == nil {
			billboard.ContractID = &contractID
		}
	}
	if value, ok := lookup(record, rentEndKeys); ok {
		if end, err := cast.ToTimeE(value); err == nil && !end.IsZero() {
			end = model.DateOnly(end)
			billboard.RentEndDate = &end
		}
	}
	return billboard, nil
}

// BillboardStatus maps the many spellings of a status onto the three canonical ones.
func BillboardStatus(raw string) model.BillboardStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "rented", "booked", "محجوز", "مؤجر":
		return model.BillboardStatusRented
	case "maintenance", "صيانة", "broken":
		return model.BillboardStatusMaintenance
	default:
		return model.BillboardStatusAvailable
	}
}

// PriceRow builds a price-list row; the bucket column accepts "3", "3m", "3 months", "daily".
func PriceRow(record map[string]any) (model.PriceRow, error) {
	size := Size(str(record, sizeKeys))
	if size == "" {
		return model.PriceRow{}, fmt.Errorf("%w: size", ErrMissingField)
	}
	bucket, ok := Bucket(str(record, bucketKeys))
	if !ok {
		return model.PriceRow{}, fmt.Errorf("%w: duration bucket", ErrMissingField)
	}
	return model.PriceRow{
		Size:      size,
		Level:     strings.ToUpper(str(record, levelKeys)),
		Category:  Category(str(record, categoryKeys)),
		Bucket:    bucket,
		UnitPrice: amount(record, unitKeys),
	}, nil
}

func Bucket(raw string) (model.DurationBucket, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "1d", "day", "daily", "يومي", "يوم":
		return model.BucketDay, true
	}
	if bucket, ok := model.ParseBucket(value); ok {
		return bucket, true
	}
	value = strings.TrimSpace(strings.TrimRight(value, "abcdefghijklmnopqrstuvwxyz "))
	months, err := cast.ToIntE(value)
	if err != nil {
		return "", false
	}
	return model.MonthBucket(months)
}

// Category lowercases a pricing category and folds the Arabic UI labels.
func Category(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "", "عادي", "normal":
		return "regular"
	case "مسوق", "marketer":
		return "marketer"
	case "شركات", "company", "companies":
		return "corporate"
	}
	return value
}

func Customer(record map[string]any) (model.Customer, error) {
	name := str(record, []string{"name", "Name", "customer_name", "Customer_Name"})
	if name == "" {
		return model.Customer{}, fmt.Errorf("%w: name", ErrMissingField)
	}
	id, err := uuid.Parse(str(record, []string{"id", "ID", "customer_id"}))
	if err != nil {
		id = uuid.Nil
	}
	return model.Customer{
		ID:       id,
		Name:     name,
		Company:  str(record, companyKeys),
		Phone:    Phone(str(record, phoneKeys)),
		Category: Category(str(record, categoryKeys)),
	}, nil
}

// Phone keeps digits and a leading plus.
func Phone(raw string) string {
	raw = strings.TrimSpace(raw)
	var b strings.Builder
	for i, r := range raw {
		if (r >= '0' && r <= '9') || (r == '+' && i == 0) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Date parses the date formats seen in exports; zero time when none match.
func Date(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", time.RFC3339, "02/01/2006", "2006/01/02", "02-01-2006"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return model.DateOnly(parsed)
		}
	}
	return time.Time{}
}

package model

import "github.com/shopspring/decimal"

// DurationBucket is a price-list column: a fixed month count or the daily rate.
type DurationBucket string

const (
	Bucket1Month   DurationBucket = "1m"
	Bucket2Months  DurationBucket = "2m"
	Bucket3Months  DurationBucket = "3m"
	Bucket6Months  DurationBucket = "6m"
	Bucket12Months DurationBucket = "12m"
	BucketDay      DurationBucket = "1d"
)

var monthBuckets = map[int]DurationBucket{
	1:  Bucket1Month,
	2:  Bucket2Months,
	3:  Bucket3Months,
	6:  Bucket6Months,
	12: Bucket12Months,
}

// MonthBucket returns the column for a month count, if the price list has one.
func MonthBucket(months int) (DurationBucket, bool) {
	bucket, ok := monthBuckets[months]
	return bucket, ok
}

func ParseBucket(raw string) (DurationBucket, bool) {
	switch DurationBucket(raw) {
	case Bucket1Month, Bucket2Months, Bucket3Months, Bucket6Months, Bucket12Months, BucketDay:
		return DurationBucket(raw), true
	}
	return "", false
}

type PriceRow struct {
	Size      string
	Level     string
	Category  string
	Bucket    DurationBucket
	UnitPrice decimal.Decimal
}

type InstallationPrice struct {
	Size         string
	Price        decimal.Decimal
	OneFacePrice *decimal.Decimal
}

package pricing

import "github.com/shopspring/decimal"

// Result is the outcome of a single price lookup: Found(price) or NotFound.
// A miss is not an error; callers move on to the next source.
type Result struct {
	price decimal.Decimal
	found bool
}

func Found(price decimal.Decimal) Result {
	return Result{price: price, found: true}
}

func NotFound() Result {
	return Result{}
}

func (r Result) Get() (decimal.Decimal, bool) {
	return r.price, r.found
}

func (r Result) IsFound() bool {
	return r.found
}

// Or returns r when found, otherwise the result of next.
func (r Result) Or(next func() Result) Result {
	if r.found {
		return r
	}
	return next()
}

// OrZero resolves the chain; a complete miss degrades to zero.
func (r Result) OrZero() decimal.Decimal {
	if r.found {
		return r.price
	}
	return decimal.Zero
}

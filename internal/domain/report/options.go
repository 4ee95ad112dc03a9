package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTrendWindow is the number of months in a historical trend
const DefaultTrendWindow = 6

type options struct {
	rates    Rates
	location *time.Location
	window   int
}

// Option customizes how a report is computed
type Option func(*options)

// WithRates replaces every flat rate
func WithRates(r Rates) Option {
	return func(o *options) {
		o.rates = r
	}
}

// WithTaxRate overrides the tax rate, typically with the configured ImpostosRate
func WithTaxRate(rate decimal.Decimal) Option {
	return func(o *options) {
		o.rates.Tax = rate
	}
}

// WithLocation sets the location month bounds are computed in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithTrendWindow sets how many months a historical trend covers
func WithTrendWindow(months int) Option {
	return func(o *options) {
		if months > 0 {
			o.window = months
		}
	}
}

func newOptions(opts []Option) options {
	o := options{
		rates:    DefaultRates(),
		location: time.UTC,
		window:   DefaultTrendWindow,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Package fees computes the default fee deductions for a sale: the
// marketplace cut, the payment-processor cut and the default postage and
// packing cost. All amounts are GBP, rounded to two decimal places.
package fees

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// marketplaceRate is the proportion of the order taken by the
	// marketplace.
	marketplaceRate = decimal.NewFromFloat(0.10)

	// processorRate and processorPerOrder make up the payment
	// processor's cut: a percentage plus an absolute amount per order.
	processorRate     = decimal.NewFromFloat(0.029)
	processorPerOrder = decimal.NewFromFloat(0.30)

	// Default absolute per-order costs.
	defaultPostage = decimal.NewFromFloat(0.88)
	defaultPacking = decimal.NewFromFloat(0.09)
)

// DateLayout is the dd/mm/yyyy layout used for order and addition dates.
const DateLayout = "02/01/2006"

// internationalProgrammePostcodes are the forwarding-centre postcodes of
// the marketplace's international shipping programme. Orders sent there
// settle their processor cut differently, so no default is offered.
var internationalProgrammePostcodes = []string{"WS13 8UR", "WS138UR"}

// MarketplaceCut returns the default marketplace fee for an order amount.
func MarketplaceCut(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(marketplaceRate).Round(2)
}

// ProcessorCut returns the default payment-processor fee for an order
// amount. International-programme orders get no default; the operator
// must supply the cut explicitly.
func ProcessorCut(amount decimal.Decimal, international bool) decimal.Decimal {
	if international {
		return decimal.Zero
	}
	return amount.Mul(processorRate).Add(processorPerOrder).Round(2)
}

// DefaultPostPack returns the default combined postage and packing cost.
func DefaultPostPack() decimal.Decimal {
	return defaultPostage.Add(defaultPacking)
}

// NormalizePostcode trims and upper-cases a postcode.
func NormalizePostcode(postcode string) string {
	return strings.ToUpper(strings.TrimSpace(postcode))
}

// InternationalProgramme reports whether a postcode is one of the
// international shipping programme forwarding addresses.
func InternationalProgramme(postcode string) bool {
	postcode = NormalizePostcode(postcode)
	for _, p := range internationalProgrammePostcodes {
		if postcode == p {
			return true
		}
	}
	return false
}

// DefaultOrderDate returns the conventional order date: the day before
// now, formatted dd/mm/yyyy. Orders are usually entered the morning
// after they arrive.
func DefaultOrderDate(now time.Time) string {
	return now.AddDate(0, 0, -1).Format(DateLayout)
}

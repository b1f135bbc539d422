package comparison

import "strconv"

// Pricing types.
const (
	PricingFree         = "free"
	PricingSubscription = "subscription"
	PricingOneTime      = "one_time"
	PricingQuote        = "quote"
)

// DefaultPriceText is shown when nothing better is known about pricing.
const DefaultPriceText = "Contact sales"

var pricingLabels = map[string]string{
	PricingSubscription: "Subscription",
	PricingOneTime:      "One-time",
	PricingQuote:        "Contact for quote",
}

// FormatPrice renders the price summary of a listing.
func FormatPrice(p *Pricing) string {
	if p == nil {
		return DefaultPriceText
	}
	if p.Type == PricingFree {
		return "Free"
	}
	if p.StartingFrom != nil {
		base := "$" + strconv.FormatFloat(*p.StartingFrom, 'f', -1, 64)
		if p.Type == PricingSubscription {
			return base + "/mo"
		}
		return "From " + base
	}
	if label, ok := pricingLabels[p.Type]; ok {
		return label
	}
	return DefaultPriceText
}

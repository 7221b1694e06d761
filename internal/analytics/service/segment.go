package service

// Customer segment names.
const (
	SegmentChampions          = "Champions"
	SegmentLoyalCustomers     = "Loyal Customers"
	SegmentNewCustomers       = "New Customers"
	SegmentPotentialLoyalists = "Potential Loyalists"
	SegmentAtRisk             = "At Risk"
	SegmentHibernating        = "Hibernating"
	SegmentNeedAttention      = "Need Attention"
	SegmentUnknown            = "Unknown"
)

type segmentRule struct {
	name    string
	matches func(r, f int) bool
}

// segmentRules is evaluated top to bottom on (recency score, frequency
// score); the first matching rule wins. Order matters: Champions must be
// checked before Loyal Customers, and so on.
var segmentRules = []segmentRule{
	{SegmentChampions, func(r, f int) bool { return r >= 4 && f >= 4 }},
	{SegmentLoyalCustomers, func(r, f int) bool { return r >= 3 && f >= 3 }},
	{SegmentNewCustomers, func(r, f int) bool { return r >= 4 && f <= 2 }},
	{SegmentPotentialLoyalists, func(r, f int) bool { return r >= 3 && f <= 2 }},
	{SegmentAtRisk, func(r, f int) bool { return r <= 2 && f >= 3 }},
	{SegmentHibernating, func(r, f int) bool { return r <= 2 && f <= 2 }},
}

// SegmentFor maps a (recency, frequency) score pair to its segment. An
// undefined score on either dimension yields Unknown before the rule table
// is consulted.
func SegmentFor(r, f *int) string {
	if r == nil || f == nil {
		return SegmentUnknown
	}
	for _, rule := range segmentRules {
		if rule.matches(*r, *f) {
			return rule.name
		}
	}
	return SegmentNeedAttention
}

package taxonomy

import "strings"

// KeywordRule maps a keyword set to a category at a fixed confidence.
// Rules are evaluated in order; the first rule whose keyword set intersects
// the input wins.
type KeywordRule struct {
	Keywords   []string
	Category   string
	Confidence float64
}

// KeywordRules is the ordered deterministic classification table. Meals sits
// first as the highest-frequency case for small businesses.
var KeywordRules = []KeywordRule{
	{
		Keywords: []string{
			"dinner", "lunch", "breakfast", "meal", "food", "restaurant",
			"coffee", "starbucks", "dining", "cafe", "bar", "pizza",
			"eat", "drink", "beverage", "catering",
		},
		Category:   "Meals & Entertainment",
		Confidence: 0.90,
	},
	{
		Keywords: []string{
			"office", "supplies", "stationery", "paper", "pens", "staples",
			"stapler", "folder", "binder",
		},
		Category:   "Office Supplies",
		Confidence: 0.85,
	},
	{
		Keywords: []string{
			"travel", "hotel", "flight", "uber", "lyft", "taxi", "airline",
			"airport", "lodging", "accommodation", "car rental", "rental car",
		},
		Category:   "Travel",
		Confidence: 0.90,
	},
	{
		Keywords: []string{
			"software", "saas", "subscription", "app", "platform", "service",
			"cloud", "hosting", "domain", "ssl",
		},
		Category:   "Software & Subscriptions",
		Confidence: 0.85,
	},
	{
		Keywords: []string{
			"marketing", "advertising", "promotion", "ad", "campaign",
			"social media", "seo", "ppc", "google ads", "facebook ads",
		},
		Category:   "Marketing & Advertising",
		Confidence: 0.85,
	},
	{
		Keywords: []string{
			"legal", "attorney", "lawyer", "accounting", "bookkeeping", "cpa",
			"consulting", "consultant", "professional service",
		},
		Category:   "Professional Services",
		Confidence: 0.90,
	},
	{
		Keywords: []string{
			"utilities", "electric", "water", "gas", "internet", "phone",
			"telephone", "utility", "power", "electricity",
		},
		Category:   "Utilities",
		Confidence: 0.85,
	},
	{
		Keywords:   []string{"rent", "lease", "rental", "landlord"},
		Category:   "Rent",
		Confidence: 0.90,
	},
	{
		Keywords:   []string{"insurance", "premium", "coverage", "policy"},
		Category:   "Insurance",
		Confidence: 0.85,
	},
	{
		Keywords: []string{
			"vehicle", "car", "truck", "fuel", "gasoline", "maintenance",
			"repair", "auto", "automotive",
		},
		Category:   "Vehicle Expenses",
		Confidence: 0.80,
	},
}

// KeywordMatch is the result of matching the keyword rule table.
type KeywordMatch struct {
	Category   string
	Confidence float64
}

// MatchKeywords runs the ordered rule table against the lowercased
// description and merchant. When no rule fires it returns the generic
// fallback category at confidence 0.50.
func MatchKeywords(description, merchant string, isBusiness bool) KeywordMatch {
	combined := strings.ToLower(description) + " " + strings.ToLower(merchant)

	for _, rule := range KeywordRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(combined, kw) {
				return KeywordMatch{Category: rule.Category, Confidence: rule.Confidence}
			}
		}
	}

	return KeywordMatch{Category: FallbackCategory(isBusiness), Confidence: 0.50}
}

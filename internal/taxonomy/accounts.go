package taxonomy

import "strings"

// categoryAccountKeywords maps normalized category labels to account-name
// keywords, used to pick a ledger account for a classified transaction.
var categoryAccountKeywords = map[string][]string{
	"office supplies":          {"office", "supplies", "expenses"},
	"meals & entertainment":    {"meals", "food", "restaurant", "dining", "entertainment", "meals & entertainment"},
	"meals":                    {"meals", "food", "restaurant", "dining", "entertainment"},
	"travel":                   {"travel", "transportation"},
	"software & subscriptions": {"software", "subscription", "saas"},
	"software":                 {"software", "subscription", "saas"},
	"utilities":                {"utilities", "electric", "water"},
	"rent":                     {"rent", "lease"},
}

// AccountKeywords resolves a category label to account-name keywords in
// three tiers: exact key, substring containment in either direction, and
// finally the category text itself as the sole keyword.
func AccountKeywords(category string) []string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return nil
	}

	if kws, ok := categoryAccountKeywords[c]; ok {
		return kws
	}

	for key, kws := range categoryAccountKeywords {
		if strings.Contains(c, key) || strings.Contains(key, c) {
			return kws
		}
	}

	return []string{c}
}

// industryAccountKeywords lists preferred expense-account keywords per
// business type. A creator's software spend should land in a software or
// subscription account before any generic expense account.
var industryAccountKeywords = map[string][]string{
	"creator":      {"software", "equipment", "marketing", "subscription"},
	"tradesperson": {"vehicle", "tools", "materials", "equipment"},
	"wellness":     {"equipment", "certification", "facility", "marketing"},
	"tutor":        {"materials", "software", "education", "marketing"},
	"real_estate":  {"marketing", "professional", "vehicle", "software"},
	"agency":       {"software", "marketing", "professional", "subscription"},
}

// IndustryKeywords returns the preferred expense-account keywords for a
// business type, or nil when the industry is unknown.
func IndustryKeywords(businessType string) []string {
	return industryAccountKeywords[businessType]
}

// descriptionClusters maps common description/merchant word clusters to
// expense-account keywords, for transactions that arrive unclassified.
var descriptionClusters = []struct {
	Triggers []string
	Keywords []string
}{
	{
		Triggers: []string{
			"dinner", "lunch", "breakfast", "meal", "food", "restaurant",
			"coffee", "starbucks", "dining", "cafe", "bar", "pizza",
			"eat", "drink", "beverage",
		},
		Keywords: []string{"meals", "food", "dining", "entertainment"},
	},
	{
		Triggers: []string{"office", "supplies", "stationery"},
		Keywords: []string{"office", "supplies"},
	},
	{
		Triggers: []string{"travel", "hotel", "flight"},
		Keywords: []string{"travel"},
	},
	{
		Triggers: []string{"software", "saas", "subscription"},
		Keywords: []string{"software", "subscription"},
	},
}

// ClusterKeywords matches a free-text description or merchant string against
// the common expense clusters and returns account-name keywords, or nil.
func ClusterKeywords(text string) []string {
	t := strings.ToLower(text)
	if t == "" {
		return nil
	}
	for _, cluster := range descriptionClusters {
		for _, trigger := range cluster.Triggers {
			if strings.Contains(t, trigger) {
				return cluster.Keywords
			}
		}
	}
	return nil
}

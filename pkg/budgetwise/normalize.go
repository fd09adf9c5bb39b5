package budgetwise

import (
	"strings"
	"unicode/utf8"
)

// entityReplacer decodes the closed set of HTML entities that upstream
// renderers are known to emit. Decoding is a single left-to-right pass, so
// a decoded string stays stable under a second decode unless the input was
// double-encoded to begin with.
var entityReplacer = strings.NewReplacer(
	"&gt;", ">",
	"&lt;", "<",
	"&quot;", `"`,
	"&apos;", "'",
	"&nbsp;", " ",
	"&#39;", "'",
	"&#8216;", "‘",
	"&#8217;", "’",
	"&#8220;", "“",
	"&#8221;", "”",
	"&#8211;", "–",
	"&#8212;", "—",
	"&#8230;", "…",
	"&amp;", "&",
)

// decodeHTMLEntities decodes the supported entity table in one pass.
func decodeHTMLEntities(s string) string {
	return entityReplacer.Replace(s)
}

type categoryRule struct {
	category string
	terms    []string
}

// categoryRules infers a result category from generated text; first
// matching rule wins, so ordering matters.
var categoryRules = []categoryRule{
	{CategorySaving, []string{"saving", "save"}},
	{CategorySpendingAdvice, []string{"spending", "expense"}},
	{CategoryBudget, []string{"budget"}},
	{CategoryInvestment, []string{"invest", "sip", "ppf"}},
	{CategoryDebt, []string{"debt", "loan"}},
}

func inferCategory(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, term := range rule.terms {
			if strings.Contains(lower, term) {
				return rule.category
			}
		}
	}
	return CategoryGeneral
}

// splitThreshold separates a substantive model answer from a stub one.
const splitThreshold = 50

const (
	genericRecommendation = "Review the suggestions above and apply the ones that fit your goals."
	shortInsight          = "Your financial data has been reviewed."
	shortRecommendation   = "Keep tracking your transactions regularly for better insights."
)

// normalizeModelResponse turns raw generated text into an AdvisoryResult:
// entity-decode, infer the category, then pick insight and recommendation
// based on answer length.
func normalizeModelResponse(raw string) AdvisoryResult {
	decoded := strings.TrimSpace(decodeHTMLEntities(raw))
	category := inferCategory(decoded)

	if utf8.RuneCountInString(decoded) > splitThreshold {
		return AdvisoryResult{
			Insight:        decoded,
			Category:       category,
			Recommendation: genericRecommendation,
		}
	}
	return AdvisoryResult{
		Insight:        shortInsight,
		Category:       category,
		Recommendation: shortRecommendation,
	}
}

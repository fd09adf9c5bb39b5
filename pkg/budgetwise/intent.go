package budgetwise

import "strings"

// Intent is the classified purpose of a user's natural-language query.
type Intent string

// The closed set of intents. Classification is total: every query maps to
// exactly one intent, with IntentFallback as the default.
const (
	IntentGreeting          Intent = "greeting"
	IntentOffTopic          Intent = "off_topic"
	IntentCategoryBreakdown Intent = "category_breakdown"
	IntentOverspending      Intent = "overspending_analysis"
	IntentSavingPlan        Intent = "saving_plan"
	IntentInvestmentAdvice  Intent = "investment_advice"
	IntentBudgetPlan        Intent = "budget_plan"
	IntentFallback          Intent = "fallback"
)

// financeKeywords marks a query as on-topic. A query containing none of
// these is classified off-topic before any finer rule runs.
var financeKeywords = []string{
	"money", "budget", "save", "saving", "invest", "investment",
	"expense", "spend", "spending", "income", "salary",
	"financial", "finance", "bank", "loan", "debt", "credit",
	"fund", "sip", "ppf", "fd", "mutual", "stock", "tax",
	"insurance", "emergency", "retirement", "cost", "price",
	"rupee", "₹", "account", "transaction", "payment", "cash",
	"wealth", "category", "analysis", "plan", "advice", "tip",
	"help", "manage", "optimize",
}

type intentRule struct {
	intent Intent
	match  func(q string) bool
}

// intentRules is evaluated top to bottom with first match winning. The
// order is a contract: the greeting and off-topic guards run before any
// finance rule, and overspending outranks the generic saving rule.
var intentRules = []intentRule{
	{IntentGreeting, anyOf("hi", "hello", "hey")},
	{IntentOffTopic, noneOf(financeKeywords...)},
	{IntentCategoryBreakdown, both(anyOf("category"), anyOf("spending", "expense"))},
	{IntentOverspending, either(anyOf("spending too much", "overspending"), both(anyOf("where"), anyOf("spending")))},
	{IntentSavingPlan, anyOf("saving plan", "save money", "how to save")},
	{IntentInvestmentAdvice, anyOf("invest", "sip", "mutual fund", "ppf")},
	{IntentBudgetPlan, anyOf("budget", "monthly plan")},
}

// ClassifyIntent maps a free-text query to an Intent. It is a pure
// function of the lower-cased query text.
func ClassifyIntent(query string) Intent {
	q := strings.ToLower(query)
	for _, rule := range intentRules {
		if rule.match(q) {
			return rule.intent
		}
	}
	return IntentFallback
}

func anyOf(terms ...string) func(string) bool {
	return func(q string) bool {
		for _, term := range terms {
			if strings.Contains(q, term) {
				return true
			}
		}
		return false
	}
}

func noneOf(terms ...string) func(string) bool {
	has := anyOf(terms...)
	return func(q string) bool {
		return !has(q)
	}
}

func both(a, b func(string) bool) func(string) bool {
	return func(q string) bool {
		return a(q) && b(q)
	}
}

func either(a, b func(string) bool) func(string) bool {
	return func(q string) bool {
		return a(q) || b(q)
	}
}

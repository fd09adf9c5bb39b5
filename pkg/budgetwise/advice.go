package budgetwise

import (
	"strings"

	"github.com/shopspring/decimal"
)

// overspendShareThreshold flags a category once it consumes more than this
// share of income, in percent.
var overspendShareThreshold = decimal.NewFromInt(20)

// elssMinimumAllocation is the smallest ELSS allocation worth suggesting.
var elssMinimumAllocation = decimal.NewFromInt(500)

type deterministicAdvisor struct {
	category string
	closing  string
	generate func(FinancialContext) string
}

// deterministicAdvisors maps every intent answered without the remote
// model. Fallback is absent on purpose: it routes to the gateway.
var deterministicAdvisors = map[Intent]deterministicAdvisor{
	IntentGreeting: {
		category: CategoryGeneral,
		closing:  "Ask me anything about your finances to get started.",
		generate: generateGreeting,
	},
	IntentOffTopic: {
		category: CategoryGeneral,
		closing:  "Try a question about your spending, savings, budget, or investments.",
		generate: generateOffTopic,
	},
	IntentCategoryBreakdown: {
		category: CategorySpendingAdvice,
		closing:  "Review the highest-spend categories and set limits where they run hot.",
		generate: generateCategoryBreakdown,
	},
	IntentOverspending: {
		category: CategorySpendingAdvice,
		closing:  "Trim the flagged categories first; they free up the most cash.",
		generate: generateOverspendingAnalysis,
	},
	IntentSavingPlan: {
		category: CategorySaving,
		closing:  "Automate these transfers on payday so the plan runs itself.",
		generate: generateSavingPlan,
	},
	IntentInvestmentAdvice: {
		category: CategoryInvestment,
		closing:  "Start the SIP first; PPF and ELSS can follow once it is running.",
		generate: generateInvestmentAdvice,
	},
	IntentBudgetPlan: {
		category: CategoryBudget,
		closing:  "Revisit the budget monthly and adjust category limits as habits change.",
		generate: generateBudgetPlan,
	},
}

func (a deterministicAdvisor) run(fc FinancialContext) AdvisoryResult {
	return AdvisoryResult{
		Insight:        a.generate(fc),
		Category:       a.category,
		Recommendation: a.closing,
	}
}

type categoryTotal struct {
	Name  string
	Total Amount
}

// categoryTotals groups transaction lines by category, summing amounts.
// Order follows first occurrence in the context; lines without a parsed
// category are skipped. The second return value is the grand total.
func categoryTotals(fc FinancialContext) ([]categoryTotal, Amount) {
	var ordered []categoryTotal
	index := make(map[string]int)
	var grand Amount
	for _, line := range fc.Transactions {
		if line.Category == "" {
			continue
		}
		grand = Amount{grand.Add(line.Amount.Decimal)}
		if i, ok := index[line.Category]; ok {
			ordered[i].Total = Amount{ordered[i].Total.Add(line.Amount.Decimal)}
			continue
		}
		index[line.Category] = len(ordered)
		ordered = append(ordered, categoryTotal{Name: line.Category, Total: line.Amount})
	}
	return ordered, grand
}

func generateGreeting(FinancialContext) string {
	return "Hello! I'm your Budgetwise financial assistant. " +
		"Ask me about your spending, savings, budget, or investments and I'll break it down for you."
}

func generateOffTopic(FinancialContext) string {
	return "I can only help with questions about your finances. " +
		"Try asking where your money goes, how to save more, or how to plan a budget."
}

func generateCategoryBreakdown(fc FinancialContext) string {
	totals, _ := categoryTotals(fc)

	var b strings.Builder
	b.WriteString("Category-wise Spending Breakdown:\n")
	if len(totals) == 0 {
		b.WriteString("- No categorized transactions recorded yet.\n")
	}
	var top *categoryTotal
	for i := range totals {
		ct := &totals[i]
		b.WriteString("- " + ct.Name + ": " + inr(ct.Total) +
			" (" + percentOf(ct.Total, fc.TotalExpenses).StringFixed(1) + "% of expenses)\n")
		if top == nil || ct.Total.GreaterThan(top.Total.Decimal) {
			top = ct
		}
	}

	b.WriteString("Overall:\n")
	b.WriteString("- Total Expenses: " + inr(fc.TotalExpenses) +
		" (" + percentOf(fc.TotalExpenses, fc.TotalIncome).StringFixed(1) + "% of income)\n")
	b.WriteString("- Net Balance: " + inr(fc.NetBalance) + "\n")

	if top != nil {
		b.WriteString("Top Spending Category:\n")
		b.WriteString("- " + top.Name + " at " + inr(top.Total) + "\n")
		b.WriteString("- Keep an eye on this category to stay within budget.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func generateOverspendingAnalysis(fc FinancialContext) string {
	totals, _ := categoryTotals(fc)

	var concerns, managed []string
	for _, ct := range totals {
		share := percentOf(ct.Total, fc.TotalIncome)
		// Food is a necessity and is never flagged, whatever its share.
		if share.GreaterThan(overspendShareThreshold) && !strings.EqualFold(ct.Name, "Food") {
			concerns = append(concerns, "- "+ct.Name+": "+inr(ct.Total)+
				" ("+share.StringFixed(1)+"% of income, above the 20% threshold)")
			continue
		}
		managed = append(managed, "- "+ct.Name+": "+inr(ct.Total)+
			" ("+share.StringFixed(1)+"% of income)")
	}

	var b strings.Builder
	b.WriteString("Overspending Analysis:\n")
	b.WriteString("Areas of Concern:\n")
	if len(concerns) == 0 {
		b.WriteString("- None. Your spending looks balanced across categories.\n")
	}
	for _, line := range concerns {
		b.WriteString(line + "\n")
	}
	b.WriteString("Well Managed:\n")
	if len(managed) == 0 {
		b.WriteString("- No categorized spending recorded yet.\n")
	}
	for _, line := range managed {
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func generateSavingPlan(fc FinancialContext) string {
	emergency := fraction(fc.NetBalance, 40, 100)
	investments := fraction(fc.NetBalance, 40, 100)
	discretionary := fraction(fc.NetBalance, 20, 100)
	target := fraction(fc.TotalExpenses, 6, 1)

	var b strings.Builder
	b.WriteString("Saving Plan:\n")
	b.WriteString("- Monthly Surplus: " + inr(fc.NetBalance) + "\n")
	b.WriteString("Allocation:\n")
	b.WriteString("- Emergency Fund: " + inr(emergency) + " (40%)\n")
	b.WriteString("- Investments: " + inr(investments) + " (40%)\n")
	b.WriteString("- Discretionary: " + inr(discretionary) + " (20%)\n")
	b.WriteString("Emergency Fund Target:\n")
	b.WriteString("- Target (6 months of expenses): " + inr(target) + "\n")
	if emergency.IsPositive() {
		months := target.Div(emergency.Decimal).Ceil()
		b.WriteString("- Months to reach target: " + months.String() + "\n")
	} else {
		b.WriteString("- Target not achievable at the current savings rate.\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func generateInvestmentAdvice(fc FinancialContext) string {
	available := fraction(fc.NetBalance, 60, 100)
	sip := fraction(available, 60, 100)
	ppf := fraction(available, 30, 100)
	elss := fraction(available, 10, 100)

	var b strings.Builder
	b.WriteString("Investment Plan:\n")
	b.WriteString("- Available to Invest (60% of net balance): " + inr(available) + "\n")
	b.WriteString("Suggested Split:\n")
	b.WriteString("- SIP (Mutual Funds): " + inr(sip) + " (60%)\n")
	b.WriteString("- PPF: " + inr(ppf) + " (30%)\n")
	if elss.GreaterThanOrEqual(elssMinimumAllocation) {
		b.WriteString("- ELSS (Tax Saving): " + inr(elss) + " (10%)\n")
	}
	b.WriteString("Projection:\n")
	b.WriteString("- Estimated SIP value after 10 years at 12% annual returns: " +
		inr(projectSIPValue(sip)) + "\n")
	return strings.TrimRight(b.String(), "\n")
}

// projectSIPValue returns the future value of a monthly SIP after ten
// years at a nominal 12% annual return, compounded monthly:
// FV = P * ((1+i)^n - 1) / i * (1+i) with i = 1% and n = 120.
func projectSIPValue(monthly Amount) Amount {
	rate := decimal.NewFromFloat(0.01)
	onePlus := decimal.NewFromInt(1).Add(rate)
	growth := onePlus.Pow(decimal.NewFromInt(120))
	factor := growth.Sub(decimal.NewFromInt(1)).Div(rate).Mul(onePlus)
	return Amount{monthly.Mul(factor).Round(0)}
}

func generateBudgetPlan(fc FinancialContext) string {
	totals, _ := categoryTotals(fc)
	emergency := fraction(fc.NetBalance, 40, 100)
	investments := fraction(fc.NetBalance, 60, 100)

	var b strings.Builder
	b.WriteString("Monthly Budget Plan:\n")
	b.WriteString("- Income: " + inr(fc.TotalIncome) + "\n")
	b.WriteString("- Expenses: " + inr(fc.TotalExpenses) +
		" (" + percentOf(fc.TotalExpenses, fc.TotalIncome).StringFixed(1) + "% of income)\n")
	b.WriteString("Category Budgets:\n")
	if len(totals) == 0 {
		b.WriteString("- No categorized transactions recorded yet.\n")
	}
	for _, ct := range totals {
		b.WriteString("- " + ct.Name + ": " + inr(ct.Total) +
			" (" + percentOf(ct.Total, fc.TotalExpenses).StringFixed(1) + "% of expenses)\n")
	}
	b.WriteString("Savings Split:\n")
	b.WriteString("- Emergency Fund: " + inr(emergency) + " (40%)\n")
	b.WriteString("- Investments: " + inr(investments) + " (60%)\n")
	return strings.TrimRight(b.String(), "\n")
}

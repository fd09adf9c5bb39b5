package budgetwise

import "strings"

// RenderFinancialSummary builds the textual snapshot the advisory pipeline
// consumes, from the stored transactions. Its output round-trips through
// ParseFinancialContext.
func (c *Core) RenderFinancialSummary() (string, error) {
	income, expenses, err := c.transactionTotals()
	if err != nil {
		return "", err
	}
	net := Amount{income.Sub(expenses.Decimal)}

	// The detail list is capped; the totals above cover every row.
	details, err := c.GetTransactions(TransactionFilter{Type: "expense", Limit: 500})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Financial Summary:\n")
	b.WriteString(labelTotalIncome + " " + inr(income) + "\n")
	b.WriteString(labelTotalExpenses + " " + inr(expenses) + "\n")
	b.WriteString(labelNetBalance + " " + inr(net) + "\n")
	b.WriteString("\n" + labelTransactionDetails + "\n")
	for _, t := range details {
		b.WriteString("- " + t.Description + " (" + t.Category + " - " + inr(t.Amount) + ")\n")
	}
	return b.String(), nil
}

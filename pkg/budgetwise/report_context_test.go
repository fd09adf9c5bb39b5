package budgetwise

import "testing"

const sampleSummary = `Financial Summary:
Total Income: ₹80000
Total Expenses: ₹50000
Net Balance: ₹30000

Transaction Details:
- Grocery shopping (Food - ₹8000)
- Flat rent (Rent - ₹20000)
- New headphones (Shopping - ₹12,000)
- Dining out (Food - ₹4000)
`

func TestParseFinancialContext(t *testing.T) {
	t.Parallel()

	fc, err := ParseFinancialContext(sampleSummary)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, fc.TotalIncome, 80000, "total income")
	assertAmount(t, fc.TotalExpenses, 50000, "total expenses")
	assertAmount(t, fc.NetBalance, 30000, "net balance")

	if len(fc.Transactions) != 4 {
		t.Fatalf("expected 4 transaction lines, got %d", len(fc.Transactions))
	}
	first := fc.Transactions[0]
	if first.Description != "Grocery shopping" || first.Category != "Food" {
		t.Fatalf("unexpected first transaction: %+v", first)
	}
	assertAmount(t, first.Amount, 8000, "first amount")
	// Thousands separators are stripped before parsing.
	assertAmount(t, fc.Transactions[2].Amount, 12000, "separator amount")
	// Source order is preserved.
	if fc.Transactions[3].Description != "Dining out" {
		t.Fatalf("expected source order preserved, got %+v", fc.Transactions)
	}
}

func TestParseFinancialContextMissingSectionsDefault(t *testing.T) {
	t.Parallel()

	fc, err := ParseFinancialContext("Total Expenses: ₹500\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fc.TotalIncome.IsZero() {
		t.Fatalf("missing income should default to zero, got %s", fc.TotalIncome.String())
	}
	if !fc.NetBalance.IsZero() {
		t.Fatalf("missing balance should default to zero, got %s", fc.NetBalance.String())
	}
	if len(fc.Transactions) != 0 {
		t.Fatalf("missing section should yield no transactions, got %d", len(fc.Transactions))
	}

	fc, err = ParseFinancialContext("")
	if err != nil {
		t.Fatalf("empty text must parse: %v", err)
	}
	if !fc.TotalExpenses.IsZero() || len(fc.Transactions) != 0 {
		t.Fatalf("empty text should yield defaults, got %+v", fc)
	}
}

func TestParseFinancialContextThousandsSeparator(t *testing.T) {
	t.Parallel()

	fc, err := ParseFinancialContext("Total Income:₹50,000\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, fc.TotalIncome, 50000, "total income")
}

func TestParseFinancialContextMojibakeCurrency(t *testing.T) {
	t.Parallel()

	fc, err := ParseFinancialContext("Total Income: â‚¹21,500\nTransaction Details:\n- Cab fare (Travel - â‚¹350)\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertAmount(t, fc.TotalIncome, 21500, "total income")
	if len(fc.Transactions) != 1 || fc.Transactions[0].Category != "Travel" {
		t.Fatalf("unexpected transactions: %+v", fc.Transactions)
	}
	assertAmount(t, fc.Transactions[0].Amount, 350, "mojibake amount")
}

func TestParseFinancialContextMalformedNumberFails(t *testing.T) {
	t.Parallel()

	_, err := ParseFinancialContext("Total Income: twelve lakh\n")
	if err == nil {
		t.Fatal("expected malformed income to fail")
	}
	if !IsErrorCode(err, ErrCodeMalformedContext) {
		t.Fatalf("expected MALFORMED_CONTEXT, got %v", err)
	}

	_, err = ParseFinancialContext("Net Balance: ₹\n")
	if !IsErrorCode(err, ErrCodeMalformedContext) {
		t.Fatalf("expected MALFORMED_CONTEXT for empty value, got %v", err)
	}
}

func TestParseTransactionLineVariants(t *testing.T) {
	t.Parallel()

	line := parseTransactionLine("Monthly SIP (Investments - ₹5,000)")
	if line.Category != "Investments" || line.Description != "Monthly SIP" {
		t.Fatalf("unexpected line: %+v", line)
	}
	assertAmount(t, line.Amount, 5000, "line amount")

	// Nested parentheses: category comes from the last group.
	line = parseTransactionLine("Dinner (birthday) treat (Food - ₹900)")
	if line.Category != "Food" {
		t.Fatalf("expected Food from last group, got %+v", line)
	}

	// Lines off the canonical form keep raw text and no category.
	line = parseTransactionLine("Opening balance adjustment")
	if line.Category != "" || line.Raw != "Opening balance adjustment" {
		t.Fatalf("unexpected fallback line: %+v", line)
	}
	line = parseTransactionLine("Weird entry (Food: ₹200)")
	if line.Category != "" {
		t.Fatalf("missing separator should not parse, got %+v", line)
	}
}

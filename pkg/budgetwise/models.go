package budgetwise

// TransactionTypes lists the accepted transaction directions.
var TransactionTypes = []string{"income", "expense"}

// Transaction represents one recorded income or expense entry.
type Transaction struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      Amount  `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	CreatedAt   *string `json:"created_at"`
}

// AddTransactionRequest defines inputs to add a transaction.
type AddTransactionRequest struct {
	Description string `json:"description"`
	Amount      Amount `json:"amount"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Type        string `json:"type"`
}

// TransactionFilter controls transaction queries.
type TransactionFilter struct {
	Type      string
	Category  string
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

// Goal represents a savings goal with progress tracking.
type Goal struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	TargetAmount Amount  `json:"target_amount"`
	SavedAmount  Amount  `json:"saved_amount"`
	Deadline     *string `json:"deadline"`
	CreatedAt    *string `json:"created_at"`
}

// GoalRequest defines inputs to create or update a goal.
type GoalRequest struct {
	Name         string  `json:"name"`
	TargetAmount Amount  `json:"target_amount"`
	SavedAmount  Amount  `json:"saved_amount"`
	Deadline     *string `json:"deadline"`
}

// Profile holds the account holder's display settings.
type Profile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Currency string `json:"currency"`
}

// TransactionLine is one free-text transaction entry from a financial
// summary, in the canonical form "<description> (<Category> - ₹<amount>)".
// Lines that do not match the canonical form keep only Raw; their Category
// is empty and they are excluded from category grouping.
type TransactionLine struct {
	Raw         string `json:"raw"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      Amount `json:"amount"`
}

// FinancialContext is the parsed snapshot of a user's finances backing one
// advisory request. Numeric fields default to zero and Transactions to empty
// when the source text omits them.
type FinancialContext struct {
	TotalIncome   Amount            `json:"total_income"`
	TotalExpenses Amount            `json:"total_expenses"`
	NetBalance    Amount            `json:"net_balance"`
	Transactions  []TransactionLine `json:"transactions"`
}

// AdvisoryResult is the structured output of the advice pipeline.
type AdvisoryResult struct {
	Insight        string `json:"insight"`
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
}

// Advisory result categories.
const (
	CategorySaving         = "Saving"
	CategorySpendingAdvice = "Spending"
	CategoryBudget         = "Budget"
	CategoryInvestment     = "Investment"
	CategoryDebt           = "Debt Management"
	CategoryGeneral        = "General"
	CategoryError          = "Error"
)

// InsightRequest carries one advisory call. Context is the rendered
// financial summary; when empty the orchestrator renders it from the store.
type InsightRequest struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

// Insight is a generated advisory result with its classification metadata.
type Insight struct {
	ID             int64  `json:"id"`
	Query          string `json:"query"`
	Intent         string `json:"intent"`
	Insight        string `json:"insight"`
	Category       string `json:"category"`
	Recommendation string `json:"recommendation"`
	Model          string `json:"model"`
	CreatedAt      string `json:"created_at"`
}

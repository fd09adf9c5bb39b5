package budgetwise

import (
	"strings"
	"time"
)

// AddTransaction inserts a new transaction and returns its ID.
func (c *Core) AddTransaction(req AddTransactionRequest) (int64, error) {
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.Type = strings.ToLower(strings.TrimSpace(req.Type))
	req.Date = strings.TrimSpace(req.Date)

	if req.Description == "" {
		return 0, NewError(ErrCodeInvalidInput, "description is required")
	}
	if req.Category == "" {
		return 0, NewError(ErrCodeInvalidInput, "category is required")
	}
	if !contains(TransactionTypes, req.Type) {
		return 0, NewError(ErrCodeInvalidInput, "type must be income or expense")
	}
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return 0, NewError(ErrCodeValidation, "amount must be positive")
	}
	if req.Date == "" {
		req.Date = todayISO()
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return 0, WrapError(ErrCodeValidation, "date must be YYYY-MM-DD", err)
	}

	res, err := c.db.Exec(
		`INSERT INTO transactions (description, amount, category, txn_date, txn_type)
		 VALUES (?, ?, ?, ?, ?)`,
		req.Description, req.Amount, req.Category, req.Date, req.Type,
	)
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "insert transaction", err)
	}
	return res.LastInsertId()
}

// GetTransactions lists transactions matching the filter, newest first.
func (c *Core) GetTransactions(filter TransactionFilter) ([]Transaction, error) {
	query := `SELECT id, description, amount, category, txn_date, txn_type, created_at
	          FROM transactions WHERE 1=1`
	var args []any
	if filter.Type != "" {
		query += " AND txn_type = ?"
		args = append(args, strings.ToLower(filter.Type))
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.StartDate != "" {
		query += " AND txn_date >= ?"
		args = append(args, filter.StartDate)
	}
	if filter.EndDate != "" {
		query += " AND txn_date <= ?"
		args = append(args, filter.EndDate)
	}
	query += " ORDER BY txn_date DESC, id DESC"
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, max(filter.Offset, 0))

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query transactions", err)
	}
	defer rows.Close()

	results := []Transaction{}
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.Description, &t.Amount, &t.Category, &t.Date, &t.Type, &t.CreatedAt); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan transaction row", err)
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "iterate transactions", err)
	}
	return results, nil
}

// transactionTotals sums amounts per type across every stored row, so
// totals stay exact no matter how large the table grows.
func (c *Core) transactionTotals() (income, expenses Amount, err error) {
	rows, err := c.db.Query(
		`SELECT txn_type, COALESCE(SUM(amount), 0) FROM transactions GROUP BY txn_type`)
	if err != nil {
		return Amount{}, Amount{}, WrapError(ErrCodeDatabase, "sum transactions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var total Amount
		if err := rows.Scan(&kind, &total); err != nil {
			return Amount{}, Amount{}, WrapError(ErrCodeDatabase, "scan transaction total", err)
		}
		switch kind {
		case "income":
			income = total
		case "expense":
			expenses = total
		}
	}
	if err := rows.Err(); err != nil {
		return Amount{}, Amount{}, WrapError(ErrCodeDatabase, "iterate transaction totals", err)
	}
	return income, expenses, nil
}

// DeleteTransaction removes a transaction by ID.
func (c *Core) DeleteTransaction(id int64) error {
	res, err := c.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return WrapError(ErrCodeDatabase, "delete transaction", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return WrapError(ErrCodeDatabase, "delete transaction", err)
	}
	if affected == 0 {
		return NewError(ErrCodeNotFound, "transaction not found")
	}
	return nil
}

func todayISO() string {
	return time.Now().Format("2006-01-02")
}

func contains(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}

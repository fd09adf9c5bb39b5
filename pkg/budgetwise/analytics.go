package budgetwise

// CategorySpending is one slice of the expense-by-category report. Share
// is the category's percentage of total expenses, rounded to one decimal.
type CategorySpending struct {
	Category string `json:"category"`
	Total    Amount `json:"total"`
	Share    Amount `json:"share"`
}

// GetCategorySpending aggregates expenses by category, largest first.
// Income rows are excluded.
func (c *Core) GetCategorySpending() ([]CategorySpending, error) {
	rows, err := c.db.Query(
		`SELECT category, COALESCE(SUM(amount), 0) AS total
		 FROM transactions WHERE txn_type = 'expense'
		 GROUP BY category ORDER BY total DESC, category ASC`)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "aggregate category spending", err)
	}
	defer rows.Close()

	results := []CategorySpending{}
	var grand Amount
	for rows.Next() {
		var item CategorySpending
		if err := rows.Scan(&item.Category, &item.Total); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan category total", err)
		}
		grand = Amount{grand.Add(item.Total.Decimal)}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "iterate category totals", err)
	}

	for i := range results {
		results[i].Share = Amount{percentOf(results[i].Total, grand).Round(1)}
	}
	return results, nil
}

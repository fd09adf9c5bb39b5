package budgetwise

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateGoal inserts a new savings goal and returns its ID.
func (c *Core) CreateGoal(req GoalRequest) (int64, error) {
	if err := validateGoalRequest(&req); err != nil {
		return 0, err
	}

	res, err := c.db.Exec(
		`INSERT INTO goals (name, target_amount, saved_amount, deadline) VALUES (?, ?, ?, ?)`,
		req.Name, req.TargetAmount, req.SavedAmount, req.Deadline,
	)
	if err != nil {
		return 0, WrapError(ErrCodeDatabase, "insert goal", err)
	}
	return res.LastInsertId()
}

// GetGoals lists all goals, newest first.
func (c *Core) GetGoals() ([]Goal, error) {
	rows, err := c.db.Query(
		`SELECT id, name, target_amount, saved_amount, deadline, created_at
		 FROM goals ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query goals", err)
	}
	defer rows.Close()

	results := []Goal{}
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.Deadline, &g.CreatedAt); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan goal row", err)
		}
		results = append(results, g)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "iterate goals", err)
	}
	return results, nil
}

// GetGoal fetches one goal by ID.
func (c *Core) GetGoal(id int64) (*Goal, error) {
	var g Goal
	err := c.db.QueryRow(
		`SELECT id, name, target_amount, saved_amount, deadline, created_at
		 FROM goals WHERE id = ?`, id,
	).Scan(&g.ID, &g.Name, &g.TargetAmount, &g.SavedAmount, &g.Deadline, &g.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, NewError(ErrCodeNotFound, "goal not found")
	}
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query goal", err)
	}
	return &g, nil
}

// UpdateGoal replaces a goal's fields.
func (c *Core) UpdateGoal(id int64, req GoalRequest) error {
	if err := validateGoalRequest(&req); err != nil {
		return err
	}

	res, err := c.db.Exec(
		`UPDATE goals SET name = ?, target_amount = ?, saved_amount = ?, deadline = ? WHERE id = ?`,
		req.Name, req.TargetAmount, req.SavedAmount, req.Deadline, id,
	)
	if err != nil {
		return WrapError(ErrCodeDatabase, "update goal", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return WrapError(ErrCodeDatabase, "update goal", err)
	}
	if affected == 0 {
		return NewError(ErrCodeNotFound, "goal not found")
	}
	return nil
}

// DeleteGoal removes a goal by ID.
func (c *Core) DeleteGoal(id int64) error {
	res, err := c.db.Exec("DELETE FROM goals WHERE id = ?", id)
	if err != nil {
		return WrapError(ErrCodeDatabase, "delete goal", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return WrapError(ErrCodeDatabase, "delete goal", err)
	}
	if affected == 0 {
		return NewError(ErrCodeNotFound, "goal not found")
	}
	return nil
}

// ContributeToGoal adds to a goal's saved amount and records the
// contribution as a Savings expense so the summary reflects it.
func (c *Core) ContributeToGoal(id int64, amount Amount) (*Goal, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, NewError(ErrCodeValidation, "contribution must be positive")
	}

	goal, err := c.GetGoal(id)
	if err != nil {
		return nil, err
	}

	tx, err := c.db.Begin()
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "begin contribution", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	newSaved := Amount{goal.SavedAmount.Add(amount.Decimal)}
	if _, err := tx.Exec("UPDATE goals SET saved_amount = ? WHERE id = ?", newSaved, id); err != nil {
		return nil, WrapError(ErrCodeDatabase, "update goal progress", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO transactions (description, amount, category, txn_date, txn_type)
		 VALUES (?, ?, ?, ?, ?)`,
		fmt.Sprintf("Contribution to goal: %s", goal.Name), amount, "Savings", todayISO(), "expense",
	); err != nil {
		return nil, WrapError(ErrCodeDatabase, "record contribution transaction", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "commit contribution", err)
	}

	goal.SavedAmount = newSaved
	return goal, nil
}

func validateGoalRequest(req *GoalRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return NewError(ErrCodeInvalidInput, "name is required")
	}
	if req.TargetAmount.IsNegative() || req.TargetAmount.IsZero() {
		return NewError(ErrCodeValidation, "target_amount must be positive")
	}
	if req.SavedAmount.IsNegative() {
		return NewError(ErrCodeValidation, "saved_amount cannot be negative")
	}
	return nil
}

package mobile

import (
	"context"
	"encoding/json"

	"budgetwise/pkg/budgetwise"
)

// Core wraps the Budgetwise core for gomobile bindings. All structured
// data crosses the boundary as JSON strings.
type Core struct {
	core *budgetwise.Core
}

// Open initializes the core with a database path.
func Open(dbPath string) (*Core, error) {
	core, err := budgetwise.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return &Core{core: core}, nil
}

// Close releases resources.
func (c *Core) Close() error {
	if c == nil || c.core == nil {
		return nil
	}
	return c.core.Close()
}

// GetTransactionsJSON queries transactions with optional filter JSON.
func (c *Core) GetTransactionsJSON(filterJSON string) (string, error) {
	filter := budgetwise.TransactionFilter{}
	if filterJSON != "" {
		var payload transactionFilterPayload
		if err := json.Unmarshal([]byte(filterJSON), &payload); err != nil {
			return "", err
		}
		filter = budgetwise.TransactionFilter{
			Type:      payload.Type,
			Category:  payload.Category,
			StartDate: payload.StartDate,
			EndDate:   payload.EndDate,
			Limit:     payload.Limit,
			Offset:    payload.Offset,
		}
	}
	data, err := c.core.GetTransactions(filter)
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// AddTransactionJSON creates a transaction from JSON and returns id JSON.
func (c *Core) AddTransactionJSON(payloadJSON string) (string, error) {
	var payload budgetwise.AddTransactionRequest
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return "", err
	}
	id, err := c.core.AddTransaction(payload)
	if err != nil {
		return "", err
	}
	return marshalJSON(map[string]any{"id": id})
}

// DeleteTransaction deletes a transaction by id.
func (c *Core) DeleteTransaction(id int64) error {
	return c.core.DeleteTransaction(id)
}

// GetGoalsJSON returns all savings goals as JSON.
func (c *Core) GetGoalsJSON() (string, error) {
	data, err := c.core.GetGoals()
	if err != nil {
		return "", err
	}
	return marshalJSON(data)
}

// CreateGoalJSON creates a goal from JSON and returns id JSON.
func (c *Core) CreateGoalJSON(payloadJSON string) (string, error) {
	var payload budgetwise.GoalRequest
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return "", err
	}
	id, err := c.core.CreateGoal(payload)
	if err != nil {
		return "", err
	}
	return marshalJSON(map[string]any{"id": id})
}

// ContributeToGoalJSON records a goal contribution and returns the
// updated goal as JSON.
func (c *Core) ContributeToGoalJSON(id int64, amount float64) (string, error) {
	goal, err := c.core.ContributeToGoal(id, budgetwise.NewAmount(amount))
	if err != nil {
		return "", err
	}
	return marshalJSON(goal)
}

// GetProfileJSON returns the profile as JSON.
func (c *Core) GetProfileJSON() (string, error) {
	profile, err := c.core.GetProfile()
	if err != nil {
		return "", err
	}
	return marshalJSON(profile)
}

// GenerateInsightJSON runs one advisory request from JSON and returns
// the insight as JSON.
func (c *Core) GenerateInsightJSON(payloadJSON string) (string, error) {
	var payload budgetwise.InsightRequest
	if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
		return "", err
	}
	insight, err := c.core.GenerateInsight(context.Background(), payload)
	if err != nil {
		return "", err
	}
	return marshalJSON(insight)
}

// GetCategorySpendingJSON returns the expense-by-category report as JSON.
func (c *Core) GetCategorySpendingJSON() (string, error) {
	report, err := c.core.GetCategorySpending()
	if err != nil {
		return "", err
	}
	return marshalJSON(report)
}

// GetSummary renders the financial summary text.
func (c *Core) GetSummary() (string, error) {
	return c.core.RenderFinancialSummary()
}

func marshalJSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type transactionFilterPayload struct {
	Type      string `json:"type"`
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

package budgetwise

import (
	"context"
	"fmt"
	"strings"
)

// deterministicModelName marks insights produced by the rule-based
// generators rather than the remote model.
const deterministicModelName = "rules"

// GenerateInsight runs one advisory request: parse the financial context,
// classify the query, then answer deterministically or through the remote
// gateway. The returned Insight is always well-formed; the only hard
// failure is a malformed (not missing) numeric field in the context.
func (c *Core) GenerateInsight(ctx context.Context, req InsightRequest) (*Insight, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, NewError(ErrCodeInvalidInput, "query is required")
	}

	contextText := req.Context
	if strings.TrimSpace(contextText) == "" {
		rendered, err := c.RenderFinancialSummary()
		if err != nil {
			return nil, err
		}
		contextText = rendered
	}

	fc, err := ParseFinancialContext(contextText)
	if err != nil {
		return nil, err
	}

	intent := ClassifyIntent(query)

	var result AdvisoryResult
	model := deterministicModelName
	if advisor, ok := deterministicAdvisors[intent]; ok {
		result = advisor.run(fc)
	} else {
		result = c.gateway.Invoke(ctx, query, contextText)
		model = c.gateway.Model()
	}

	insight := &Insight{
		Query:          query,
		Intent:         string(intent),
		Insight:        result.Insight,
		Category:       result.Category,
		Recommendation: result.Recommendation,
		Model:          model,
	}
	if id, err := c.saveInsight(insight); err != nil {
		c.Logger().Warn("failed to save insight", "err", err)
	} else {
		insight.ID = id
	}
	return insight, nil
}

func (c *Core) saveInsight(insight *Insight) (int64, error) {
	res, err := c.db.Exec(
		`INSERT INTO insights (query, intent, insight, category, recommendation, model)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		insight.Query,
		insight.Intent,
		insight.Insight,
		insight.Category,
		insight.Recommendation,
		insight.Model,
	)
	if err != nil {
		return 0, fmt.Errorf("insert insight: %w", err)
	}
	return res.LastInsertId()
}

// GetInsightHistory returns up to limit recently generated insights,
// newest first.
func (c *Core) GetInsightHistory(limit int) ([]Insight, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := c.db.Query(
		`SELECT id, query, intent, insight, category, recommendation, model, created_at
		 FROM insights ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, WrapError(ErrCodeDatabase, "query insights", err)
	}
	defer rows.Close()

	results := []Insight{}
	for rows.Next() {
		var item Insight
		if err := rows.Scan(&item.ID, &item.Query, &item.Intent, &item.Insight,
			&item.Category, &item.Recommendation, &item.Model, &item.CreatedAt); err != nil {
			return nil, WrapError(ErrCodeDatabase, "scan insight row", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapError(ErrCodeDatabase, "iterate insights", err)
	}
	return results, nil
}

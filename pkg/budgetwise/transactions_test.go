package budgetwise

import "testing"

func TestAddTransaction(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	id, err := core.AddTransaction(AddTransactionRequest{
		Description: "Grocery shopping",
		Amount:      NewAmount(1250.50),
		Category:    "Food",
		Date:        "2026-08-15",
		Type:        "expense",
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a nonzero id")
	}

	txns, err := core.GetTransactions(TransactionFilter{})
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	got := txns[0]
	if got.Description != "Grocery shopping" {
		t.Errorf("description = %q", got.Description)
	}
	assertAmount(t, got.Amount, 1250.50, "stored amount")
	if got.Date != "2026-08-15" || got.Type != "expense" {
		t.Errorf("date/type = %q/%q", got.Date, got.Type)
	}
}

func TestAddTransactionDefaultsDate(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	id, err := core.AddTransaction(AddTransactionRequest{
		Description: "Salary",
		Amount:      NewAmount(80000),
		Category:    "Salary",
		Type:        "INCOME",
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	txns, err := core.GetTransactions(TransactionFilter{})
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if txns[0].ID != id || txns[0].Date != todayISO() {
		t.Errorf("expected today's date on transaction %d, got %q", id, txns[0].Date)
	}
	if txns[0].Type != "income" {
		t.Errorf("type should be lower-cased, got %q", txns[0].Type)
	}
}

func TestAddTransactionValidation(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	cases := []struct {
		name string
		req  AddTransactionRequest
		code ErrorCode
	}{
		{"missing description", AddTransactionRequest{Amount: NewAmount(10), Category: "Food", Type: "expense"}, ErrCodeInvalidInput},
		{"missing category", AddTransactionRequest{Description: "x", Amount: NewAmount(10), Type: "expense"}, ErrCodeInvalidInput},
		{"bad type", AddTransactionRequest{Description: "x", Amount: NewAmount(10), Category: "Food", Type: "transfer"}, ErrCodeInvalidInput},
		{"zero amount", AddTransactionRequest{Description: "x", Category: "Food", Type: "expense"}, ErrCodeValidation},
		{"negative amount", AddTransactionRequest{Description: "x", Amount: NewAmount(-5), Category: "Food", Type: "expense"}, ErrCodeValidation},
		{"bad date", AddTransactionRequest{Description: "x", Amount: NewAmount(10), Category: "Food", Type: "expense", Date: "15-08-2026"}, ErrCodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := core.AddTransaction(tc.req)
			if !IsErrorCode(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestGetTransactionsFilters(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	testTransaction(t, core, "Salary", 80000, "Salary", "income")
	testTransaction(t, core, "Rent", 20000, "Rent", "expense")
	testTransaction(t, core, "Groceries", 8000, "Food", "expense")
	testTransaction(t, core, "Dining out", 4000, "Food", "expense")

	expenses, err := core.GetTransactions(TransactionFilter{Type: "expense"})
	if err != nil {
		t.Fatalf("filter by type failed: %v", err)
	}
	if len(expenses) != 3 {
		t.Errorf("expected 3 expenses, got %d", len(expenses))
	}

	food, err := core.GetTransactions(TransactionFilter{Category: "Food"})
	if err != nil {
		t.Fatalf("filter by category failed: %v", err)
	}
	if len(food) != 2 {
		t.Errorf("expected 2 Food transactions, got %d", len(food))
	}

	limited, err := core.GetTransactions(TransactionFilter{Limit: 2})
	if err != nil {
		t.Fatalf("limited query failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 transactions with limit, got %d", len(limited))
	}

	none, err := core.GetTransactions(TransactionFilter{StartDate: "2027-01-01"})
	if err != nil {
		t.Fatalf("date filter failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no transactions after 2027-01-01, got %d", len(none))
	}
}

func TestGetTransactionsOrder(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	older, err := core.AddTransaction(AddTransactionRequest{
		Description: "Old rent", Amount: NewAmount(18000), Category: "Rent",
		Date: "2026-07-01", Type: "expense",
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}
	newer, err := core.AddTransaction(AddTransactionRequest{
		Description: "New rent", Amount: NewAmount(20000), Category: "Rent",
		Date: "2026-08-01", Type: "expense",
	})
	if err != nil {
		t.Fatalf("AddTransaction failed: %v", err)
	}

	txns, err := core.GetTransactions(TransactionFilter{})
	if err != nil {
		t.Fatalf("GetTransactions failed: %v", err)
	}
	if txns[0].ID != newer || txns[1].ID != older {
		t.Errorf("expected newest first, got ids %d, %d", txns[0].ID, txns[1].ID)
	}
}

func TestDeleteTransaction(t *testing.T) {
	core, cleanup := setupTestCore(t)
	defer cleanup()

	id := testTransaction(t, core, "Groceries", 8000, "Food", "expense")

	if err := core.DeleteTransaction(id); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	if err := core.DeleteTransaction(id); !IsErrorCode(err, ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND on second delete, got %v", err)
	}
}

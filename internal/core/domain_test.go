package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-03-09")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.ISO() != "2025-03-09" {
		t.Fatalf("round trip mismatch: %s", d.ISO())
	}
	if _, err := ParseDate("09/03/2025"); err == nil {
		t.Fatalf("expected error for wrong layout")
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1}).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Fatalf("expected error for zero")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Description: "Mercado",
		Amount:      Money{Cents: 1250},
		Category:    "Alimentação",
		Type:        Expense,
		Date:        NewDate(2025, 1, 10),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Description: "", Amount: Money{Cents: 1}, Category: "Outros", Type: Expense, Date: NewDate(2025, 1, 1)},
		{Description: "a", Amount: Money{Cents: 0}, Category: "Outros", Type: Expense, Date: NewDate(2025, 1, 1)},
		{Description: "a", Amount: Money{Cents: 1}, Category: "Outros", Type: "transfer", Date: NewDate(2025, 1, 1)},
		{Description: "a", Amount: Money{Cents: 1}, Category: "Salário", Type: Expense, Date: NewDate(2025, 1, 1)}, // income category on expense
		{Description: "a", Amount: Money{Cents: 1}, Category: "Outros", Type: Expense, Date: Date{}},
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}

	long := good
	long.Description = strings.Repeat("x", 201)
	if err := long.Validate(); !errors.Is(err, ErrLongDescription) {
		t.Fatalf("expected ErrLongDescription, got %v", err)
	}
}

func TestGoalValidate(t *testing.T) {
	good := FinancialGoal{Name: "Viagem", TargetAmount: Money{Cents: 100000}, Deadline: NewDate(2026, 1, 1), Color: "#10b981"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (FinancialGoal{Name: " ", TargetAmount: Money{Cents: 1}, Deadline: NewDate(2026, 1, 1)}).Validate(); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestUserDataJSONRoundTrip(t *testing.T) {
	blob := UserData{
		Transactions: []Transaction{{
			ID:          "t1",
			Description: "Salário",
			Amount:      Money{Cents: 500000},
			Category:    "Salário",
			Type:        Income,
			Date:        NewDate(2025, 2, 1),
		}},
		Goals: []FinancialGoal{{ID: "g1", Name: "Reserva", TargetAmount: Money{Cents: 1000000}, CurrentAmount: Money{Cents: 25000}, Deadline: NewDate(2026, 6, 1), Color: "#6366f1"}},
		Theme: DefaultTheme(),
	}
	raw, err := json.Marshal(blob)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back UserData
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Transactions[0].Amount.Cents != 500000 {
		t.Fatalf("amount lost in round trip: %d", back.Transactions[0].Amount.Cents)
	}
	if back.Transactions[0].Date.ISO() != "2025-02-01" {
		t.Fatalf("date lost in round trip: %s", back.Transactions[0].Date.ISO())
	}
}

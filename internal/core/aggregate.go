package core

import "math"

// Totals are the derived income/expense/balance figures for one user.
// All three are integer cents; Balance is always Income minus Expenses.
type Totals struct {
	IncomeCents  int64 `json:"incomeCents"`
	ExpenseCents int64 `json:"expenseCents"`
	BalanceCents int64 `json:"balanceCents"`
}

// DayPoint is one entry of the weekly dashboard series.
type DayPoint struct {
	Label        string `json:"label"`
	Date         string `json:"date"`
	IncomeCents  int64  `json:"incomeCents"`
	ExpenseCents int64  `json:"expenseCents"`
}

// weekdayShortPTBR maps time.Weekday to the abbreviated pt-BR weekday name.
var weekdayShortPTBR = [7]string{"dom.", "seg.", "ter.", "qua.", "qui.", "sex.", "sáb."}

// ComputeTotals derives the income, expense and balance totals from a
// transaction list in a single scan. The fixed monthly income is counted
// as income on top of income-type transactions.
func ComputeTotals(transactions []Transaction, monthlyIncomeCents int64) Totals {
	t := Totals{IncomeCents: monthlyIncomeCents}
	for _, tx := range transactions {
		switch tx.Type {
		case Income:
			t.IncomeCents += tx.Amount.Cents
		case Expense:
			t.ExpenseCents += tx.Amount.Cents
		}
	}
	t.BalanceCents = t.IncomeCents - t.ExpenseCents
	return t
}

// WeeklySeries builds the seven calendar days ending at ref (inclusive,
// oldest first) and sums transactions per type per day. Transactions are
// matched by exact date equality; days without transactions keep zero sums.
func WeeklySeries(transactions []Transaction, ref Date) []DayPoint {
	points := make([]DayPoint, 0, 7)
	for i := 6; i >= 0; i-- {
		day := ref.AddDays(-i)
		p := DayPoint{
			Label: weekdayShortPTBR[int(day.Weekday())],
			Date:  day.ISO(),
		}
		for _, tx := range transactions {
			if tx.Date.ISO() != p.Date {
				continue
			}
			switch tx.Type {
			case Income:
				p.IncomeCents += tx.Amount.Cents
			case Expense:
				p.ExpenseCents += tx.Amount.Cents
			}
		}
		points = append(points, p)
	}
	return points
}

// GoalProgress returns the completion percentage of a goal, clamped to
// [0,100]. A zero target or a non-finite ratio yields 0.
func GoalProgress(g FinancialGoal) float64 {
	if g.TargetAmount.Cents <= 0 {
		return 0
	}
	p := float64(g.CurrentAmount.Cents) / float64(g.TargetAmount.Cents) * 100
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// ExpenseByCategory sums expense-type transactions per category, used for
// the advice prompt breakdown. Order follows the fixed category set.
func ExpenseByCategory(transactions []Transaction) []CategoryAmount {
	sums := make(map[string]int64)
	for _, tx := range transactions {
		if tx.Type != Expense {
			continue
		}
		sums[tx.Category] += tx.Amount.Cents
	}
	var out []CategoryAmount
	for _, c := range ExpenseCategories {
		if cents, ok := sums[c]; ok {
			out = append(out, CategoryAmount{Name: c, Amount: Money{Cents: cents}})
		}
	}
	return out
}

// CategoryAmount pairs a category name with a summed amount.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

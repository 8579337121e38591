package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fbfinance/internal/accounts"
	"fbfinance/internal/core"
	"fbfinance/internal/session"
	"fbfinance/internal/store"
	"fbfinance/internal/userdata"
)

func newService(t *testing.T) (*FinanceService, *session.Manager, *userdata.Repository) {
	t.Helper()
	mem := store.NewMemory()
	dir := accounts.NewDirectory(mem)
	sess := session.NewManager(mem)
	repo := userdata.NewRepository(mem)
	return NewFinanceService(dir, sess, repo), sess, repo
}

func login(t *testing.T, sess *session.Manager, email string) {
	t.Helper()
	require.NoError(t, sess.Start(context.Background(), core.Profile{
		Name: "Ana", Email: email, Currency: core.DisplayCurrency,
	}))
}

func TestOperationsRequireSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	_, err := svc.AddTransaction(ctx, TransactionInput{})
	assert.ErrorIs(t, err, session.ErrNoSession)
	_, err = svc.State(ctx)
	assert.ErrorIs(t, err, session.ErrNoSession)
	_, err = svc.Dashboard(ctx, core.NewDate(2025, 5, 1))
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestAddTransactionWritesThrough(t *testing.T) {
	ctx := context.Background()
	svc, sess, repo := newService(t)
	login(t, sess, "ana@x.com")

	tx, err := svc.AddTransaction(ctx, TransactionInput{
		Description: "Mercado",
		AmountCents: 4500,
		Category:    "Alimentação",
		Type:        core.Expense,
		Date:        core.NewDate(2025, 5, 1),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, tx.ID)

	// The blob is already persisted, not just held in memory.
	blob, ok, err := repo.Load(ctx, "ana@x.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, blob.Transactions, 1)
	assert.Equal(t, tx.ID, blob.Transactions[0].ID)
}

func TestAddTransactionInsertsAtHead(t *testing.T) {
	ctx := context.Background()
	svc, sess, _ := newService(t)
	login(t, sess, "ana@x.com")

	d := core.NewDate(2025, 5, 1)
	first, err := svc.AddTransaction(ctx, TransactionInput{Description: "a", AmountCents: 100, Category: "Outros", Type: core.Expense, Date: d})
	require.NoError(t, err)
	second, err := svc.AddTransaction(ctx, TransactionInput{Description: "b", AmountCents: 200, Category: "Outros", Type: core.Expense, Date: d})
	require.NoError(t, err)

	blob, err := svc.State(ctx)
	require.NoError(t, err)
	require.Len(t, blob.Transactions, 2)
	assert.Equal(t, second.ID, blob.Transactions[0].ID)
	assert.Equal(t, first.ID, blob.Transactions[1].ID)
}

func TestAddTransactionValidation(t *testing.T) {
	ctx := context.Background()
	svc, sess, repo := newService(t)
	login(t, sess, "ana@x.com")

	d := core.NewDate(2025, 5, 1)
	cases := []TransactionInput{
		{Description: "", AmountCents: 100, Category: "Outros", Type: core.Expense, Date: d},
		{Description: "x", AmountCents: 0, Category: "Outros", Type: core.Expense, Date: d},
		{Description: "x", AmountCents: 100, Category: "Inexistente", Type: core.Expense, Date: d},
		{Description: "x", AmountCents: 100, Category: "Outros", Type: "other", Date: d},
	}
	for i, in := range cases {
		if _, err := svc.AddTransaction(ctx, in); err == nil {
			t.Fatalf("case %d expected validation error", i)
		}
	}

	// No state mutation happened on any failed attempt.
	blob, _, err := repo.Load(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Empty(t, blob.Transactions)
}

func TestDeleteTransactionKeepsOrder(t *testing.T) {
	ctx := context.Background()
	svc, sess, _ := newService(t)
	login(t, sess, "ana@x.com")

	d := core.NewDate(2025, 5, 1)
	var ids []string
	for _, desc := range []string{"a", "b", "c"} {
		tx, err := svc.AddTransaction(ctx, TransactionInput{Description: desc, AmountCents: 100, Category: "Outros", Type: core.Expense, Date: d})
		require.NoError(t, err)
		ids = append(ids, tx.ID)
	}

	// Head order is c, b, a; delete the middle one.
	require.NoError(t, svc.DeleteTransaction(ctx, ids[1]))

	blob, err := svc.State(ctx)
	require.NoError(t, err)
	require.Len(t, blob.Transactions, 2)
	assert.Equal(t, ids[2], blob.Transactions[0].ID)
	assert.Equal(t, ids[0], blob.Transactions[1].ID)

	assert.ErrorIs(t, svc.DeleteTransaction(ctx, "missing"), ErrNotFound)
}

func TestGoalDepositScenario(t *testing.T) {
	ctx := context.Background()
	svc, sess, _ := newService(t)
	login(t, sess, "ana@x.com")

	g, err := svc.AddGoal(ctx, GoalInput{
		Name:         "Reserva",
		TargetCents:  100000,
		CurrentCents: 25000,
		Deadline:     core.NewDate(2026, 1, 1),
	})
	require.NoError(t, err)

	// Two +100,00 deposits.
	_, err = svc.ApplyDeposit(ctx, g.ID, 10000)
	require.NoError(t, err)
	updated, err := svc.ApplyDeposit(ctx, g.ID, 10000)
	require.NoError(t, err)
	assert.Equal(t, int64(45000), updated.CurrentAmount.Cents)
	assert.Equal(t, 45.0, core.GoalProgress(updated))

	_, err = svc.ApplyDeposit(ctx, g.ID, 0)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)
	_, err = svc.ApplyDeposit(ctx, "missing", 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGoal(t *testing.T) {
	ctx := context.Background()
	svc, sess, _ := newService(t)
	login(t, sess, "ana@x.com")

	g, err := svc.AddGoal(ctx, GoalInput{Name: "Viagem", TargetCents: 1000, Deadline: core.NewDate(2026, 1, 1)})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGoal(ctx, g.ID))
	assert.ErrorIs(t, svc.DeleteGoal(ctx, g.ID), ErrNotFound)
}

func TestSetTheme(t *testing.T) {
	ctx := context.Background()
	svc, sess, repo := newService(t)
	login(t, sess, "ana@x.com")

	require.NoError(t, svc.SetTheme(ctx, core.ThemeConfig{PrimaryColor: "#10b981", DarkMode: true}))
	blob, _, err := repo.Load(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, "#10b981", blob.Theme.PrimaryColor)
	assert.True(t, blob.Theme.DarkMode)
}

func TestUpdateProfileRefreshesSession(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	dir := accounts.NewDirectory(mem)
	sess := session.NewManager(mem)
	repo := userdata.NewRepository(mem)
	svc := NewFinanceService(dir, sess, repo)

	require.NoError(t, dir.Register(ctx, "Ana", "ana@x.com", "pw123"))
	profile, err := dir.Authenticate(ctx, "ana@x.com", "pw123")
	require.NoError(t, err)
	require.NoError(t, sess.Start(ctx, profile))

	income := int64(500000)
	updated, err := svc.UpdateProfile(ctx, accounts.ProfilePatch{MonthlyIncomeCents: &income})
	require.NoError(t, err)
	assert.Equal(t, int64(500000), updated.MonthlyIncomeCents)

	// The change is visible in the session pointer and in the dashboard math.
	cur, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, int64(500000), cur.MonthlyIncomeCents)

	d, err := svc.Dashboard(ctx, core.NewDate(2025, 5, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(500000), d.Totals.IncomeCents)
	assert.Equal(t, int64(500000), d.Totals.BalanceCents)
}

func TestDashboardShape(t *testing.T) {
	ctx := context.Background()
	svc, sess, _ := newService(t)
	login(t, sess, "ana@x.com")

	ref := core.NewDate(2025, 5, 10)
	_, err := svc.AddTransaction(ctx, TransactionInput{Description: "Salário", AmountCents: 100000, Category: "Salário", Type: core.Income, Date: ref})
	require.NoError(t, err)
	_, err = svc.AddTransaction(ctx, TransactionInput{Description: "Mercado", AmountCents: 30000, Category: "Alimentação", Type: core.Expense, Date: ref})
	require.NoError(t, err)

	d, err := svc.Dashboard(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), d.Totals.IncomeCents)
	assert.Equal(t, int64(30000), d.Totals.ExpenseCents)
	assert.Equal(t, int64(70000), d.Totals.BalanceCents)
	require.Len(t, d.Week, 7)
	assert.Equal(t, int64(100000), d.Week[6].IncomeCents)
	assert.Equal(t, int64(30000), d.Week[6].ExpenseCents)
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	svc, sess, _ := newService(t)
	login(t, sess, "ana@x.com")

	snap, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", snap.Profile.Email)
	assert.Equal(t, core.DefaultTheme(), snap.Theme)
}

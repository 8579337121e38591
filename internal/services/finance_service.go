package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"fbfinance/internal/accounts"
	"fbfinance/internal/advice"
	"fbfinance/internal/core"
	applog "fbfinance/internal/log"
	"fbfinance/internal/session"
	"fbfinance/internal/userdata"
)

// ErrNotFound is returned by delete/deposit operations when no item with the
// given id exists in the active user's blob.
var ErrNotFound = errors.New("item not found")

// FinanceService orchestrates all session-scoped state: it loads the active
// user's blob once per operation, applies the mutation in memory, and
// synchronously writes the whole blob back before returning. No batching,
// no coalescing; the data scale is single-user-sized.
type FinanceService struct {
	directory *accounts.Directory
	sessions  *session.Manager
	repo      *userdata.Repository
}

func NewFinanceService(d *accounts.Directory, s *session.Manager, r *userdata.Repository) *FinanceService {
	return &FinanceService{directory: d, sessions: s, repo: r}
}

// TransactionInput carries the user-supplied fields of a new transaction.
type TransactionInput struct {
	Description string
	AmountCents int64
	Category    string
	Type        core.TransactionType
	Date        core.Date
}

// GoalInput carries the user-supplied fields of a new goal.
type GoalInput struct {
	Name         string
	TargetCents  int64
	CurrentCents int64
	Deadline     core.Date
	Color        string
}

func (s *FinanceService) activeEmail() (string, error) {
	p, ok := s.sessions.Current()
	if !ok {
		return "", session.ErrNoSession
	}
	return p.Email, nil
}

func (s *FinanceService) load(ctx context.Context) (string, core.UserData, error) {
	email, err := s.activeEmail()
	if err != nil {
		return "", core.UserData{}, err
	}
	blob, _, err := s.repo.Load(ctx, email)
	if err != nil {
		return "", core.UserData{}, err
	}
	return email, blob, nil
}

// State returns the active user's full blob.
func (s *FinanceService) State(ctx context.Context) (core.UserData, error) {
	_, blob, err := s.load(ctx)
	return blob, err
}

// AddTransaction validates the input, assigns a generated id, and inserts
// the transaction at the head of the list.
func (s *FinanceService) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	email, blob, err := s.load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		ID:          uuid.NewString(),
		Description: strings.TrimSpace(in.Description),
		Amount:      core.Money{Cents: in.AmountCents},
		Category:    in.Category,
		Type:        in.Type,
		Date:        in.Date,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	blob.Transactions = append([]core.Transaction{tx}, blob.Transactions...)
	if err := s.repo.Save(ctx, email, blob); err != nil {
		return core.Transaction{}, err
	}
	slog.InfoContext(ctx, "Transaction recorded",
		applog.FieldComponent, applog.ComponentFinance, applog.FieldOperation, applog.OpCreate,
		applog.FieldTxID, tx.ID, "type", tx.Type,
		applog.FieldAmountCents, tx.Amount.Cents, applog.FieldCategory, tx.Category)
	return tx, nil
}

// DeleteTransaction removes exactly the transaction with the given id,
// keeping the relative order of the rest.
func (s *FinanceService) DeleteTransaction(ctx context.Context, id string) error {
	email, blob, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := blob.Transactions[:0]
	found := false
	for _, tx := range blob.Transactions {
		if tx.ID == id {
			found = true
			continue
		}
		kept = append(kept, tx)
	}
	if !found {
		return ErrNotFound
	}
	blob.Transactions = kept
	if err := s.repo.Save(ctx, email, blob); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted",
		applog.FieldComponent, applog.ComponentFinance, applog.FieldOperation, applog.OpDelete,
		applog.FieldTxID, id)
	return nil
}

// AddGoal validates the input, assigns a generated id, and inserts the goal
// at the head of the list.
func (s *FinanceService) AddGoal(ctx context.Context, in GoalInput) (core.FinancialGoal, error) {
	email, blob, err := s.load(ctx)
	if err != nil {
		return core.FinancialGoal{}, err
	}

	color := in.Color
	if color == "" {
		color = core.GoalColors[0]
	}
	g := core.FinancialGoal{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(in.Name),
		TargetAmount:  core.Money{Cents: in.TargetCents},
		CurrentAmount: core.Money{Cents: in.CurrentCents},
		Deadline:      in.Deadline,
		Color:         color,
	}
	if err := g.Validate(); err != nil {
		return core.FinancialGoal{}, err
	}

	blob.Goals = append([]core.FinancialGoal{g}, blob.Goals...)
	if err := s.repo.Save(ctx, email, blob); err != nil {
		return core.FinancialGoal{}, err
	}
	slog.InfoContext(ctx, "Goal created",
		applog.FieldComponent, applog.ComponentFinance, applog.FieldOperation, applog.OpCreate,
		applog.FieldGoalID, g.ID, "name", g.Name, "target_cents", g.TargetAmount.Cents)
	return g, nil
}

// ApplyDeposit increments a goal's accumulated amount. The amount must be
// positive; the accumulated value may exceed the target.
func (s *FinanceService) ApplyDeposit(ctx context.Context, goalID string, amountCents int64) (core.FinancialGoal, error) {
	if amountCents <= 0 {
		return core.FinancialGoal{}, core.ErrInvalidAmount
	}
	email, blob, err := s.load(ctx)
	if err != nil {
		return core.FinancialGoal{}, err
	}
	for i := range blob.Goals {
		if blob.Goals[i].ID != goalID {
			continue
		}
		blob.Goals[i].CurrentAmount.Cents += amountCents
		if err := s.repo.Save(ctx, email, blob); err != nil {
			return core.FinancialGoal{}, err
		}
		slog.InfoContext(ctx, "Deposit applied",
			applog.FieldComponent, applog.ComponentFinance, applog.FieldOperation, applog.OpUpdate,
			applog.FieldGoalID, goalID, applog.FieldAmountCents, amountCents,
			"current_cents", blob.Goals[i].CurrentAmount.Cents)
		return blob.Goals[i], nil
	}
	return core.FinancialGoal{}, ErrNotFound
}

// DeleteGoal removes exactly the goal with the given id.
func (s *FinanceService) DeleteGoal(ctx context.Context, id string) error {
	email, blob, err := s.load(ctx)
	if err != nil {
		return err
	}
	kept := blob.Goals[:0]
	found := false
	for _, g := range blob.Goals {
		if g.ID == id {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return ErrNotFound
	}
	blob.Goals = kept
	if err := s.repo.Save(ctx, email, blob); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Goal deleted",
		applog.FieldComponent, applog.ComponentFinance, applog.FieldOperation, applog.OpDelete,
		applog.FieldGoalID, id)
	return nil
}

// SetTheme replaces the persisted theme preference.
func (s *FinanceService) SetTheme(ctx context.Context, theme core.ThemeConfig) error {
	email, blob, err := s.load(ctx)
	if err != nil {
		return err
	}
	if theme.PrimaryColor == "" {
		theme.PrimaryColor = core.DefaultPrimaryColor
	}
	blob.Theme = theme
	return s.repo.Save(ctx, email, blob)
}

// UpdateProfile merges the patch into the account directory and refreshes
// the persisted session pointer so the edit survives a restart.
func (s *FinanceService) UpdateProfile(ctx context.Context, patch accounts.ProfilePatch) (core.Profile, error) {
	email, err := s.activeEmail()
	if err != nil {
		return core.Profile{}, err
	}
	profile, err := s.directory.UpdateProfile(ctx, email, patch)
	if err != nil {
		return core.Profile{}, err
	}
	if err := s.sessions.Update(ctx, profile); err != nil {
		return core.Profile{}, fmt.Errorf("refresh session: %w", err)
	}
	return profile, nil
}

// Dashboard bundles everything the dashboard view needs, recomputed from the
// raw transaction list on every call.
type Dashboard struct {
	Totals core.Totals     `json:"totals"`
	Week   []core.DayPoint `json:"week"`
	Goals  []GoalProgress  `json:"goals"`
}

// GoalProgress pairs a goal with its derived completion percentage.
type GoalProgress struct {
	Goal     core.FinancialGoal `json:"goal"`
	Progress float64            `json:"progress"`
}

// Dashboard derives totals, the weekly series ending at ref, and per-goal
// progress for the active user.
func (s *FinanceService) Dashboard(ctx context.Context, ref core.Date) (Dashboard, error) {
	profile, ok := s.sessions.Current()
	if !ok {
		return Dashboard{}, session.ErrNoSession
	}
	blob, _, err := s.repo.Load(ctx, profile.Email)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		Totals: core.ComputeTotals(blob.Transactions, profile.MonthlyIncomeCents),
		Week:   core.WeeklySeries(blob.Transactions, ref),
	}
	for _, g := range blob.Goals {
		d.Goals = append(d.Goals, GoalProgress{Goal: g, Progress: core.GoalProgress(g)})
	}
	return d, nil
}

// Snapshot assembles the bundle sent to the advice gateway.
func (s *FinanceService) Snapshot(ctx context.Context) (advice.Snapshot, error) {
	profile, ok := s.sessions.Current()
	if !ok {
		return advice.Snapshot{}, session.ErrNoSession
	}
	blob, _, err := s.repo.Load(ctx, profile.Email)
	if err != nil {
		return advice.Snapshot{}, err
	}
	return advice.Snapshot{
		Transactions: blob.Transactions,
		Goals:        blob.Goals,
		Profile:      profile,
		Theme:        blob.Theme,
	}, nil
}

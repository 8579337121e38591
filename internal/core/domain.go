package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// DefaultPrimaryColor and DefaultDarkMode are the theme values a fresh
// account starts with.
const (
	DefaultPrimaryColor = "#6366f1"
	DefaultDarkMode     = false
)

// DisplayCurrency is the single display currency of the application.
const DisplayCurrency = "R$"

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Transaction struct {
		ID          string          `json:"id"`
		Description string          `json:"description"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Type        TransactionType `json:"type"`
		Date        Date            `json:"date"`
	}

	FinancialGoal struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		TargetAmount  Money  `json:"targetAmount"`
		CurrentAmount Money  `json:"currentAmount"`
		Deadline      Date   `json:"deadline"`
		Color         string `json:"color"`
	}

	Profile struct {
		Name               string `json:"name"`
		Email              string `json:"email"`
		ProfilePic         string `json:"profilePic"`
		MonthlyIncomeCents int64  `json:"monthlyIncomeCents"`
		Currency           string `json:"currency"`
	}

	ThemeConfig struct {
		PrimaryColor string `json:"primaryColor"`
		DarkMode     bool   `json:"darkMode"`
	}

	// UserData is the unit of persistence: one user's full application
	// state, stored as a single blob keyed by email.
	UserData struct {
		Transactions []Transaction   `json:"transactions"`
		Goals        []FinancialGoal `json:"goals"`
		Theme        ThemeConfig     `json:"theme"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrLongDescription  = errors.New("description too long (max 200 characters)")
	ErrEmptyName        = errors.New("empty name")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrInvalidDate      = errors.New("invalid date")
)

// IncomeCategories and ExpenseCategories are the fixed category sets a
// transaction may carry, depending on its type.
var (
	IncomeCategories  = []string{"Salário", "Freelance", "Investimentos", "Presente", "Outros"}
	ExpenseCategories = []string{"Alimentação", "Transporte", "Moradia", "Lazer", "Saúde", "Educação", "Compras", "Outros"}
)

// GoalColors is the palette offered for goal display colors.
var GoalColors = []string{"#6366f1", "#10b981", "#f43f5e", "#f59e0b", "#8b5cf6", "#06b6d4"}

// NewDate creates a Date from year, month, day at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

// ISO returns the date as YYYY-MM-DD. Transactions are grouped by exact
// comparison of this string.
func (d Date) ISO() string {
	return d.Format("2006-01-02")
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	return Date{Time: d.AddDate(0, 0, n)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.ISO() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// CategoriesFor returns the fixed category set for a transaction type.
func CategoriesFor(t TransactionType) []string {
	switch t {
	case Income:
		return IncomeCategories
	case Expense:
		return ExpenseCategories
	}
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	}
	return ErrInvalidType
}

func (tx Transaction) Validate() error {
	if err := tx.Type.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(tx.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(tx.Description) > 200 {
		return ErrLongDescription
	}
	if err := tx.Amount.Validate(); err != nil {
		return err
	}
	if err := tx.Date.Validate(); err != nil {
		return err
	}
	ok := false
	for _, c := range CategoriesFor(tx.Type) {
		if c == tx.Category {
			ok = true
			break
		}
	}
	if !ok {
		return ErrInvalidCategory
	}
	return nil
}

func (g FinancialGoal) Validate() error {
	if len(strings.TrimSpace(g.Name)) == 0 {
		return ErrEmptyName
	}
	if g.TargetAmount.Cents < 0 || g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	if err := g.Deadline.Validate(); err != nil {
		return err
	}
	return nil
}

// DefaultTheme returns the theme a fresh account starts with.
func DefaultTheme() ThemeConfig {
	return ThemeConfig{PrimaryColor: DefaultPrimaryColor, DarkMode: DefaultDarkMode}
}

// EmptyUserData returns a zero blob with the default theme, used when no
// blob exists yet for an account or the stored payload is unreadable.
func EmptyUserData() UserData {
	return UserData{Theme: DefaultTheme()}
}

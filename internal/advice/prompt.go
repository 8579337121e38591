package advice

import (
	"fmt"
	"strings"

	"fbfinance/internal/core"
)

const systemInstruction = "Você é o assistente virtual do FB finance. Seja direto, motivador e use Português do Brasil. " +
	"Analise os números e aponte onde o usuário pode cortar gastos para atingir suas metas."

// buildPrompt composes the analysis request: totals, the expense breakdown
// per category, and the remaining amount per goal, all in the display
// currency.
func buildPrompt(snap Snapshot) string {
	cur := snap.Profile.Currency
	if cur == "" {
		cur = core.DisplayCurrency
	}
	totals := core.ComputeTotals(snap.Transactions, snap.Profile.MonthlyIncomeCents)

	var b strings.Builder
	fmt.Fprintf(&b, "DADOS FINANCEIROS (FB finance):\n")
	fmt.Fprintf(&b, "Usuário: %s\n", snap.Profile.Name)
	fmt.Fprintf(&b, "Renda Base: %s %.2f\n", cur, core.Money{Cents: snap.Profile.MonthlyIncomeCents}.Reais())
	fmt.Fprintf(&b, "Total de Entradas: %s %.2f\n", cur, core.Money{Cents: totals.IncomeCents}.Reais())
	fmt.Fprintf(&b, "Total de Despesas: %s %.2f\n", cur, core.Money{Cents: totals.ExpenseCents}.Reais())
	fmt.Fprintf(&b, "Saldo Atual: %s %.2f\n", cur, core.Money{Cents: totals.BalanceCents}.Reais())

	b.WriteString("\nCategorias de gastos:\n")
	for _, c := range core.ExpenseByCategory(snap.Transactions) {
		fmt.Fprintf(&b, "- %s: %s %.2f\n", c.Name, cur, c.Amount.Reais())
	}

	b.WriteString("\nMetas:\n")
	for _, g := range snap.Goals {
		remaining := core.Money{Cents: g.TargetAmount.Cents - g.CurrentAmount.Cents}
		fmt.Fprintf(&b, "- %s: falta %s %.2f\n", g.Name, cur, remaining.Reais())
	}

	b.WriteString("\nCom base nestes dados reais, forneça 3 dicas curtas e motivadoras para economizar mais este mês.\n")
	return b.String()
}

// Package advice is the gateway to the AI assistant: it turns a financial
// snapshot into a free-text advisory. Failures never propagate; the caller
// always gets a displayable message.
package advice

import (
	"context"

	"fbfinance/internal/core"
)

// Snapshot is the bundle of user state analyzed by the assistant.
type Snapshot struct {
	Transactions []core.Transaction   `json:"transactions"`
	Goals        []core.FinancialGoal `json:"goals"`
	Profile      core.Profile         `json:"profile"`
	Theme        core.ThemeConfig     `json:"theme"`
}

// Adviser produces advisory text for a snapshot. Implementations must not
// panic or return transport errors to end users; RequestAdvice returns a
// non-nil error only for programming errors, otherwise a fallback message
// takes the place of the advice.
type Adviser interface {
	RequestAdvice(ctx context.Context, snap Snapshot) (string, error)
}

// User-visible fallback messages, matching the application's pt-BR voice.
const (
	MsgMissingAPIKey = "Chave de API não encontrada. Por favor, verifique as configurações."
	MsgUnavailable   = "Não foi possível analisar seus dados agora. Verifique sua conexão."
)

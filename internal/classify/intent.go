package classify

import (
	"strings"

	"gastobot/internal/extract"
	"gastobot/internal/lexicon"
)

// Intent is the coarse purpose of a chat message.
type Intent string

const (
	IntentExpense Intent = "expense"
	IntentIncome  Intent = "income"
	IntentGoal    Intent = "goal"
	IntentReport  Intent = "report"
	IntentBudget  Intent = "budget"
	IntentUnknown Intent = "unknown"
)

// IntentOf scans the configured intent groups in declared order (expense
// before income before goal before report before budget); the first substring
// hit wins. When no keyword matches but an amount is extractable the message
// defaults to an expense, otherwise it is unknown.
func IntentOf(lex *lexicon.Lexicon, text string) Intent {
	lower := strings.ToLower(text)
	for _, group := range lex.Intents {
		for _, kw := range group.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return Intent(group.Intent)
			}
		}
	}
	if extract.Amount(lex, text) != nil {
		return IntentExpense
	}
	return IntentUnknown
}

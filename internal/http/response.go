package http

import (
	"encoding/json"
	"net/http"

	"gastobot/internal/core"
	"gastobot/internal/services"
)

// replyResponse is the wire form of a services.Reply.
type replyResponse struct {
	Kind     string                  `json:"kind"`
	Intent   string                  `json:"intent,omitempty"`
	Record   *core.TransactionRecord `json:"record,omitempty"`
	Category string                  `json:"category,omitempty"`
	Limit    string                  `json:"limit,omitempty"`
	Goal     *core.FinancialGoal     `json:"goal,omitempty"`

	Transactions []core.TransactionRecord `json:"transactions,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toReplyResponse(reply services.Reply) replyResponse {
	return replyResponse{
		Kind:     string(reply.Kind),
		Intent:   string(reply.Intent),
		Record:   reply.Record,
		Category: reply.Category,
		Limit:    reply.Limit,
		Goal:     reply.Goal,

		Transactions: reply.Transactions,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gastobot/internal/amqp"
	"gastobot/internal/classify"
	"gastobot/internal/core"
	"gastobot/internal/extract"
	"gastobot/internal/interpret"
	"gastobot/internal/lexicon"
	"gastobot/internal/log"
	"gastobot/internal/ocr"
	"gastobot/internal/storage"
)

// ReplyKind tells the messaging layer how to surface the outcome. Formatting
// to user-facing text happens outside this core.
type ReplyKind string

const (
	ReplyRecorded   ReplyKind = "recorded"
	ReplyClarify    ReplyKind = "clarify"     // amount missing, ask the user
	ReplyBudgetSet  ReplyKind = "budget_set"
	ReplyNoCategory ReplyKind = "no_category" // budget name matched nothing
	ReplyGoalSet    ReplyKind = "goal_set"
	ReplyReport     ReplyKind = "report"
	ReplyUnknown    ReplyKind = "unknown"
)

// Reply is the structured outcome of handling one inbound message or receipt.
type Reply struct {
	Kind   ReplyKind
	Intent classify.Intent

	// Record is set for recorded and clarify replies. A clarify reply
	// carries the partially extracted record for debugging; it has not
	// been stored.
	Record *core.TransactionRecord

	// Budget fields, set for budget_set replies.
	Category string
	Limit    string

	// Goal, set for goal_set replies.
	Goal *core.FinancialGoal

	// Transactions, set for report replies. Aggregation arithmetic is
	// the caller's concern.
	Transactions []core.TransactionRecord
}

// Assistant orchestrates classification, interpretation and persistence for
// inbound chat messages and receipt images.
type Assistant struct {
	lex      *lexicon.Lexicon
	messages *interpret.MessageInterpreter
	receipts *interpret.ReceiptInterpreter

	store      storage.DocumentStore
	recognizer ocr.Recognizer // optional
	amqpClient *amqp.Client   // optional

	logger *log.Logger
	now    func() time.Time

	// writeMu serializes load-modify-save cycles across in-flight chats.
	// The stores serialize individual Save calls; this lock keeps two
	// concurrent handlers from both loading the same document and losing
	// one of the appends.
	writeMu sync.Mutex
}

func NewAssistant(lex *lexicon.Lexicon, store storage.DocumentStore, recognizer ocr.Recognizer, amqpClient *amqp.Client, logger *log.Logger) *Assistant {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Assistant{
		lex:        lex,
		messages:   interpret.NewMessageInterpreter(lex),
		receipts:   interpret.NewReceiptInterpreter(lex),
		store:      store,
		recognizer: recognizer,
		amqpClient: amqpClient,
		logger:     logger.WithComponent(log.ComponentAssistant),
		now:        time.Now,
	}
}

// HandleMessage classifies a chat message and routes it through the matching
// flow. The returned Reply tells the messaging layer what happened; err is
// reserved for collaborator failures (storage, queue), never for extraction
// misses.
func (a *Assistant) HandleMessage(ctx context.Context, chatID, text string) (Reply, error) {
	intent := classify.IntentOf(a.lex, text)
	a.logger.DebugContext(ctx, "Message classified", "chat_id", chatID, "intent", string(intent))

	switch intent {
	case classify.IntentExpense:
		return a.recordTransaction(ctx, chatID, text, core.Expense, intent)
	case classify.IntentIncome:
		return a.recordTransaction(ctx, chatID, text, core.Income, intent)
	case classify.IntentGoal:
		return a.registerGoal(ctx, text, intent)
	case classify.IntentBudget:
		return a.updateBudget(ctx, text, intent)
	case classify.IntentReport:
		doc, err := a.store.Load(ctx)
		if err != nil {
			return Reply{}, fmt.Errorf("load document: %w", err)
		}
		return Reply{Kind: ReplyReport, Intent: intent, Transactions: doc.Transactions}, nil
	default:
		return Reply{Kind: ReplyUnknown, Intent: intent}, nil
	}
}

// HandleReceipt runs OCR over the image and interprets the resulting text.
// A receipt without a detectable total is not stored: the materialized
// record is returned in a clarify reply instead.
func (a *Assistant) HandleReceipt(ctx context.Context, chatID string, image []byte, mimeType string) (Reply, error) {
	if a.recognizer == nil {
		return Reply{}, fmt.Errorf("no OCR recognizer configured")
	}

	rawText, err := a.recognizer.Recognize(ctx, image, mimeType)
	if err != nil {
		return Reply{}, fmt.Errorf("recognize receipt: %w", err)
	}

	rec := a.receipts.Interpret(rawText, a.now())
	if !rec.HasAmount() {
		a.logger.WarnContext(ctx, "Receipt without detectable total", "chat_id", chatID)
		return Reply{Kind: ReplyClarify, Record: &rec}, nil
	}

	position, err := a.appendRecord(ctx, rec)
	if err != nil {
		return Reply{}, err
	}
	a.publishSync(ctx, position, chatID)

	return Reply{Kind: ReplyRecorded, Record: &rec}, nil
}

func (a *Assistant) recordTransaction(ctx context.Context, chatID, text string, typ core.TransactionType, intent classify.Intent) (Reply, error) {
	rec, err := a.messages.Interpret(text, typ, a.now())
	if errors.Is(err, interpret.ErrAmountNotFound) {
		return Reply{Kind: ReplyClarify, Intent: intent, Record: &rec}, nil
	}
	if err != nil {
		return Reply{}, err
	}

	position, err := a.appendRecord(ctx, rec)
	if err != nil {
		return Reply{}, err
	}
	a.publishSync(ctx, position, chatID)

	a.logger.InfoContext(ctx, "Transaction recorded",
		"chat_id", chatID,
		"type", string(rec.Type),
		"category", rec.Category,
		"position", position)

	return Reply{Kind: ReplyRecorded, Intent: intent, Record: &rec}, nil
}

func (a *Assistant) registerGoal(ctx context.Context, text string, intent classify.Intent) (Reply, error) {
	target := extract.Amount(a.lex, text)
	if target == nil {
		return Reply{Kind: ReplyClarify, Intent: intent}, nil
	}

	goal := core.FinancialGoal{
		Name:      extract.Concept(a.lex, text, core.Expense, ""),
		Target:    *target,
		CreatedAt: a.now(),
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	doc, err := a.store.Load(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("load document: %w", err)
	}
	doc.FinancialGoals = append(doc.FinancialGoals, goal)
	if err := a.store.Save(ctx, doc); err != nil {
		return Reply{}, fmt.Errorf("save document: %w", err)
	}

	return Reply{Kind: ReplyGoalSet, Intent: intent, Goal: &goal}, nil
}

func (a *Assistant) updateBudget(ctx context.Context, text string, intent classify.Intent) (Reply, error) {
	category, limit, err := a.messages.BudgetUpdate(text)
	switch {
	case errors.Is(err, interpret.ErrAmountNotFound):
		return Reply{Kind: ReplyClarify, Intent: intent}, nil
	case errors.Is(err, interpret.ErrNoCategoryMatch):
		return Reply{Kind: ReplyNoCategory, Intent: intent}, nil
	case err != nil:
		return Reply{}, err
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	doc, err := a.store.Load(ctx)
	if err != nil {
		return Reply{}, fmt.Errorf("load document: %w", err)
	}
	doc.Budget[category] = limit
	if err := a.store.Save(ctx, doc); err != nil {
		return Reply{}, fmt.Errorf("save document: %w", err)
	}

	return Reply{Kind: ReplyBudgetSet, Intent: intent, Category: category, Limit: limit}, nil
}

// appendRecord appends one record to the document and returns its position.
func (a *Assistant) appendRecord(ctx context.Context, rec core.TransactionRecord) (int, error) {
	if err := rec.Validate(); err != nil {
		return 0, fmt.Errorf("invalid record: %w", err)
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	doc, err := a.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("load document: %w", err)
	}
	doc.Transactions = append(doc.Transactions, rec)
	if err := a.store.Save(ctx, doc); err != nil {
		return 0, fmt.Errorf("save document: %w", err)
	}
	return len(doc.Transactions) - 1, nil
}

// publishSync notifies the sheet sync worker. Publish failures are logged
// and swallowed: the record is already stored locally.
func (a *Assistant) publishSync(ctx context.Context, position int, chatID string) {
	if a.amqpClient == nil {
		return
	}
	if err := a.amqpClient.PublishRecordSync(ctx, position, chatID); err != nil {
		a.logger.ErrorContext(ctx, "Failed to publish sync message",
			"position", position, "error", err)
	}
}

// Close closes the assistant's collaborators.
func (a *Assistant) Close() error {
	var errs []error

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if a.recognizer != nil {
		if err := a.recognizer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("ocr: %w", err))
		}
	}
	if a.amqpClient != nil {
		if err := a.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close assistant: %v", errs)
	}
	return nil
}

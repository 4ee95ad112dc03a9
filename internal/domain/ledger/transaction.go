package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Kind is the direction of a cash-flow transaction
type Kind string

const (
	KindEntrada Kind = "ENTRADA" // money in
	KindSaida   Kind = "SAIDA"   // money out
)

// IsValid checks if the kind is a known transaction kind
func (k Kind) IsValid() bool {
	return k == KindEntrada || k == KindSaida
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// DefaultCategory is the label used for exits recorded without a category
const DefaultCategory = "Outros"

// Transaction is a single cash-flow ledger entry owned by one user
type Transaction struct {
	shared.OwnedEntity
	Date          time.Time         `json:"date"`
	Kind          Kind              `json:"kind"`
	Amount        valueobject.Money `json:"amount"`
	Category      string            `json:"category,omitempty"`
	Description   string            `json:"description,omitempty"`
	PaymentMethod string            `json:"payment_method,omitempty"`
	Commission    *decimal.Decimal  `json:"commission,omitempty"`
}

// NewTransaction creates a new ledger entry
func NewTransaction(
	userID uuid.UUID,
	date time.Time,
	kind Kind,
	amount valueobject.Money,
	category string,
	description string,
) (*Transaction, error) {
	tx := &Transaction{
		OwnedEntity: shared.NewOwnedEntity(userID),
	}
	if err := tx.apply(userID, date, kind, amount, category, description); err != nil {
		return nil, err
	}
	return tx, nil
}

// Update replaces the editable fields of the entry
func (t *Transaction) Update(date time.Time, kind Kind, amount valueobject.Money, category, description string) error {
	if err := t.apply(t.UserID, date, kind, amount, category, description); err != nil {
		return err
	}
	t.Touch(time.Now())
	return nil
}

func (t *Transaction) apply(userID uuid.UUID, date time.Time, kind Kind, amount valueobject.Money, category, description string) error {
	if userID == uuid.Nil {
		return shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Transaction date is required")
	}
	if !kind.IsValid() {
		return shared.NewDomainError("INVALID_KIND", "Transaction kind must be ENTRADA or SAIDA")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	t.Date = date
	t.Kind = kind
	t.Amount = amount
	t.Category = strings.TrimSpace(category)
	t.Description = description
	return nil
}

// SetCommission records the commission paid on an income entry
func (t *Transaction) SetCommission(commission decimal.Decimal) error {
	if commission.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Commission cannot be negative")
	}
	t.Commission = &commission
	return nil
}

// IsEntrada returns true for income entries
func (t Transaction) IsEntrada() bool {
	return t.Kind == KindEntrada
}

// IsSaida returns true for expense entries
func (t Transaction) IsSaida() bool {
	return t.Kind == KindSaida
}

// CategoryOrDefault returns the category, falling back to DefaultCategory
func (t Transaction) CategoryOrDefault() string {
	if t.Category == "" {
		return DefaultCategory
	}
	return t.Category
}

// InPeriod returns the transactions whose date falls inside p.
// The input slice is never modified.
func InPeriod(txs []Transaction, p valueobject.MonthPeriod) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if p.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

// OnDay returns the transactions dated on the same calendar day as day,
// compared in day's location.
func OnDay(txs []Transaction, day time.Time) []Transaction {
	y, m, d := day.Date()
	out := make([]Transaction, 0)
	for _, tx := range txs {
		ty, tm, td := tx.Date.In(day.Location()).Date()
		if ty == y && tm == m && td == d {
			out = append(out, tx)
		}
	}
	return out
}

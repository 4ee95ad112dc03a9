package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const dateOnlyLayout = "2006-01-02"

// CreateTransactionRequest represents a request to record a transaction
type CreateTransactionRequest struct {
	Date          string           `json:"date" binding:"required"`
	Kind          string           `json:"kind" binding:"required,oneof=ENTRADA SAIDA"`
	Amount        decimal.Decimal  `json:"amount"`
	Category      string           `json:"category" binding:"max=100"`
	Description   string           `json:"description" binding:"max=500"`
	PaymentMethod string           `json:"payment_method" binding:"max=50"`
	Commission    *decimal.Decimal `json:"commission"`
}

// UpdateTransactionRequest carries the same fields as a create
type UpdateTransactionRequest = CreateTransactionRequest

// TransactionListFilter narrows a transaction listing
type TransactionListFilter struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	Kind     string `form:"kind" binding:"omitempty,oneof=ENTRADA SAIDA"`
	From     string `form:"from"`
	To       string `form:"to"`
	Search   string `form:"search"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID            uuid.UUID        `json:"id"`
	Date          time.Time        `json:"date"`
	Kind          string           `json:"kind"`
	Amount        decimal.Decimal  `json:"amount"`
	Category      string           `json:"category"`
	Description   string           `json:"description"`
	PaymentMethod string           `json:"payment_method"`
	Commission    *decimal.Decimal `json:"commission,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ToTransactionResponse converts a domain transaction to a response
func ToTransactionResponse(t *ledger.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Date:          t.Date,
		Kind:          t.Kind.String(),
		Amount:        t.Amount.Amount(),
		Category:      t.Category,
		Description:   t.Description,
		PaymentMethod: t.PaymentMethod,
		Commission:    t.Commission,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ParseDate parses a date given as YYYY-MM-DD or RFC 3339.
// A date without a time is midnight in loc (UTC when loc is nil), so it
// falls on the same calendar day when reports are computed in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(dateOnlyLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be YYYY-MM-DD or RFC 3339")
}

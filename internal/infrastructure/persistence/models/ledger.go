package models

import (
	"time"

	"github.com/salonfin/backend/internal/domain/ledger"
	"github.com/salonfin/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// TransactionModel is the persistence model for a ledger transaction
type TransactionModel struct {
	OwnedModel
	Date          time.Time        `gorm:"not null;index"`
	Kind          string           `gorm:"type:varchar(10);not null"`
	Amount        decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Category      string           `gorm:"type:varchar(100)"`
	Description   string           `gorm:"type:varchar(500)"`
	PaymentMethod string           `gorm:"type:varchar(50)"`
	Commission    *decimal.Decimal `gorm:"type:decimal(18,2)"`
}

// TableName returns the table name for GORM
func (TransactionModel) TableName() string {
	return "ledger_transactions"
}

// ToDomain converts the model to a domain Transaction
func (m *TransactionModel) ToDomain() ledger.Transaction {
	return ledger.Transaction{
		OwnedEntity:   m.ToOwnedEntity(),
		Date:          m.Date.UTC(),
		Kind:          ledger.Kind(m.Kind),
		Amount:        valueobject.NewMoney(m.Amount),
		Category:      m.Category,
		Description:   m.Description,
		PaymentMethod: m.PaymentMethod,
		Commission:    m.Commission,
	}
}

// FromDomain populates the model from a domain Transaction.
// Dates are stored in UTC so range queries compare consistently.
func (m *TransactionModel) FromDomain(tx *ledger.Transaction) {
	m.FromOwnedEntity(tx.OwnedEntity)
	m.Date = tx.Date.UTC()
	m.Kind = string(tx.Kind)
	m.Amount = tx.Amount.Amount()
	m.Category = tx.Category
	m.Description = tx.Description
	m.PaymentMethod = tx.PaymentMethod
	m.Commission = tx.Commission
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/expense"
	"github.com/shopspring/decimal"
)

// ExpenseCategoryModel is the persistence model for an expense category
type ExpenseCategoryModel struct {
	OwnedModel
	Name     string `gorm:"type:varchar(100);not null"`
	IsCustom bool   `gorm:"not null;default:false"`
	IsFixed  bool   `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ExpenseCategoryModel) TableName() string {
	return "expense_categories"
}

// ToDomain converts the model to a domain Category
func (m *ExpenseCategoryModel) ToDomain() expense.Category {
	return expense.Category{
		OwnedEntity: m.ToOwnedEntity(),
		Name:        m.Name,
		IsCustom:    m.IsCustom,
		IsFixed:     m.IsFixed,
	}
}

// FromDomain populates the model from a domain Category
func (m *ExpenseCategoryModel) FromDomain(c *expense.Category) {
	m.FromOwnedEntity(c.OwnedEntity)
	m.Name = c.Name
	m.IsCustom = c.IsCustom
	m.IsFixed = c.IsFixed
}

// IndirectExpenseModel is the persistence model for a monthly indirect expense.
// (user_id, category_id, month_reference) is unique.
type IndirectExpenseModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_indirect_expense_month,priority:1"`
	CategoryID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_indirect_expense_month,priority:2"`
	MonthReference time.Time       `gorm:"type:date;not null;uniqueIndex:idx_indirect_expense_month,priority:3"`
	MonthlyValue   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (IndirectExpenseModel) TableName() string {
	return "indirect_expenses"
}

// ToDomain converts the model to a domain IndirectExpense
func (m *IndirectExpenseModel) ToDomain() expense.IndirectExpense {
	e := expense.IndirectExpense{
		CategoryID:     m.CategoryID,
		MonthReference: expense.FirstOfMonth(m.MonthReference.UTC()),
		MonthlyValue:   m.MonthlyValue,
	}
	e.ID = m.ID
	e.UserID = m.UserID
	e.CreatedAt = m.CreatedAt
	e.UpdatedAt = m.UpdatedAt
	return e
}

// FromDomain populates the model from a domain IndirectExpense
func (m *IndirectExpenseModel) FromDomain(e *expense.IndirectExpense) {
	m.ID = e.ID
	m.UserID = e.UserID
	m.CategoryID = e.CategoryID
	m.MonthReference = expense.FirstOfMonth(e.MonthReference)
	m.MonthlyValue = e.MonthlyValue
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

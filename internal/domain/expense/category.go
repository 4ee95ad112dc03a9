package expense

import (
	"strings"

	"github.com/google/uuid"
	"github.com/salonfin/backend/internal/domain/shared"
)

// DefaultCategoryNames are the predefined indirect-expense categories
// seeded for every account on first access.
var DefaultCategoryNames = []string{
	"Aluguel",
	"Energia",
	"Água",
	"Internet",
	"Telefone",
	"Contador",
	"Software",
	"Marketing",
	"Material de limpeza",
	"Pró-labore",
	"Depreciação",
}

// fixedByDefault marks predefined categories whose value rarely changes month to month
var fixedByDefault = map[string]bool{
	"Aluguel":     true,
	"Internet":    true,
	"Contador":    true,
	"Software":    true,
	"Pró-labore":  true,
	"Depreciação": true,
}

// Category is an indirect-expense category, either predefined or user-added
type Category struct {
	shared.OwnedEntity
	Name     string `json:"name"`
	IsCustom bool   `json:"is_custom"`
	// IsFixed means the January value applies to every later month of the year
	IsFixed bool `json:"is_fixed"`
}

// NewCategory creates a new expense category
func NewCategory(userID uuid.UUID, name string, isCustom, isFixed bool) (*Category, error) {
	name = strings.TrimSpace(name)
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot exceed 100 characters")
	}
	return &Category{
		OwnedEntity: shared.NewOwnedEntity(userID),
		Name:        name,
		IsCustom:    isCustom,
		IsFixed:     isFixed,
	}, nil
}

// DefaultCategories builds the predefined category set for a user
func DefaultCategories(userID uuid.UUID) []Category {
	out := make([]Category, 0, len(DefaultCategoryNames))
	for _, name := range DefaultCategoryNames {
		out = append(out, Category{
			OwnedEntity: shared.NewOwnedEntity(userID),
			Name:        name,
			IsFixed:     fixedByDefault[name],
		})
	}
	return out
}

// CanDelete reports whether the category may be removed by its owner.
// Only user-added categories are deletable.
func (c Category) CanDelete() bool {
	return c.IsCustom
}

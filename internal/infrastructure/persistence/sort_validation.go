package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes a sort direction to ASC or DESC, defaulting to DESC
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "ASC") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted in allowed,
// otherwise defaultField. Only whitelisted names ever reach ORDER BY.
func ValidateSortField(sortField string, allowed map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowed[trimmed] {
		return trimmed
	}
	return defaultField
}

// TransactionSortFields contains allowed sort fields for ledger transactions
var TransactionSortFields = map[string]bool{
	"date":       true,
	"amount":     true,
	"category":   true,
	"kind":       true,
	"created_at": true,
	"updated_at": true,
}

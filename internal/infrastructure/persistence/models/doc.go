// Package models contains the GORM persistence models behind the repositories.
//
// Models carry every table mapping and column annotation so the domain
// entities stay free of ORM concerns. Each model has ToDomain and
// FromDomain mappers; repositories only read and write models.
//
//   - base.go: OwnedModel, the id/user/timestamps block of every table
//   - ledger.go: cash-flow transactions
//   - expense.go: expense categories and monthly indirect expenses
//   - catalog.go: materials and services (lines and pricing stored as JSON)
//   - settings.go: the per-user business parameters
package models

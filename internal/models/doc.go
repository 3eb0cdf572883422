// Package models defines the core domain models for Bill-Sharing.
//
// # Models
//
//   - Bill: a household or group expense ledger with a fixed set of members
//   - Expense: one purchase logged against a bill, paid by one member
//   - Category: a label from the lookup set used to classify expenses
//
// Members are identified by display name strings. A bill owns its member list;
// expenses reference their bill by ID and are never embedded in it.
//
// # Lifecycle
//
// A bill starts Active. While Active, expenses and members may change. Completing
// a bill stamps CompletedAt and freezes it: every later mutation is rejected by
// the ledger package.
//
// # Amounts
//
// Expense amounts are kept as decimal strings exactly as entered. They are parsed
// to decimals only for computation (see the calculator package) so that no
// floating point artifacts are ever persisted.
package models

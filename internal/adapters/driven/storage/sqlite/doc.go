// Package sqlite provides the SQLite-backed food knowledge store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Rows are scanned with sqlx.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
// Applied versions are recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.aikcal/data/food.db
//
// # Sessions
//
// Every FoodSession pins one pooled connection for its lifetime. Multi-row
// writes run in a transaction on that connection.
package sqlite

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - FoodStore / FoodSession: Food knowledge persistence (products and dishes)
//   - Oracle: Generative model answering structured questions about food
//   - ConfigStore: Application configuration
//   - PromptStore: Oracle prompt templates
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ProductCatalog: Barcode lookups. Without it, barcode search is disabled.
//   - OracleValidator: Connectivity checks for oracle settings.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven

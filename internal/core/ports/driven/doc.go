// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentReader: Loads the reference document (.txt, .pdf)
//   - EmbeddingService: Turns text into vectors
//   - VectorIndex: Stores vectors and answers nearest-neighbour queries
//   - LLMService: Generates the final answer
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ManifestStore: Records what an index was built from. Without it,
//     ingestion/query mismatches cannot be detected.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven

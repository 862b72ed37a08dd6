// Package services implements the driving port interfaces.
// Services contain the ingestion and query flows and orchestrate
// calls to driven ports (adapters).
//
// Services depend only on ports and the chunker; every external system is
// reached through an interface injected at construction.
package services

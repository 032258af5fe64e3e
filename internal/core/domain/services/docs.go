// Package services provides domain services that orchestrate business
// operations across multiple aggregates of the dispatch system.
//
// The package includes:
//   - Assigner: couples order assignment transitions with courier availability
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design principles.
package services

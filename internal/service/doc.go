// Package service coordinates loading, calculating and archiving.
//
// CalculationService turns a network file into a report: the loader
// builds the domain network, the report package evaluates it and the
// optional repository.Store archives the result. Every step publishes an
// Event on the EventBus so the CLI can react to recomputations in watch
// mode without polling.
package service

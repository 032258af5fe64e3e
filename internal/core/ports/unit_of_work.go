package ports

import (
	"context"
)

// UnitOfWorkFactory hands out a fresh UnitOfWork per command so concurrent
// commands never share transaction state.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is the transaction boundary of a single command. An order
// transition and the courier availability flip it implies go through the
// same unit of work and commit or roll back together.
//
// The history trail and the event publisher are deliberately not part of
// this interface: the transition report runs after Commit and a failed
// report must never unwind a committed transition. See the command
// handlers' TransitionReporter.
type UnitOfWork interface {
	// Begin opens the database transaction. Calling Begin on an already
	// open unit of work is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the open transaction. Fails when Begin was never
	// called or the commit itself fails.
	Commit(ctx context.Context) error

	// Rollback discards the open transaction. Handlers defer it
	// unconditionally; after a Commit it degrades to a harmless error.
	Rollback(ctx context.Context) error

	// CourierRepository returns a courier repository bound to the open
	// transaction, or to the plain connection before Begin.
	CourierRepository() CourierRepository

	// OrderRepository returns an order repository bound to the open
	// transaction, or to the plain connection before Begin.
	OrderRepository() OrderRepository
}

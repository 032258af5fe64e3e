// Package history holds the append-only status trail of orders.
package history

// Package store defines the persistence interfaces for users and places,
// the shared error taxonomy, and the transaction helper used to keep
// cross-record writes atomic.
package store

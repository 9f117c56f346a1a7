// Package mocks provides hand-written test doubles for the store, image
// storage and auth interfaces. Each mock keeps simple in-memory state and
// exposes function fields for overriding individual behaviors.
package mocks

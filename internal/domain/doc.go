// Package domain defines the core business entities of the places
// application and the validation rules that keep them consistent.
package domain

// Package api contains the HTTP handlers, request/response models and
// error mapping for the places REST API.
package api

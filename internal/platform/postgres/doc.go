// Package postgres implements the store interfaces on top of PostgreSQL,
// accessed through the pgx stdlib driver.
package postgres

// Package service implements the application workflows for users and
// places: signup, login, and the transactional create/update/delete of
// place listings.
package service

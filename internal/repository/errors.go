// Package repository implements data access for users and roles over
// *sql.DB. Sentinel errors let handlers translate storage outcomes
// into distinct HTTP statuses without inspecting driver errors.
package repository

import "errors"

// ErrNotFound is returned when a referenced user or role does not
// exist. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when an insert or update collides with the
// unique key on users.email. Handlers translate this into HTTP 409
// citing the email field.
var ErrEmailExists = errors.New("email already exists")

// ErrUsernameExists is the username counterpart of ErrEmailExists.
var ErrUsernameExists = errors.New("username already exists")

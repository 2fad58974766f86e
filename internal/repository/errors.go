// Package repository implements the MySQL data stores. Sentinel errors let
// handlers translate store outcomes into HTTP statuses without inspecting
// driver internals.
package repository

import "errors"

// ErrNotFound is returned when a row referenced by id (or the activity a
// child row points at) does not exist. Handlers translate it into 404.
var ErrNotFound = errors.New("not found")

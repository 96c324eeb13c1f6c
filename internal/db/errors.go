package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrRouteNotFound = errors.New("route not found")
	ErrDuplicatePath = errors.New("route path already exists")
)

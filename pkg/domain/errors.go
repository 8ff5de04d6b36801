package domain

import "errors"

// ErrPageNotFound is returned when a page ID cannot be found by the loader.
var ErrPageNotFound = errors.New("page not found")

// ErrNoComponent is returned when neither the effective component map nor the
// format fallback can render a node kind.
var ErrNoComponent = errors.New("no component for node kind")

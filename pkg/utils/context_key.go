package utils

// ContextKey is the dedicated type for request-context values set by the
// middlewares, so they cannot collide with keys from other packages.
type ContextKey string

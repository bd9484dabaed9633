package models

// ValidatedBodyKey is the context key for request bodies that passed
// validation middleware.
type ValidatedBodyKey struct{}

// ValidatedQueryKey is the context key for validated query parameter structs.
type ValidatedQueryKey struct{}

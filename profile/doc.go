// Package profile implements the durable user profile model and its storage
// contract. Two implementations behave identically from the caller's
// perspective: a process-local in-memory store and a SQLite-backed store
// (subpackage sqlite). Updates use field-level merge semantics; a provided
// non-zero field overwrites, everything else retains its prior value.
package profile

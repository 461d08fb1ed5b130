// Package trustpolicy holds the pure trust and moderation decision rules
// shared by every contribution path (products, stores, availability reports,
// pages, reviews, edit suggestions).
//
// Everything in this package is a total function over its inputs: no I/O, no
// clock, no error returns. Callers own persistence and failure handling.
package trustpolicy

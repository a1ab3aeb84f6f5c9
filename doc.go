// Package cells implements a reactive value graph: stored cells hold data
// written from outside, computed cells derive values from other cells with
// their dependencies discovered automatically, and triggers and attachment
// points let a host react to changes without polling. See the internal
// package for the untyped engine this package wraps generically.
package cells

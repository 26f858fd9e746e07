// Package weather holds the canonical Location and Record entities of the
// observation store, their minute-precision wire timestamp, and the
// SQLite-backed repository that persists them.
//
// Both services use these types: the store service persists and serves them,
// the averages service decodes them from the store's JSON API.
package weather

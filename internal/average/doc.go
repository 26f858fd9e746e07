// Package average computes per-metric averages of weather observations.
//
// The engine composes two fetches against the observation store's REST API
// (the location, then the records for a time window) and reduces the record
// set to a single Average. Windows are calendar-aware: month windows account
// for leap years, day windows span 00:00 to 23:59.
//
// The two fetches are independent sequential calls with no shared
// transaction; the inconsistency window between them is accepted.
package average

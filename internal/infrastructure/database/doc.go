// Package database manages the observation store's SQLite connection.
//
// It wraps database/sql with the pragmas the store depends on (foreign keys,
// busy timeout, optional WAL) and runs embedded schema migrations at startup.
package database

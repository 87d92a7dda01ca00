// Package store maintains a SQLite index of persisted grid images and
// their source time ranges for downstream consumers.
package store

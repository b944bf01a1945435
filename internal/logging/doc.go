// Package logging provides the structured logger used by the batch runners
// and the application. Entries are written through zerolog, as JSON or as
// console output filtered by --log-level.
package logging

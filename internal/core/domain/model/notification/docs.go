// Package notification holds the append-only notification log.
package notification

// Package delivery contains the Delivery aggregate, the time-bound Quote it
// is confirmed from, and the append-only audit records of courier jobs.
package delivery

// Package order contains the Order aggregate and its lifecycle status.
// Orders originate on the upstream commerce platform; this service tracks
// the delivery and refund transitions applied to them.
package order

// Package returns contains the Return aggregate, its lifecycle status machine,
// and the immutable refund records written when a return is refunded.
package returns

// Package notification defines the outbound SMS contract.
//
// The message kinds form a closed enumeration with fixed text, one renderer
// per kind. Delivery is fire-and-forget with an explicit outcome: senders
// return an error on failure and callers decide whether that is fatal.
// Delivery is at-least-once; a retried sweep may send the same message twice.
package notification

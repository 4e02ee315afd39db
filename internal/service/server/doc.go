// Package server wires the reminder server process: configuration,
// MongoDB, the alarm flag slot, SMS delivery, the sweep scheduler and
// the HTTP surface, with graceful shutdown on context cancellation.
package server

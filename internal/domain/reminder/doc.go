// Package reminder defines the reminder record and its status lifecycle.
//
// A reminder is created active and is moved to expired by the sweep engine
// once its expiry instant has passed, or to completed by its owner. Expired
// and completed are terminal for the engine: it never reverts either.
package reminder

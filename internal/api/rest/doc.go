// Package rest implements the HTTP surface of the reminder service.
//
// It adapts parsed requests to the repositories and issues bearer tokens for
// the auth endpoints. Confirmation SMS deliveries are best-effort: a failed
// send is logged and never fails the request. The alarm flag endpoint is
// read-only; the slot is written exclusively by the sweep engine.
package rest

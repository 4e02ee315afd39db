// Package alarmflag implements the shared alarm flag slot.
//
// The slot holds a single Flag value with last-write-wins semantics. The
// FileRepository stores it as JSON on disk for local setups; the
// FirebaseRepository stores it in a Firebase Realtime Database via its REST
// representation, which is what the buzzer hardware polls. Only the sweep
// engine writes the slot; display surfaces read it.
package alarmflag

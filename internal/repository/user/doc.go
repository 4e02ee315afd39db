// Package user implements persistence for account records.
//
// The MongoRepository stores accounts in a MongoDB collection and exposes
// the Repository interface that the auth surface and the sweep engine's
// destination lookup depend on.
package user

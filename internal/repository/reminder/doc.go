// Package reminder implements persistence for reminder records.
//
// The MongoRepository stores records in a MongoDB collection and exposes the
// Repository interface that the HTTP surface and the sweep engine depend on.
// The MemoryRepository backs tests and local development.
package reminder

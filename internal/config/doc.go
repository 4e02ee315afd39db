// Package config defines the settings used by the reminder server and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the HTTP listen address, MongoDB connection
// parameters, sweep cadence and the alarm flag and SMS backends.
package config

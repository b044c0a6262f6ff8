// Package config loads krow.toml, the configuration file read by the krow
// CLI.
//
//	log_level = "debug"
//
//	[preview]
//	addr = "localhost:7070"
//	demo = "todos"
//
//	[metrics]
//	enabled = true
//	namespace = "krow"
//
//	[export]
//	dir = "dist"
//	bucket = "my-snapshots"
//	region = "eu-west-1"
//
// Missing fields take their defaults; unknown keys are rejected.
package config

// Package database handles database connections.
//
// It provides a wrapper around GORM (Go Object Relational Mapping) to properly
// configure MySQL connections based on the application's configuration. A
// sqlite driver is also supported, mainly so tests can run against an
// in-memory database through the same code path.
//
// # Connect
//
// The generic Connect function establishes a connection to the database and
// verifies it with a ping before returning.
//
// # Startup Retry
//
// ConnectWithRetry wraps Connect with a bounded, fixed-delay retry loop. The
// server uses it at startup so a database that comes up slightly after the
// service (e.g. during a compose deployment) does not kill the process
// immediately; exhausting the attempts is fatal.
//
// # Usage
//
//	db, err := database.ConnectWithRetry(cfg.Database, log)
//	if err != nil {
//	    log.Fatal("Database connection failed", zap.Error(err))
//	}
package database

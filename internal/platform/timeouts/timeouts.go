// Package timeouts defines the timeout defaults shared by the web process.
package timeouts

import "time"

// StoreProbe caps the session store ping behind the health route.
const StoreProbe = time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

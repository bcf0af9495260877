// Package lifecycle holds the bounds shared by fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start or stop hook (ping, connect, graceful shutdown).
const DefaultTimeout = 10 * time.Second

package ratelimit

import (
	"context"
	"time"
)

// Policy allows Max requests per Window for one key. When BlockFor is set,
// a key that runs over is refused for that long.
type Policy struct {
	Max      int
	Window   time.Duration
	BlockFor time.Duration
}

type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Store consumes one request for key.
type Store interface {
	Take(ctx context.Context, key string) (Decision, error)
}

// Pruner is implemented by stores that keep per-key state in process.
type Pruner interface {
	Prune(idle time.Duration) int
}

// retryAfterSeconds rounds up and never returns less than one second.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
